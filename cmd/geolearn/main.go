package main

import (
	"github.com/geolearn-io/client/cmd/cli"
)

func main() {
	cli.Execute()
}
