package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geolearn-io/client/internal/common"
)

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check API server health",
	Long:    `Probe the Geometry Learning System API and report its liveness status.`,
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		health, err := api.Health(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("API is unreachable: %v", err)))
			return
		}

		if health.Healthy() {
			fmt.Println(successStyle.Render("API is healthy"))
		} else {
			fmt.Println(warningStyle.Render(fmt.Sprintf("API reports status: %s", health.Status)))
		}
		if len(health.Version) > 0 {
			fmt.Println(infoStyle.Render(fmt.Sprintf("Server version: %s", health.Version)))
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
