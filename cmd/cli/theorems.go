package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geolearn-io/client/internal/common"
)

var (
	theoremsActiveOnly bool
	theoremsCategory   int
)

var theoremsCmd = &cobra.Command{
	Use:     "theorems",
	Short:   "List geometry theorems",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		var category *int
		if cmd.Flags().Changed("category") {
			category = &theoremsCategory
		}

		theorems, err := api.Theorems(ctx, theoremsActiveOnly, category)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to get theorems: %v", err)))
			return
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Theorems (%d)", len(theorems.Theorems))))
		for _, theorem := range theorems.Theorems {
			fmt.Printf("%3d  %s\n", theorem.TheoremID, theorem.Name)
			if len(theorem.Description) > 0 {
				fmt.Println(infoStyle.Render("     " + theorem.Description))
			}
		}
	},
}

func init() {
	theoremsCmd.Flags().BoolVar(&theoremsActiveOnly, "active", true, "Return only active theorems")
	theoremsCmd.Flags().IntVar(&theoremsCategory, "category", 0, "Filter by triangle category (0-3)")
	rootCmd.AddCommand(theoremsCmd)
}
