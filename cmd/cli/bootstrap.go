package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geolearn-io/client/internal/common"
)

var bootstrapCmd = &cobra.Command{
	Use:     "bootstrap",
	Short:   "Start a session and fetch all initial page data in one call",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		result, err := api.Bootstrap(ctx, nil)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Bootstrap failed: %v", err)))
			return
		}

		persistSession()

		if result.Session != nil {
			fmt.Println(successStyle.Render(fmt.Sprintf("Session started: %s", result.Session.SessionID)))
		}
		if result.FirstQuestion != nil {
			printQuestion(result.FirstQuestion)
		}
		fmt.Printf("Answer options: %d, theorems: %d, feedback options: %d, triangles: %d\n",
			len(result.AnswerOptions), len(result.Theorems),
			len(result.FeedbackOptions), len(result.Triangles))
		fmt.Println(infoStyle.Render(fmt.Sprintf("Fetched via %s path", result.Meta.Path)))
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}
