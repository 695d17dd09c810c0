package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geolearn-io/client/internal/common"
	"github.com/geolearn-io/client/internal/models"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "List feedback options and submit session feedback",
}

var feedbackOptionsCmd = &cobra.Command{
	Use:     "options",
	Short:   "List the available feedback options",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		options, err := api.FeedbackOptions(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to get feedback options: %v", err)))
			return
		}

		for _, option := range options.Options {
			fmt.Printf("%3d  %s\n", option.FeedbackID, option.Text)
		}
	},
}

var feedbackID int

var feedbackSubmitCmd = &cobra.Command{
	Use:     "submit",
	Short:   "Submit feedback for the current session",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		_, err := api.SubmitFeedback(ctx, &models.FeedbackRequest{
			Feedback: feedbackID,
		})
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to submit feedback: %v", err)))
			return
		}

		persistSession()
		fmt.Println(successStyle.Render("Feedback submitted"))
	},
}

func init() {
	feedbackSubmitCmd.Flags().IntVar(&feedbackID, "id", 0, "Feedback ID (4-7)")
	_ = feedbackSubmitCmd.MarkFlagRequired("id")

	feedbackCmd.AddCommand(feedbackOptionsCmd)
	feedbackCmd.AddCommand(feedbackSubmitCmd)
	rootCmd.AddCommand(feedbackCmd)
}
