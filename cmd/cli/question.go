package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geolearn-io/client/internal/common"
	"github.com/geolearn-io/client/internal/models"
)

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "Fetch learning questions",
}

var questionFirstCmd = &cobra.Command{
	Use:     "first",
	Short:   "Fetch the first question",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		question, err := api.FirstQuestion(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to get first question: %v", err)))
			return
		}

		persistSession()
		printQuestion(question)
	},
}

var questionNextCmd = &cobra.Command{
	Use:     "next",
	Short:   "Fetch the next question",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		question, err := api.NextQuestion(ctx)
		if err != nil {
			if business, ok := models.AsBusiness(err); ok {
				fmt.Println(warningStyle.Render(business.Message))
				return
			}
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to get next question: %v", err)))
			return
		}

		persistSession()
		printQuestion(question)
	},
}

func printQuestion(q *models.Question) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("Question %d", q.QuestionID)))
	fmt.Println(q.QuestionText)
	if len(q.Info) > 0 {
		fmt.Println(infoStyle.Render(q.Info))
	}
}

func init() {
	questionCmd.AddCommand(questionFirstCmd)
	questionCmd.AddCommand(questionNextCmd)
	rootCmd.AddCommand(questionCmd)
}
