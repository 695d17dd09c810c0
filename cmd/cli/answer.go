package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geolearn-io/client/internal/common"
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "List answer options and submit answers",
}

var answerOptionsCmd = &cobra.Command{
	Use:     "options",
	Short:   "List the available answer options",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		options, err := api.AnswerOptions(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to get answer options: %v", err)))
			return
		}

		for _, option := range options.Options {
			fmt.Printf("%3d  %s\n", option.AnswerID, option.Text)
		}
	},
}

var (
	answerQuestionID int
	answerID         int
	answerWantNext   bool
)

var answerSubmitCmd = &cobra.Command{
	Use:     "submit",
	Short:   "Submit an answer to the current question",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		result, err := api.SubmitAnswerEnhanced(ctx, answerQuestionID, answerID, answerWantNext, answerWantNext)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to submit answer: %v", err)))
			return
		}

		persistSession()
		fmt.Println(successStyle.Render("Answer submitted"))

		if len(result.RelevantTheorems) > 0 {
			fmt.Println(headerStyle.Render("Relevant theorems"))
			for _, theorem := range result.RelevantTheorems {
				fmt.Printf("  %s\n", theorem.Name)
			}
		}

		if result.NextQuestion != nil {
			printQuestion(result.NextQuestion)
		} else if answerWantNext {
			fmt.Println(warningStyle.Render("No more questions"))
		}
	},
}

func init() {
	answerSubmitCmd.Flags().IntVarP(&answerQuestionID, "question", "q", 0, "Question ID being answered")
	answerSubmitCmd.Flags().IntVarP(&answerID, "answer", "a", 0, "Selected answer ID (0-3)")
	answerSubmitCmd.Flags().BoolVarP(&answerWantNext, "next", "n", true, "Include the next question in the response")
	_ = answerSubmitCmd.MarkFlagRequired("question")
	_ = answerSubmitCmd.MarkFlagRequired("answer")

	answerCmd.AddCommand(answerOptionsCmd)
	answerCmd.AddCommand(answerSubmitCmd)
	rootCmd.AddCommand(answerCmd)
}
