package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geolearn-io/client/internal/common"
	"github.com/geolearn-io/client/internal/models"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the remote learning session",
}

var sessionStartCmd = &cobra.Command{
	Use:     "start",
	Short:   "Start a new learning session",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		session, err := api.StartSession(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to start session: %v", err)))
			return
		}

		persistSession()
		fmt.Println(successStyle.Render(fmt.Sprintf("Session started: %s", session.SessionID)))
	},
}

var sessionStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show the current session status",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		status, err := api.SessionStatus(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to get session status: %v", err)))
			return
		}

		if status.Active {
			fmt.Println(successStyle.Render(fmt.Sprintf("Session active: %s", status.SessionID)))
		} else {
			fmt.Println(warningStyle.Render("No active session"))
		}
	},
}

var (
	endFeedback int
	endSave     bool
)

var sessionEndCmd = &cobra.Command{
	Use:     "end",
	Short:   "End the current learning session",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		req := &models.EndSessionRequest{SaveToDB: endSave}
		if cmd.Flags().Changed("feedback") {
			req.Feedback = &endFeedback
		}

		_, err := api.EndSession(ctx, req)
		// Local state is cleared regardless; keep the store in sync first.
		persistSession()
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("Session end call failed: %v", err)))
			return
		}

		fmt.Println(successStyle.Render("Session ended"))
	},
}

var sessionResetCmd = &cobra.Command{
	Use:     "reset",
	Short:   "Reset the session's learning state without ending it",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		_, err := api.ResetSession(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to reset session: %v", err)))
			return
		}

		persistSession()
		fmt.Println(successStyle.Render("Session reset"))
	},
}

func init() {
	sessionEndCmd.Flags().IntVar(&endFeedback, "feedback", 0, "Feedback ID to attach (4-7)")
	sessionEndCmd.Flags().BoolVar(&endSave, "save", true, "Save the session to the database")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionStatusCmd)
	sessionCmd.AddCommand(sessionEndCmd)
	sessionCmd.AddCommand(sessionResetCmd)
	rootCmd.AddCommand(sessionCmd)
}
