package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geolearn-io/client/internal/common"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show aggregate session statistics",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		stats, err := api.SessionStatistics(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to get statistics: %v", err)))
			return
		}

		fmt.Println(titleStyle.Render("Session statistics"))
		fmt.Printf("Total sessions:     %d\n", stats.TotalSessions)
		fmt.Printf("Total interactions: %d\n", stats.TotalInteractions)
		if stats.AverageQuestions > 0 {
			fmt.Printf("Average questions:  %.1f\n", stats.AverageQuestions)
		}
		for feedback, count := range stats.FeedbackCounts {
			fmt.Printf("Feedback %-10s %d\n", feedback+":", count)
		}
	},
}

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Short:   "Show the combined admin dashboard",
	PreRunE: preRunClientE,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cleanup := common.WithInterrupt(context.Background())
		defer cleanup()

		dash, err := api.AdminDashboard(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to get dashboard: %v", err)))
			return
		}

		fmt.Println(titleStyle.Render("Admin dashboard"))
		if dash.Health.Healthy() {
			fmt.Println(successStyle.Render("API is healthy"))
		} else if dash.Health != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("API status: %s", dash.Health.Status)))
		}
		if dash.Statistics != nil {
			fmt.Printf("Total sessions: %d\n", dash.Statistics.TotalSessions)
		}
		fmt.Printf("Theorems: %d\n", len(dash.Theorems))
		fmt.Println(infoStyle.Render(fmt.Sprintf("Fetched via %s path", dash.Meta.Path)))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dashboardCmd)
}
