package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clawboard/internal/poller"
	"clawboard/internal/ui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live terminal dashboard of agent activity",
	Long: `Watches the gateway and renders a continuously refreshing view of every
agent's status and the most recent activity log entries.`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().Duration("refresh", 5*time.Second, "Refresh interval")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	logs, err := newLogStore()
	if err != nil {
		return err
	}
	defer logs.Close()

	p := poller.New(newSource(), logs, pollConfig(), nil, nil)

	ui.FetchSnapshot = func() (poller.Snapshot, error) {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		p.Refresh(ctx)
		snap := p.Snapshot()
		if !snap.Connected && !viper.GetBool("mock") {
			return snap, errGatewayUnreachable
		}
		return snap, nil
	}

	// Test Hook: Skip TUI if requested
	if os.Getenv("CLAWBOARD_TEST_SKIP_TUI") == "1" {
		snap, err := ui.FetchSnapshot()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Dashboard initialized with %d agents, %d log entries\n",
			len(snap.Statuses), len(snap.Activity.Entries))
		return nil
	}

	refresh, _ := cmd.Flags().GetDuration("refresh")
	prog := tea.NewProgram(ui.NewDashboardModel(refresh), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	return nil
}
