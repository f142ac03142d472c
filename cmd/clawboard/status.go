package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"clawboard/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current status of every agent",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	logs, err := newLogStore()
	if err != nil {
		return err
	}
	defer logs.Close()

	snap, err := fetchOnce(cmd.Context(), logs)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snap.Statuses)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "AGENT\tSTATUS\tLAST SEEN\tTASK")
	for _, a := range snap.Statuses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Name, a.Status, lastSeen(a), a.CurrentTask)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !snap.Connected {
		fmt.Fprintln(os.Stderr, "warning: showing cached data, gateway not reachable")
	}
	return nil
}

func lastSeen(a model.AgentStatus) string {
	if a.LastActivity == 0 {
		return "-"
	}
	return time.Since(time.UnixMilli(a.LastActivity)).Round(time.Second).String() + " ago"
}
