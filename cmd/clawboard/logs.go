package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"clawboard/internal/derive"
	"clawboard/internal/gateway"
	"clawboard/internal/roster"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the aggregated activity log",
	Long: `Prints the consolidated activity log: locally recorded entries merged
with entries derived from gateway session traffic, newest first.

With --session, fetches the raw message history of one session instead.`,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().String("source", "all", "Log source: all, local or sessions")
	logsCmd.Flags().String("session", "", "Show message history for one session key")
	logsCmd.Flags().IntP("limit", "n", 50, "Maximum entries to show")
	logsCmd.Flags().Bool("render", false, "Render message bodies as markdown (with --session)")
	logsCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	if key, _ := cmd.Flags().GetString("session"); key != "" {
		return runSessionHistory(cmd, key)
	}

	scope := derive.Scope(cmd.Flag("source").Value.String())
	if !derive.ValidScope(scope) {
		return fmt.Errorf("unknown source %q (want all, local or sessions)", scope)
	}

	logs, err := newLogStore()
	if err != nil {
		return err
	}
	defer logs.Close()

	snap, err := fetchOnce(cmd.Context(), logs)
	if err != nil {
		return err
	}
	result := derive.ActivityLogs(snap.Sessions, logs.Logs(), scope)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries := result.Entries
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s %-7s %s",
			e.Timestamp.Format(time.RFC3339), e.Agent, e.Level, e.Action)
		if e.Details != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " - %s", e.Details)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d shown of %d total\n", len(entries), result.TotalCount)
	return nil
}

func runSessionHistory(cmd *cobra.Command, key string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	src := newSource()
	msgs, err := src.FetchHistory(cmd.Context(), key, limit)
	if err != nil {
		return fmt.Errorf("fetch history for %s: %w", key, err)
	}

	render, _ := cmd.Flags().GetBool("render")
	name := key
	if agent, ok := roster.Attribute(key, ""); ok {
		name = agent.Name
	}
	for _, m := range msgs {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s (%s)\n",
			time.UnixMilli(m.Timestamp).Format(time.RFC3339), name, m.Role)
		for _, c := range m.Content {
			if c.Type != gateway.ContentText {
				continue
			}
			body := c.Text
			if render {
				if out, err := glamour.Render(body, "dark"); err == nil {
					body = out
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
		}
	}
	return nil
}
