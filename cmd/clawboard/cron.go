package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"clawboard/internal/schedule"
)

var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "List the gateway's scheduled jobs",
	RunE:  runCron,
}

func init() {
	cronCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(cronCmd)
}

func runCron(cmd *cobra.Command, args []string) error {
	src := newSource()
	resp, err := src.FetchCronJobs(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch cron jobs: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp.Jobs)
	}

	now := time.Now()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCHEDULE\tNEXT RUN\tENABLED")
	for _, job := range resp.Jobs {
		next := "-"
		if t, ok := schedule.Next(job, now); ok {
			next = fmt.Sprintf("%s (in %s)", t.Format(time.RFC822), t.Sub(now).Round(time.Second))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", job.Name, schedule.Describe(job.Schedule), next, job.Enabled)
	}
	return w.Flush()
}
