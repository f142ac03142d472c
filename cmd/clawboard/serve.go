package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clawboard/internal/metrics"
	"clawboard/internal/notify"
	"clawboard/internal/poller"
	"clawboard/internal/telemetry"
	"clawboard/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard web server and polling loop",
	Long: `Starts the background polling loop against the gateway and serves the
dashboard UI and JSON API on the configured port. Prometheus metrics are
exposed on a separate port.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "HTTP port (overrides config)")
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tasks, err := newTaskStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer tasks.Close()

	logs, err := newLogStore()
	if err != nil {
		return fmt.Errorf("open log store: %w", err)
	}
	defer logs.Close()

	m := metrics.New(nil)
	notifier := notify.NewManager(telemetry.LogInfof)

	p := poller.New(newSource(), logs, pollConfig(), m, notifier)
	go p.Start(ctx)

	go func() {
		if err := telemetry.StartMetricsServer(viper.GetInt("metrics_port")); err != nil {
			slog.Error("metrics server stopped", "err", err)
		}
	}()

	srv := web.NewServer(p, tasks, logs, m, notifier, viper.GetInt("port"))

	errCh := make(chan error, 1)
	go func() {
		slog.Info("dashboard listening", "port", viper.GetInt("port"))
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
		return nil
	case err := <-errCh:
		return err
	}
}
