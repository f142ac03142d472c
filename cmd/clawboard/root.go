package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clawboard/internal/config"
	"clawboard/internal/telemetry"
)

var exit = os.Exit
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clawboard",
	Short: "Clawboard: live dashboard for a local agent gateway",
	Long: `Clawboard watches a locally running agent gateway and derives a live
picture of the agent team from its session records: who is active, what
they are working on, and a consolidated activity log. It also tracks
tasks on a kanban board backed by SQLite or Postgres.`,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			fmt.Fprintf(os.Stderr, "Attempting graceful shutdown...\n")
			exit(1)
		}
	}()

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'clawboard --help' for usage.")
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("gateway-url", "", "Gateway base URL (overrides config and CLAWBOARD_GATEWAY_URL)")
	rootCmd.PersistentFlags().String("token", "", "Gateway bearer token")
	rootCmd.PersistentFlags().Bool("mock", false, "Use built-in mock data (no gateway required)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("gateway.url", rootCmd.PersistentFlags().Lookup("gateway-url"))
	viper.BindPFlag("gateway.token", rootCmd.PersistentFlags().Lookup("token"))
	viper.BindPFlag("mock", rootCmd.PersistentFlags().Lookup("mock"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.Load(cfgFile)

	if err := config.ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		exit(1)
	}

	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
}
