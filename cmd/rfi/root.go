package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retainops/rfi/internal/config"
)

var (
	// Global flags
	verbose bool
	output  string
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rfi",
	Short: "Engagement-decay scoring from daily activity logs",
	Long: `rfi turns binary daily-activity logs into behavioral fingerprints.

For each user it segments the day-by-day active/inactive sequence into
inactivity episodes, aggregates them into an RFI table (Recency,
Frequency, Inactivity duration), and derives an eleven-feature vector
plus a single dormancy score used to flag at-risk clients.

Core Commands:
  analyze     Score every user of an activity matrix
  table       Show one user's RFI table
  dormancy    Show one user's dormancy score
  ingest      Pivot a raw event log into an activity matrix
  cohort      Filter dropout and fully-active clients
  version     Show version information`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		syncConfigFlagToEnv()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.rfiscan/config.yaml)")
}

// loadConfig resolves configuration with the global flags applied on top.
func loadConfig() (*config.Config, error) {
	overrides := &config.Config{Output: output, Verbose: verbose}
	return config.Load(overrides)
}

// VerbosePrintf prints only when verbose mode is enabled.
func VerbosePrintf(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format, args...)
	}
}

func syncConfigFlagToEnv() {
	path := strings.TrimSpace(cfgFile)
	if path == "" {
		return
	}
	_ = os.Setenv("RFISCAN_CONFIG", path)
}
