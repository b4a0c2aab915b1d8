package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/homebridge-ai/clarity/internal/config"
	"github.com/homebridge-ai/clarity/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg           *config.Config
	logger        *zap.Logger
	restoreLogger func()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clarity",
	Short: "Clarity - caregiving situation triage",
	Long: `Clarity reads a short description of a family caregiving situation and
names the primary issue, the constraints in the way and a few next choices.

Run "clarity serve" for the HTTP API or "clarity analyze" for a one-off
analysis from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		logger, restoreLogger, err = logging.Setup(cfg.Logging)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if restoreLogger != nil {
			restoreLogger()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "clarity.yaml", "path to config file (yaml or toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, analyzeCmd, onboardCmd, questionsCmd, categoriesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
