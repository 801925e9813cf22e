// =============================================================================
// Purchase Parser - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (purchase)
//   ├── parseCmd   (purchase parse)
//   ├── processCmd (purchase process)
//   ├── formatCmd  (purchase format)
//   └── versionCmd (purchase version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads config.yaml (or --config) and PURCHASE_* environment variables
//   2. Builds the slog logger; logs always go to stderr
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/purchase-parser/internal/config"
	"github.com/ginjaninja78/purchase-parser/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging when set to true.
var verbose bool

// mainConfig is the configuration loaded by the root command.
var mainConfig *config.MainConfig

// logger is built from mainConfig by the root command.
var logger *slog.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "purchase",
	Short: "Purchase Parser - Parse one-line purchase records",
	Long: `Purchase Parser reads purchase lines of the form

  Ivan Ivanov | 359 "apples", 90 "coffee".

and renders them as canonical text, XML, YAML or an Excel workbook.

Example Usage:
  purchase parse 'Bob | 10 "tea".'         # Print the canonical text form
  echo '...' | purchase parse --format xml # Read the line from stdin
  purchase process                         # Convert every file in the input directory
  purchase format --file bob.yaml          # Turn a YAML purchase back into a line`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main(). An interrupt
// cancels the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: Path to the main configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the main configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initConfig loads the configuration and builds the logger.
func initConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}

	mainConfig = cfg
	logger = logging.New(level, logging.Format(cfg.LogFormat), cmd.ErrOrStderr())

	logger.Debug("configuration loaded", "config", cfgFile, "output_format", cfg.OutputFormat)

	return nil
}
