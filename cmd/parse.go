// =============================================================================
// Purchase Parser - Parse Command
// =============================================================================
//
// This file defines the 'parse' command, which parses a single purchase line
// and renders it.
//
// COMMAND USAGE:
//   purchase parse [line] [flags]
//
// INPUT (first match wins):
//   1. The positional argument
//   2. The first line of --file
//   3. The first line of stdin
//
// FLAGS:
//   --file    : Read the line from a file
//   --format  : Output format (text, xml, yaml, xlsx); default from config
//   --output  : Write to a file instead of stdout
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/purchase-parser/internal/config"
	"github.com/ginjaninja78/purchase-parser/internal/converter"
	"github.com/ginjaninja78/purchase-parser/internal/parser"
	"github.com/ginjaninja78/purchase-parser/internal/source"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// parseFile is the file to read the purchase line from.
var parseFile string

// parseFormat overrides the configured output format.
var parseFormat string

// parseOutput is the file to write the rendering to.
var parseOutput string

// =============================================================================
// PARSE COMMAND DEFINITION
// =============================================================================

// parseCmd represents the 'parse' command.
var parseCmd = &cobra.Command{
	Use:   "parse [line]",
	Short: "Parse one purchase line and print it",
	Long: `The parse command reads a single purchase line, from the argument, from
--file or from stdin, and renders it in the requested format.

Only the first line of a file or of stdin is used. A malformed line fails
with a message naming the offset and the expected delimiter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(cmd, args)
	},
}

// init registers the parse command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFile, "file", "f", "", "Read the purchase line from a file")
	parseCmd.Flags().StringVar(&parseFormat, "format", "", "Output format: text, xml, yaml or xlsx")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "Write the output to a file instead of stdout")
}

// =============================================================================
// PARSE FUNCTION
// =============================================================================

func runParse(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(parseFormat)
	if err != nil {
		return err
	}

	line, err := readParseInput(cmd, args)
	if err != nil {
		return err
	}

	p, err := parser.ParseString(line)
	if err != nil {
		logger.Debug("parse failed", "line", line, "error", err)
		return err
	}

	logger.Debug("parsed purchase", "buyer", p.BuyerName(), "products", p.Products().Len())

	data, err := converter.Render(p, format)
	if err != nil {
		return err
	}

	if parseOutput != "" {
		if err := os.WriteFile(parseOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Info("wrote output", "output", parseOutput)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// readParseInput returns the purchase line from the argument, --file or stdin.
func readParseInput(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case parseFile != "":
		return source.ReadFileLine(parseFile)
	default:
		return source.ReadLine(cmd.InOrStdin())
	}
}

// resolveFormat returns the flag value as an output format, or the configured
// format when the flag is empty.
func resolveFormat(flag string) (config.OutputFormat, error) {
	if flag == "" {
		return mainConfig.OutputFormat, nil
	}

	format := config.OutputFormat(flag)
	if !slices.Contains(config.OutputFormats, format) {
		return "", fmt.Errorf("unknown output format %q", flag)
	}

	return format, nil
}
