// =============================================================================
// Purchase Parser - Format Command
// =============================================================================
//
// This file defines the 'format' command, the inverse of 'parse': it reads a
// purchase document and prints the equivalent purchase line.
//
// COMMAND USAGE:
//   purchase format [flags]
//
// FLAGS:
//   --file : Read the document from a file instead of stdin
//   --from : Input document format, yaml (default) or xlsx
//
// EXAMPLE:
//   $ purchase parse --format yaml 'Bob | 2 "b", 1 "a".' | purchase format
//   Bob | 1 "a", 2 "b".
//
// =============================================================================

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/purchase-parser/internal/config"
	"github.com/ginjaninja78/purchase-parser/internal/converter"
	"github.com/ginjaninja78/purchase-parser/internal/parser"
	"github.com/ginjaninja78/purchase-parser/internal/purchase"
	"github.com/ginjaninja78/purchase-parser/internal/workbook"
)

// formatFile is the document to read instead of stdin.
var formatFile string

// formatFrom is the input document format.
var formatFrom string

// formatCmd represents the 'format' command.
var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Print a YAML or XLSX purchase as a purchase line",
	Long: `The format command reads a purchase document written by 'parse --format yaml'
or 'parse --format xlsx' and prints the purchase line that parses back to it.

It fails when the purchase has no products, when the buyer name contains '|'
or surrounding spaces, or when a product name contains '"'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFormat(cmd)
	},
}

// init registers the format command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().StringVarP(&formatFile, "file", "f", "", "Read the document from a file instead of stdin")
	formatCmd.Flags().StringVar(&formatFrom, "from", string(config.FormatYAML), "Input document format: yaml or xlsx")
}

func runFormat(cmd *cobra.Command) error {
	data, err := readFormatInput(cmd)
	if err != nil {
		return err
	}

	var p purchase.Purchase
	switch config.OutputFormat(formatFrom) {
	case config.FormatYAML:
		p, err = converter.DecodeYAML(data)
	case config.FormatXLSX:
		p, err = workbook.Read(bytes.NewReader(data))
	default:
		return fmt.Errorf("unsupported input format %q", formatFrom)
	}
	if err != nil {
		return err
	}

	line, err := parser.Format(p)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
	return err
}

func readFormatInput(cmd *cobra.Command) ([]byte, error) {
	if formatFile != "" {
		data, err := os.ReadFile(formatFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
