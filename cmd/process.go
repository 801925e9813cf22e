// =============================================================================
// Purchase Parser - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts every purchase
// file in the input directory.
//
// COMMAND USAGE:
//   purchase process [flags]
//
// FLAGS:
//   --dry-run : Parse and render without writing or archiving anything
//   --file    : Process only this file instead of scanning the input directory
//   --format  : Output format; default from config
//
// PROCESSING PIPELINE:
//   1. Discover input files matching input_pattern
//   2. For each file (at most max_concurrency at once):
//      a. Read the first line
//      b. Parse the purchase
//      c. Render the output
//      d. Write the output file
//      e. Archive the input and output files
//   3. Write the error log and the summary report
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/purchase-parser/internal/converter"
	"github.com/ginjaninja78/purchase-parser/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// processDryRun simulates processing without writing output files.
var processDryRun bool

// processFile is a specific file to process.
var processFile string

// processFormat overrides the configured output format.
var processFormat string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert every purchase file in the input directory",
	Long: `The process command scans the input directory for files matching
input_pattern, parses the first line of each as a purchase and writes the
rendering to the output directory.

Files are processed concurrently, at most max_concurrency at a time.

On successful processing:
  - The rendering is placed in the output directory
  - The input file is moved to the input archive
  - The output file is copied to the output archive

On error:
  - An error log is created in the output directory
  - The input file remains in the input directory
  - Processing continues for other files unless continue_on_error is false

A summary report is written to the output directory after every run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&processDryRun,
		"dry-run",
		false,
		"Parse and render without writing or archiving anything",
	)

	processCmd.Flags().StringVar(
		&processFile,
		"file",
		"",
		"Process only this file",
	)

	processCmd.Flags().StringVar(
		&processFormat,
		"format",
		"",
		"Output format: text, xml, yaml or xlsx",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()
	runID := uuid.New().String()
	out := cmd.OutOrStdout()
	log := logger.With("run_id", runID)

	cfg := *mainConfig
	format, err := resolveFormat(processFormat)
	if err != nil {
		return err
	}
	cfg.OutputFormat = format

	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir)
	files.ArchiveOnSuccess = cfg.ShouldArchive()

	if !processDryRun {
		if err := files.EnsureDirectories(); err != nil {
			return err
		}
	}

	// =========================================================================
	// STEP 1: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if processFile != "" {
		inputFiles = []string{processFile}
	} else {
		inputFiles, err = files.DiscoverInputFiles(cfg.InputPattern)
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No input files found in the input directory.")
		return nil
	}

	log.Info("processing files", "count", len(inputFiles), "format", cfg.OutputFormat, "dry_run", processDryRun)

	// =========================================================================
	// STEP 2: PROCESS FILES CONCURRENTLY
	// =========================================================================
	// Each goroutine owns results[i]; a failing file stops the run only when
	// continue_on_error is false.

	results := make([]converter.Result, len(inputFiles))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.MaxConcurrency)

	for i, file := range inputFiles {
		g.Go(func() error {
			conv := converter.New(file, &cfg, files, log)
			conv.DryRun = processDryRun

			results[i] = conv.Run(ctx)
			if results[i].Error != nil && !cfg.ShouldContinueOnError() {
				return fmt.Errorf("%s: %w", filepath.Base(file), results[i].Error)
			}
			return nil
		})
	}

	stopErr := g.Wait()

	// =========================================================================
	// STEP 3: COLLECT RESULTS
	// =========================================================================

	summary := utils.ProcessingSummary{
		RunID:      runID,
		StartTime:  startTime,
		TotalFiles: len(inputFiles),
	}
	var errorEntries []utils.ErrorLogEntry

	for _, result := range results {
		name := filepath.Base(result.FilePath)

		if result.Success {
			summary.SuccessfulFiles++
			summary.TotalProducts += result.Stats.Products
			summary.TotalCost += result.Stats.TotalCost
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:   name,
				OutputFile:  filepath.Base(result.OutputFile),
				BuyerName:   result.Purchase.BuyerName(),
				Products:    result.Stats.Products,
				ProcessTime: result.Stats.ProcessingTime,
			})
			fmt.Fprintf(out, "  ✓ %s -> %s\n", name, displayOutput(result))
			continue
		}

		summary.FailedFiles++
		summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
			InputFile:    name,
			ErrorMessage: result.Error.Error(),
		})
		errorEntries = append(errorEntries, utils.ErrorLogEntry{
			Timestamp:    result.FinishedAt,
			FileName:     name,
			ErrorType:    converter.ErrorType(result.Error),
			ErrorMessage: result.Error.Error(),
			Offset:       converter.ErrorOffset(result.Error),
		})
		fmt.Fprintf(out, "  ✗ %s: %v\n", name, result.Error)
	}

	summary.EndTime = time.Now()

	// =========================================================================
	// STEP 4: WRITE LOGS AND PRINT SUMMARY
	// =========================================================================

	if !processDryRun {
		if logPath, err := utils.WriteErrorLog(errorEntries, cfg.OutputDir, runID, summary.EndTime); err != nil {
			log.Error("failed to write error log", "error", err)
		} else if logPath != "" {
			fmt.Fprintf(out, "\nErrors have been logged to %s\n", logPath)
		}

		if summaryPath, err := utils.WriteSummaryLog(summary, cfg.OutputDir); err != nil {
			log.Error("failed to write summary", "error", err)
		} else {
			log.Debug("wrote summary", "path", summaryPath)
		}
	}

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Products:        %d\n", summary.TotalProducts)
	fmt.Fprintf(out, "Total cost:      %d\n", summary.TotalCost)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(startTime))

	if stopErr != nil {
		return fmt.Errorf("processing stopped: %w", stopErr)
	}
	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
	}

	return nil
}

// displayOutput names the written file, or the dry-run placeholder.
func displayOutput(result converter.Result) string {
	if result.OutputFile == "" {
		return fmt.Sprintf("(dry run, %d bytes)", result.Stats.OutputBytes)
	}
	return filepath.Base(result.OutputFile)
}
