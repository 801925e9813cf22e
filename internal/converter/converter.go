// =============================================================================
// Purchase Parser - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline for a single input file, from
// reading its purchase line to writing the rendered output.
//
// CONVERSION PIPELINE:
//   1. Read the first line of the input file
//   2. Parse the line into a purchase
//   3. Render the purchase in the configured output format
//   4. Write the output file
//   5. Archive the processed files
//
// CONCURRENCY:
//   A Converter holds no shared mutable state, so the process command runs
//   one per file concurrently.
//
// =============================================================================

package converter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/purchase-parser/internal/config"
	"github.com/ginjaninja78/purchase-parser/internal/parser"
	"github.com/ginjaninja78/purchase-parser/internal/purchase"
	"github.com/ginjaninja78/purchase-parser/internal/source"
	"github.com/ginjaninja78/purchase-parser/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated file.
	// This is empty if processing failed or in dry-run mode.
	OutputFile string

	// Purchase is the parsed purchase. It is the zero value on failure.
	Purchase purchase.Purchase

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats

	// FinishedAt is when processing ended, successfully or not.
	FinishedAt time.Time
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Products is the number of distinct products parsed.
	Products int

	// TotalCost is the sum of all product costs.
	TotalCost int

	// OutputBytes is the size of the rendered output.
	OutputBytes int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single purchase file.
type Converter struct {
	// path is the path to the input file.
	path string

	// config is the main application configuration.
	config *config.MainConfig

	// files handles naming and archival.
	files *utils.FileManager

	logger *slog.Logger

	// DryRun parses and renders without writing or archiving anything.
	DryRun bool

	// now is the clock used for output names.
	now func() time.Time
}

// New creates a new Converter for one input file. A nil logger discards
// all records.
func New(path string, cfg *config.MainConfig, files *utils.FileManager, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Converter{
		path:   path,
		config: cfg,
		files:  files,
		logger: logger.With("file", filepath.Base(path)),
		now:    time.Now,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file. It returns early with
// the context error if ctx is already done.
func (c *Converter) Run(ctx context.Context) Result {
	startTime := time.Now()
	result := Result{FilePath: c.path}

	defer func() {
		result.FinishedAt = time.Now()
		result.Stats.ProcessingTime = result.FinishedAt.Sub(startTime)
	}()

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 1: READ INPUT LINE
	// =========================================================================

	c.logger.Debug("processing file")

	line, err := source.ReadFileLine(c.path)
	if err != nil {
		result.Error = fmt.Errorf("failed to read input: %w", err)
		return result
	}

	// =========================================================================
	// STEP 2: PARSE PURCHASE
	// =========================================================================

	p, err := parser.ParseString(line)
	if err != nil {
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) {
			c.logger.Warn("malformed purchase line",
				"offset", syntaxErr.Offset,
				"state", syntaxErr.State.String(),
				"expected", syntaxErr.Expected)
		}
		result.Error = fmt.Errorf("failed to parse purchase: %w", err)
		return result
	}

	result.Purchase = p
	result.Stats.Products = p.Products().Len()
	result.Stats.TotalCost = p.Products().Total()
	c.logger.Debug("parsed purchase", "buyer", p.BuyerName(), "products", result.Stats.Products)

	// =========================================================================
	// STEP 3: RENDER OUTPUT
	// =========================================================================

	data, err := Render(p, c.config.OutputFormat)
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.OutputBytes = len(data)

	if c.DryRun {
		c.logger.Info("dry run, output not written", "bytes", len(data))
		result.Success = true
		return result
	}

	// =========================================================================
	// STEP 4: WRITE OUTPUT FILE
	// =========================================================================

	outputPath, err := c.writeOutput(data)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = outputPath
	c.logger.Info("wrote output", "output", outputPath)

	// =========================================================================
	// STEP 5: ARCHIVE FILES
	// =========================================================================
	// Archival failures are logged but do not fail the conversion.

	if err := c.archiveFiles(outputPath); err != nil {
		c.logger.Warn("failed to archive files", "error", err)
	}

	result.Success = true
	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeOutput writes data to a new file in the output directory.
func (c *Converter) writeOutput(data []byte) (string, error) {
	fileName := utils.GenerateOutputFileName(
		c.config.NameFormat,
		c.config.OutputFormat.Extension(),
		c.now(),
		map[string]string{"original": utils.BaseName(c.path)},
	)
	outputPath := filepath.Join(c.config.OutputDir, fileName)

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return outputPath, nil
}

// archiveFiles moves the input file and copies the output file to their
// archive directories.
func (c *Converter) archiveFiles(outputPath string) error {
	if _, err := c.files.ArchiveInputFile(c.path); err != nil {
		return fmt.Errorf("failed to archive input file: %w", err)
	}

	if _, err := c.files.ArchiveOutputFile(outputPath); err != nil {
		return fmt.Errorf("failed to archive output file: %w", err)
	}

	return nil
}

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

// Error types reported in error logs.
const (
	ErrorTypeSyntax   = "syntax"
	ErrorTypeEmpty    = "empty input"
	ErrorTypeIO       = "io"
	ErrorTypeCanceled = "canceled"
)

// ErrorType classifies a pipeline error for the error log.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, parser.ErrMalformedInput):
		return ErrorTypeSyntax
	case errors.Is(err, source.ErrNoInput):
		return ErrorTypeEmpty
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeCanceled
	default:
		return ErrorTypeIO
	}
}

// ErrorOffset returns the rune offset of a syntax error, or -1.
func ErrorOffset(err error) int {
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Offset
	}
	return -1
}
