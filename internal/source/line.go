// =============================================================================
// Purchase Parser - Line Source
// =============================================================================
//
// This module obtains the single line of text a parse works on. Only the
// first line of the input is used; anything after it is ignored, matching
// the one-line-per-invocation contract of the parser.
//
// =============================================================================

package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoInput is returned when the input holds no line at all.
var ErrNoInput = errors.New("source: no input line")

// ReadLine returns the first line of r without its line terminator ("\n" or
// "\r\n"). A final line without a terminator is returned as is.
func ReadLine(r io.Reader) (string, error) {
	reader := bufio.NewReader(r)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read line: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", ErrNoInput
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return line, nil
}

// ReadFileLine opens filePath and returns its first line.
func ReadFileLine(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	line, err := ReadLine(file)
	if err != nil {
		return "", fmt.Errorf("%s: %w", filePath, err)
	}

	return line, nil
}
