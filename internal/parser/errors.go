package parser

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedInput is the sentinel every grammar violation wraps.
// Callers branch with errors.Is(err, ErrMalformedInput).
var ErrMalformedInput = errors.New("malformed input")

// ErrUnrepresentable is returned by Format when a purchase cannot be written
// in the line grammar.
var ErrUnrepresentable = errors.New("purchase cannot be written as a line")

// SyntaxError describes where and why a line failed to parse.
type SyntaxError struct {
	// State is the state that rejected the input.
	State State

	// Offset is the number of runes consumed when the error was detected.
	Offset int

	// Expected names the delimiter or token the state was looking for.
	Expected string

	// Found is the offending rune, or EOF when the input ended early.
	Found rune

	// Text is the accumulated text that failed to convert, if any.
	Text string

	// Err is the underlying conversion error, if any.
	Err error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var found string
	switch {
	case e.Text != "":
		found = strconv.Quote(e.Text)
	case e.Found == EOF:
		found = "end of input"
	default:
		found = strconv.QuoteRune(e.Found)
	}

	return fmt.Sprintf("%s at offset %d while %s: expected %s but found %s",
		ErrMalformedInput, e.Offset, e.State, e.Expected, found)
}

// Unwrap exposes ErrMalformedInput and the underlying cause to errors.Is.
func (e *SyntaxError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedInput}
	}
	return []error{ErrMalformedInput, e.Err}
}

func syntaxError(state State, in *Stream, expected string, found rune) *SyntaxError {
	return &SyntaxError{
		State:    state,
		Offset:   in.Offset(),
		Expected: expected,
		Found:    found,
	}
}
