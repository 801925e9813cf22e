package parser

import (
	"errors"
	"fmt"
	"io"
)

// EOF is the rune Stream.Next returns once the input is exhausted. It is not
// a valid Unicode code point, so it never collides with real input.
const EOF rune = -1

// Stream yields the input one rune at a time and counts how many runes have
// been consumed.
type Stream struct {
	r      io.RuneReader
	offset int
	done   bool
}

// NewStream wraps r in a Stream.
func NewStream(r io.RuneReader) *Stream {
	return &Stream{r: r}
}

// Next returns the next rune, or EOF at end of input. Once EOF has been
// returned every later call returns EOF as well. Read failures other than
// io.EOF are returned as errors.
func (s *Stream) Next() (rune, error) {
	if s.done {
		return EOF, nil
	}

	r, _, err := s.r.ReadRune()
	if errors.Is(err, io.EOF) {
		s.done = true
		return EOF, nil
	}
	if err != nil {
		return EOF, fmt.Errorf("parser: read input at offset %d: %w", s.offset, err)
	}

	s.offset++
	return r, nil
}

// Offset returns the number of runes consumed so far.
func (s *Stream) Offset() int {
	return s.offset
}

// skipSpaces consumes space characters and returns the first rune that is
// not a space (possibly EOF). Only ' ' counts as a space; tabs do not.
func (s *Stream) skipSpaces() (rune, error) {
	for {
		r, err := s.Next()
		if err != nil || r != ' ' {
			return r, err
		}
	}
}
