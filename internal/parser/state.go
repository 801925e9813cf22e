// =============================================================================
// Purchase Parser - State Machine
// =============================================================================
//
// The parser is a finite-state machine over runes. Each state owns one
// production of the line grammar:
//
//   line := ws* name "|" ws* item ("," ws* item)* ws* "." ws*
//   item := ws* cost ws* '"' product '"'
//
// where ws is the space character only.
//
// TRANSITIONS:
//   ReadingName      --'|'-->  ReadingCost
//   ReadingCost      --'"'-->  ReadingProduct
//   ReadingProduct   --'"'-->  ReadingDelimiter
//   ReadingDelimiter --','-->  ReadingCost
//   ReadingDelimiter --'.'-->  Finished
//   Finished         --EOF-->  Finished
//
// Every transition except Finished makes exactly one Builder call.
//
// =============================================================================

package parser

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/purchase-parser/internal/purchase"
)

// =============================================================================
// STATES
// =============================================================================

// State is the production the machine is currently matching.
type State int

const (
	// ReadingName reads the buyer name up to '|'. It is the initial state.
	ReadingName State = iota

	// ReadingCost reads an integer cost up to the opening '"'.
	ReadingCost

	// ReadingProduct reads a product name up to the closing '"'.
	ReadingProduct

	// ReadingDelimiter expects ',' before another item or '.' at the end.
	ReadingDelimiter

	// Finished accepts only trailing spaces and line endings. It is terminal.
	Finished
)

// String returns a human-readable state name for error messages and logs.
func (s State) String() string {
	switch s {
	case ReadingName:
		return "reading name"
	case ReadingCost:
		return "reading cost"
	case ReadingProduct:
		return "reading product"
	case ReadingDelimiter:
		return "reading delimiter"
	case Finished:
		return "finished"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// =============================================================================
// TRANSITION DISPATCH
// =============================================================================

// Next consumes input for the current state, makes at most one call on out
// and returns the following state. Finished returns itself once the input is
// exhausted.
func (s State) Next(in *Stream, out *purchase.Builder) (State, error) {
	switch s {
	case ReadingName:
		return readName(in, out)
	case ReadingCost:
		return readCost(in, out)
	case ReadingProduct:
		return readProduct(in, out)
	case ReadingDelimiter:
		return readDelimiter(in)
	case Finished:
		return readTrailer(in)
	default:
		return s, &SyntaxError{State: s, Offset: in.Offset(), Expected: "a known parser state", Found: EOF}
	}
}

// =============================================================================
// PER-STATE BEHAVIOUR
// =============================================================================

// trimField strips leading and trailing runes up to and including ' ', so
// ASCII control characters go as well as spaces. Other Unicode whitespace
// such as U+00A0 is kept.
func trimField(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

func readName(in *Stream, out *purchase.Builder) (State, error) {
	r, err := in.skipSpaces()
	if err != nil {
		return ReadingName, err
	}

	var name strings.Builder
	for {
		switch r {
		case '|':
			out.SetBuyerName(trimField(name.String()))
			return ReadingCost, nil
		case EOF:
			return ReadingName, syntaxError(ReadingName, in, "delimiter '|'", EOF)
		default:
			name.WriteRune(r)
		}

		if r, err = in.Next(); err != nil {
			return ReadingName, err
		}
	}
}

func readCost(in *Stream, out *purchase.Builder) (State, error) {
	r, err := in.skipSpaces()
	if err != nil {
		return ReadingCost, err
	}

	var text strings.Builder
	for {
		switch r {
		case '"':
			raw := trimField(text.String())
			cost, convErr := strconv.Atoi(raw)
			if convErr != nil {
				return ReadingCost, &SyntaxError{
					State:    ReadingCost,
					Offset:   in.Offset(),
					Expected: "an integer cost before '\"'",
					Found:    r,
					Text:     raw,
					Err:      convErr,
				}
			}
			out.StartAddingProduct(cost)
			return ReadingProduct, nil
		case EOF:
			return ReadingCost, syntaxError(ReadingCost, in, "delimiter '\"'", EOF)
		default:
			text.WriteRune(r)
		}

		if r, err = in.Next(); err != nil {
			return ReadingCost, err
		}
	}
}

// readProduct keeps leading spaces: everything between the quotes is the name.
func readProduct(in *Stream, out *purchase.Builder) (State, error) {
	var name strings.Builder
	for {
		r, err := in.Next()
		if err != nil {
			return ReadingProduct, err
		}

		switch r {
		case '"':
			if err := out.FinishAddingProduct(name.String()); err != nil {
				return ReadingProduct, err
			}
			return ReadingDelimiter, nil
		case EOF:
			return ReadingProduct, syntaxError(ReadingProduct, in, "closing delimiter '\"'", EOF)
		default:
			name.WriteRune(r)
		}
	}
}

func readDelimiter(in *Stream) (State, error) {
	r, err := in.skipSpaces()
	if err != nil {
		return ReadingDelimiter, err
	}

	switch r {
	case '.':
		return Finished, nil
	case ',':
		return ReadingCost, nil
	default:
		return ReadingDelimiter, syntaxError(ReadingDelimiter, in, "delimiter ',' or '.'", r)
	}
}

func readTrailer(in *Stream) (State, error) {
	for {
		r, err := in.Next()
		if err != nil {
			return Finished, err
		}

		switch r {
		case ' ', '\n', '\r':
		case EOF:
			return Finished, nil
		default:
			return Finished, syntaxError(Finished, in, "only spaces or line endings after '.'", r)
		}
	}
}
