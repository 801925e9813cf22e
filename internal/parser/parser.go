package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ginjaninja78/purchase-parser/internal/purchase"
)

// Run drives the machine from ReadingName and feeds out until Finished is
// reached, then lets Finished consume the rest of the input so that trailing
// text after '.' is rejected. On error out holds a partial purchase and
// should be discarded.
func Run(in *Stream, out *purchase.Builder) error {
	state := ReadingName
	for state != Finished {
		next, err := state.Next(in, out)
		if err != nil {
			return err
		}
		state = next
	}

	_, err := state.Next(in, out)
	return err
}

// Parse reads one purchase line from r.
func Parse(r io.RuneReader) (purchase.Purchase, error) {
	b := purchase.NewBuilder()
	if err := Run(NewStream(r), b); err != nil {
		return purchase.Purchase{}, err
	}
	return b.Build(), nil
}

// ParseString parses a purchase line held in a string.
func ParseString(line string) (purchase.Purchase, error) {
	return Parse(strings.NewReader(line))
}

// Format writes p in the line grammar, e.g.
//
//	Ivan Ivanov | 359 "apples", 90 "coffee".
//
// Parsing the result yields a purchase equal to p. It fails with
// ErrUnrepresentable when p has no products, its buyer name contains '|' or
// leading/trailing spaces or control characters, or a product name contains '"'.
func Format(p purchase.Purchase) (string, error) {
	buyer := p.BuyerName()
	if strings.ContainsRune(buyer, '|') {
		return "", unrepresentable("buyer name contains '|'")
	}
	if buyer != trimField(buyer) {
		return "", unrepresentable("buyer name has surrounding spaces or control characters")
	}
	if p.Products().Len() == 0 {
		return "", unrepresentable("no products")
	}

	var sb strings.Builder
	sb.WriteString(buyer)
	sb.WriteString(" |")

	first := true
	for name, cost := range p.Products().All() {
		if strings.ContainsRune(name, '"') {
			return "", unrepresentable("product name " + strconv.Quote(name) + " contains '\"'")
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false

		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(cost))
		sb.WriteString(` "`)
		sb.WriteString(name)
		sb.WriteByte('"')
	}
	sb.WriteByte('.')

	return sb.String(), nil
}

func unrepresentable(reason string) error {
	return fmt.Errorf("%w: %s", ErrUnrepresentable, reason)
}
