// =============================================================================
// Purchase Parser - Output Rendering
// =============================================================================
//
// This module turns a parsed purchase into the bytes of one output format.
// It is shared by the 'parse' command (single line to stdout) and by the
// batch pipeline in converter.go.
//
// FORMATS:
//   text - the canonical multi-line form of purchase.Purchase.String
//   xml  - see internal/xmlwriter
//   yaml - buyer, products (ascending by name) and total, in that order
//   xlsx - see internal/workbook
//
// =============================================================================

package converter

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/purchase-parser/internal/config"
	"github.com/ginjaninja78/purchase-parser/internal/purchase"
	"github.com/ginjaninja78/purchase-parser/internal/workbook"
	"github.com/ginjaninja78/purchase-parser/internal/xmlwriter"
)

// Render encodes p in the given output format.
func Render(p purchase.Purchase, format config.OutputFormat) ([]byte, error) {
	switch format {
	case config.FormatText:
		return []byte(p.String()), nil

	case config.FormatXML:
		data, err := xmlwriter.Generate(p)
		if err != nil {
			return nil, fmt.Errorf("failed to generate XML: %w", err)
		}
		return data, nil

	case config.FormatYAML:
		return renderYAML(p)

	case config.FormatXLSX:
		var buf bytes.Buffer
		if err := workbook.Write(&buf, p); err != nil {
			return nil, fmt.Errorf("failed to generate workbook: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// =============================================================================
// YAML
// =============================================================================

// yamlPurchase is the decoding shape of a YAML purchase document.
type yamlPurchase struct {
	Buyer    string         `yaml:"buyer"`
	Products map[string]int `yaml:"products"`
}

// renderYAML builds the document as a node tree so products keep their
// ascending order.
func renderYAML(p purchase.Purchase) ([]byte, error) {
	products := &yaml.Node{Kind: yaml.MappingNode}
	for name, cost := range p.Products().All() {
		products.Content = append(products.Content, strNode(name), intNode(cost))
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content,
		strNode("buyer"), strNode(p.BuyerName()),
		strNode("products"), products,
		strNode("total"), intNode(p.Products().Total()),
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeYAML reads a purchase from a YAML document with the shape produced
// by Render. The total key, if present, is ignored.
func DecodeYAML(data []byte) (purchase.Purchase, error) {
	var doc yamlPurchase
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return purchase.Purchase{}, fmt.Errorf("failed to parse YAML purchase: %w", err)
	}

	return purchase.New(doc.Buyer, doc.Products), nil
}

func strNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func intNode(value int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(value)}
}
