// =============================================================================
// Purchase Parser - XML Writer Module
// =============================================================================
//
// This module renders a parsed purchase as an XML document.
//
// XML STRUCTURE:
//
//   <purchase>                                   <!-- Root element -->
//     <buyer>Ivan Ivanov</buyer>
//     <products count="2" total="449">
//       <product n="1" cost="359">apples</product>  <!-- Ascending by name -->
//       <product n="2" cost="90">coffee</product>
//     </products>
//   </purchase>
//
// Product names are written as character data exactly as parsed, including
// surrounding spaces.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ginjaninja78/purchase-parser/internal/purchase"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// RootAttributes are additional attributes for the root element,
	// written in key order.
	// Example: {"xmlns": "http://example.com/schema"}
	RootAttributes map[string]string

	// RootElement, BuyerElement, ProductsElement and ProductElement name the
	// elements of the document.
	// Defaults: "purchase", "buyer", "products", "product"
	RootElement     string
	BuyerElement    string
	ProductsElement string
	ProductElement  string

	// ProductIndexAttribute is the attribute holding the 1-based product index.
	// Default: "n"
	ProductIndexAttribute string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
		RootAttributes:        make(map[string]string),
		RootElement:           "purchase",
		BuyerElement:          "buyer",
		ProductsElement:       "products",
		ProductElement:        "product",
		ProductIndexAttribute: "n",
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate renders p as an XML document with the default options.
func Generate(p purchase.Purchase) ([]byte, error) {
	return GenerateWithOptions(p, DefaultGenerateOptions())
}

// GenerateWithOptions renders p as an XML document with custom options.
func GenerateWithOptions(p purchase.Purchase, options GenerateOptions) ([]byte, error) {
	if err := checkNames(options); err != nil {
		return nil, err
	}

	var buffer bytes.Buffer

	// Write XML declaration if requested.
	if options.IncludeXMLDeclaration {
		fmt.Fprintf(&buffer, "<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding)
	}

	writeElement(&buffer, buildDocument(p, options), options.Indent, 0)

	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLElement represents a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement
}

// buildDocument constructs the document tree for p.
func buildDocument(p purchase.Purchase, options GenerateOptions) XMLElement {
	root := XMLElement{XMLName: xml.Name{Local: options.RootElement}}

	for _, key := range slices.Sorted(maps.Keys(options.RootAttributes)) {
		root.Attributes = append(root.Attributes, attr(key, options.RootAttributes[key]))
	}

	root.Children = append(root.Children, createSimpleElement(options.BuyerElement, p.BuyerName()))

	products := XMLElement{
		XMLName: xml.Name{Local: options.ProductsElement},
		Attributes: []xml.Attr{
			attr("count", strconv.Itoa(p.Products().Len())),
			attr("total", strconv.Itoa(p.Products().Total())),
		},
	}

	index := 1
	for name, cost := range p.Products().All() {
		product := createSimpleElement(options.ProductElement, name)
		product.Attributes = []xml.Attr{
			attr(options.ProductIndexAttribute, strconv.Itoa(index)),
			attr("cost", strconv.Itoa(cost)),
		}
		products.Children = append(products.Children, product)
		index++
	}

	root.Children = append(root.Children, products)

	return root
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// createSimpleElement creates a simple XML element with a text value.
func createSimpleElement(name, value string) XMLElement {
	return XMLElement{
		XMLName: xml.Name{Local: name},
		Value:   value,
	}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// checkNames rejects empty element names, which would produce broken XML.
func checkNames(options GenerateOptions) error {
	for _, name := range []string{
		options.RootElement,
		options.BuyerElement,
		options.ProductsElement,
		options.ProductElement,
		options.ProductIndexAttribute,
	} {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("xmlwriter: element and attribute names must not be empty")
		}
	}
	return nil
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	// Write indentation.
	buffer.WriteString(strings.Repeat(indent, level))

	// Write opening tag.
	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	// Write attributes.
	for _, a := range element.Attributes {
		fmt.Fprintf(buffer, " %s=\"%s\"", a.Name.Local, escapeXML(a.Value))
	}

	// Self-closing tag when there is nothing inside.
	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if len(element.Children) == 0 {
		// Simple element with text value.
		buffer.WriteString(escapeXML(element.Value))
	} else {
		// Element with children.
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		buffer.WriteString(strings.Repeat(indent, level))
	}

	// Write closing tag.
	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	_ = xml.EscapeText(&buffer, []byte(s))
	return buffer.String()
}
