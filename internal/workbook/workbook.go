// =============================================================================
// Purchase Parser - XLSX Workbook Module
// =============================================================================
//
// This module writes a parsed purchase to an Excel workbook and reads such a
// workbook back.
//
// SHEET LAYOUT (default Layout):
//
//   |   | A        | B            |
//   |---|----------|--------------|
//   | 1 | Buyer    | Ivan Ivanov  |
//   | 2 | Total    | =SUM(B5:B6)  |
//   | 3 |          |              |
//   | 4 | Product  | Cost         |
//   | 5 | apples   | 359          |
//   | 6 | coffee   | 90           |
//
// Products are listed in ascending order of name.
//
// =============================================================================

package workbook

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/purchase-parser/internal/purchase"
)

// =============================================================================
// LAYOUT CONFIGURATION
// =============================================================================

// Layout defines where the purchase lives in the workbook.
// Rows and columns are 1-based, as in Excel.
type Layout struct {
	// SheetName is the worksheet holding the purchase.
	// Default: "Purchase"
	SheetName string

	// BuyerRow holds the "Buyer" label and the buyer name.
	// Default: 1
	BuyerRow int

	// TotalRow holds the "Total" label and a SUM formula over the costs.
	// Default: 2
	TotalRow int

	// HeaderRow holds the "Product" / "Cost" column headers.
	// Default: 4
	HeaderRow int

	// NameColumn and CostColumn hold product names and costs.
	// Defaults: 1 (A), 2 (B)
	NameColumn int
	CostColumn int
}

// DefaultLayout returns the default sheet layout.
func DefaultLayout() Layout {
	return Layout{
		SheetName:  "Purchase",
		BuyerRow:   1,
		TotalRow:   2,
		HeaderRow:  4,
		NameColumn: 1,
		CostColumn: 2,
	}
}

type cellValue struct {
	col, row int
	value    any
}

// dataStartRow is the first product row.
func (l Layout) dataStartRow() int {
	return l.HeaderRow + 1
}

// =============================================================================
// EXPORT
// =============================================================================

// Write renders p as an XLSX workbook to w using the default layout.
func Write(w io.Writer, p purchase.Purchase) error {
	return WriteWithLayout(w, p, DefaultLayout())
}

// WriteWithLayout renders p as an XLSX workbook to w.
func WriteWithLayout(w io.Writer, p purchase.Purchase, layout Layout) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), layout.SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sheet := layout.SheetName
	cells := []cellValue{
		{layout.NameColumn, layout.BuyerRow, "Buyer"},
		{layout.CostColumn, layout.BuyerRow, p.BuyerName()},
		{layout.NameColumn, layout.TotalRow, "Total"},
		{layout.NameColumn, layout.HeaderRow, "Product"},
		{layout.CostColumn, layout.HeaderRow, "Cost"},
	}

	row := layout.dataStartRow()
	for name, cost := range p.Products().All() {
		cells = append(cells,
			cellValue{layout.NameColumn, row, name},
			cellValue{layout.CostColumn, row, cost},
		)
		row++
	}

	for _, c := range cells {
		cell, err := excelize.CoordinatesToCellName(c.col, c.row)
		if err != nil {
			return fmt.Errorf("invalid layout: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, c.value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}

	if err := setTotalFormula(f, layout, row-1); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

// setTotalFormula writes =SUM(first:last) over the cost column, or 0 when
// there are no products.
func setTotalFormula(f *excelize.File, layout Layout, lastRow int) error {
	totalCell, err := excelize.CoordinatesToCellName(layout.CostColumn, layout.TotalRow)
	if err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}

	if lastRow < layout.dataStartRow() {
		return f.SetCellValue(layout.SheetName, totalCell, 0)
	}

	first, err := excelize.CoordinatesToCellName(layout.CostColumn, layout.dataStartRow())
	if err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(layout.CostColumn, lastRow)
	if err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}

	if err := f.SetCellFormula(layout.SheetName, totalCell, fmt.Sprintf("SUM(%s:%s)", first, last)); err != nil {
		return fmt.Errorf("failed to write total formula: %w", err)
	}

	return nil
}

// =============================================================================
// IMPORT
// =============================================================================

// Read parses a workbook written by Write back into a Purchase.
func Read(r io.Reader) (purchase.Purchase, error) {
	return ReadWithLayout(r, DefaultLayout())
}

// ReadWithLayout parses a workbook laid out as described by layout.
func ReadWithLayout(r io.Reader, layout Layout) (purchase.Purchase, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return purchase.Purchase{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	// Raw values: formatted numbers lose digits past the 15th.
	rows, err := f.GetRows(layout.SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return purchase.Purchase{}, fmt.Errorf("failed to read rows: %w", err)
	}

	b := purchase.NewBuilder()
	b.SetBuyerName(cellAt(rows, layout.BuyerRow, layout.CostColumn))

	// Parse each data row.
	for i := layout.dataStartRow(); i <= len(rows); i++ {
		name := cellAt(rows, i, layout.NameColumn)
		costText := cellAt(rows, i, layout.CostColumn)

		// Skip empty rows.
		if name == "" && costText == "" {
			continue
		}

		cost, err := strconv.Atoi(costText)
		if err != nil {
			return purchase.Purchase{}, fmt.Errorf("error parsing row %d: invalid cost %q: %w", i, costText, err)
		}

		b.StartAddingProduct(cost)
		if err := b.FinishAddingProduct(name); err != nil {
			return purchase.Purchase{}, fmt.Errorf("error parsing row %d: %w", i, err)
		}
	}

	return b.Build(), nil
}

// cellAt returns the value at 1-based row and column, or "" when the row or
// column is missing.
func cellAt(rows [][]string, row, col int) string {
	if row < 1 || row > len(rows) {
		return ""
	}
	cells := rows[row-1]
	if col < 1 || col > len(cells) {
		return ""
	}
	return cells[col-1]
}
