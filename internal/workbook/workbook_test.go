package workbook_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/purchase-parser/internal/parser"
	"github.com/ginjaninja78/purchase-parser/internal/purchase"
	"github.com/ginjaninja78/purchase-parser/internal/workbook"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	t.Parallel()

	p := purchase.New("Ivan Ivanov", map[string]int{
		"apples":                         359,
		"coffee":                         90,
		"legumes (peas, beans, peanuts)": 30,
		"refund":                         -5,
	})

	var buf bytes.Buffer
	require.NoError(t, workbook.Write(&buf, p))

	got, err := workbook.Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, p.Equal(got), "got %v", got)
}

func TestWriteRead_LargeCosts(t *testing.T) {
	t.Parallel()

	p, err := parser.ParseString(`Bob | 1234567890123456789 "x", -9223372036854775808 "min", 9223372036854775807 "max".`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, workbook.Write(&buf, p))

	got, err := workbook.Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, p.Equal(got), "got %v", got.Products().Map())
}

func TestWrite_Layout(t *testing.T) {
	t.Parallel()

	p := purchase.New("Bob", map[string]int{"b": 2, "a": 1})

	var buf bytes.Buffer
	require.NoError(t, workbook.Write(&buf, p))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Purchase"}, f.GetSheetList())

	rows, err := f.GetRows("Purchase")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 6)
	assert.Equal(t, []string{"Buyer", "Bob"}, rows[0])
	assert.Equal(t, []string{"Product", "Cost"}, rows[3])
	assert.Equal(t, []string{"a", "1"}, rows[4])
	assert.Equal(t, []string{"b", "2"}, rows[5])

	formula, err := f.GetCellFormula("Purchase", "B2")
	require.NoError(t, err)
	assert.Equal(t, "SUM(B5:B6)", formula)
}

func TestWriteRead_EmptyPurchase(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, workbook.Write(&buf, purchase.New("", nil)))

	got, err := workbook.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, "", got.BuyerName())
	assert.Equal(t, 0, got.Products().Len())
}

func TestWriteWithLayout(t *testing.T) {
	t.Parallel()

	layout := workbook.DefaultLayout()
	layout.SheetName = "Receipt"
	layout.HeaderRow = 10
	layout.NameColumn = 3
	layout.CostColumn = 4

	p := purchase.New("Alice", map[string]int{"tea": 4})

	var buf bytes.Buffer
	require.NoError(t, workbook.WriteWithLayout(&buf, p, layout))

	got, err := workbook.ReadWithLayout(bytes.NewReader(buf.Bytes()), layout)
	require.NoError(t, err)
	assert.True(t, p.Equal(got))

	_, err = workbook.Read(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err, "default sheet name does not exist")
}

func TestRead_InvalidCost(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Purchase"))
	require.NoError(t, f.SetCellValue("Purchase", "B1", "Bob"))
	require.NoError(t, f.SetCellValue("Purchase", "A5", "tea"))
	require.NoError(t, f.SetCellValue("Purchase", "B5", "lots"))

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	_, err = workbook.Read(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 5")
}

func TestRead_NotAWorkbook(t *testing.T) {
	t.Parallel()

	_, err := workbook.Read(bytes.NewReader([]byte("Bob | 1 \"x\".")))
	assert.Error(t, err)
}
