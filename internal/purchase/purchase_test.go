package purchase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/purchase-parser/internal/purchase"
)

func TestNew_CopiesSourceMap(t *testing.T) {
	t.Parallel()

	src := map[string]int{"apples": 359, "coffee": 90}
	p := purchase.New("Ivan Ivanov", src)

	src["apples"] = 1
	src["tea"] = 5
	delete(src, "coffee")

	assert.Equal(t, map[string]int{"apples": 359, "coffee": 90}, p.Products().Map())
	assert.Equal(t, 2, p.Products().Len())
}

func TestNew_NilMap(t *testing.T) {
	t.Parallel()

	p := purchase.New("", nil)

	assert.Equal(t, "", p.BuyerName())
	assert.Equal(t, 0, p.Products().Len())
	assert.Equal(t, "\n", p.String())
}

func TestProducts_ReturnedValuesAreCopies(t *testing.T) {
	t.Parallel()

	p := purchase.New("Bob", map[string]int{"b": 2, "a": 1})

	names := p.Products().Names()
	require.Equal(t, []string{"a", "b"}, names)
	names[0] = "zzz"

	m := p.Products().Map()
	m["a"] = 100

	cost, ok := p.Products().Cost("a")
	require.True(t, ok)
	assert.Equal(t, 1, cost)
	assert.Equal(t, []string{"a", "b"}, p.Products().Names())
}

func TestProducts_AllIsSorted(t *testing.T) {
	t.Parallel()

	p := purchase.New("x", map[string]int{"pear": 3, "apple": 1, "Zebra": 9, "banana": 2})

	var got []string
	for name := range p.Products().All() {
		got = append(got, name)
	}

	assert.Equal(t, []string{"Zebra", "apple", "banana", "pear"}, got)
}

func TestProducts_AllStopsEarly(t *testing.T) {
	t.Parallel()

	p := purchase.New("x", map[string]int{"a": 1, "b": 2, "c": 3})

	count := 0
	for range p.Products().All() {
		count++
		if count == 2 {
			break
		}
	}

	assert.Equal(t, 2, count)
}

func TestProducts_CostMissing(t *testing.T) {
	t.Parallel()

	_, ok := purchase.New("x", map[string]int{"a": 1}).Products().Cost("b")
	assert.False(t, ok)
}

func TestProducts_Total(t *testing.T) {
	t.Parallel()

	p := purchase.New("x", map[string]int{"a": 1, "b": 20, "c": 300})
	assert.Equal(t, 321, p.Products().Total())
}

func TestPurchase_String(t *testing.T) {
	t.Parallel()

	p := purchase.New("Ivan Ivanov", map[string]int{
		"legumes (peas, beans, peanuts)": 30,
		"coffee":                         90,
		"apples":                         359,
	})

	want := "Ivan Ivanov\n" +
		"359\napples\n" +
		"90\ncoffee\n" +
		"30\nlegumes (peas, beans, peanuts)\n"

	assert.Equal(t, want, p.String())
}

func TestPurchase_Equal(t *testing.T) {
	t.Parallel()

	a := purchase.New("Bob", map[string]int{"x": 1, "y": 2})

	tests := []struct {
		name  string
		other purchase.Purchase
		want  bool
	}{
		{"same content", purchase.New("Bob", map[string]int{"y": 2, "x": 1}), true},
		{"different buyer", purchase.New("Alice", map[string]int{"x": 1, "y": 2}), false},
		{"different cost", purchase.New("Bob", map[string]int{"x": 1, "y": 3}), false},
		{"missing product", purchase.New("Bob", map[string]int{"x": 1}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Equal(tt.other))
		})
	}
}

func TestPurchase_ZeroValue(t *testing.T) {
	t.Parallel()

	var p purchase.Purchase

	assert.Equal(t, 0, p.Products().Len())
	assert.True(t, p.Equal(purchase.New("", nil)))
	assert.Empty(t, p.Products().Names())
}
