package fx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromA1(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		ternary bool
		want    RangeA1
	}{
		{"cell", "A1", false, RangeA1{Top: intPtr(0), Left: intPtr(0), Bottom: intPtr(0), Right: intPtr(0)}},
		{"lowercase", "c3", false, RangeA1{Top: intPtr(2), Left: intPtr(2), Bottom: intPtr(2), Right: intPtr(2)}},
		{"absolute rectangle", "$B$2:C10", false, RangeA1{
			Top: intPtr(1), Left: intPtr(1), Bottom: intPtr(9), Right: intPtr(2), AbsTop: true, AbsLeft: true,
		}},
		{"column beam", "A:C", false, RangeA1{Left: intPtr(0), Right: intPtr(2)}},
		{"row beam", "1:3", false, RangeA1{Top: intPtr(0), Bottom: intPtr(2)}},
		{"absolute row beam", "$2:$4", false, RangeA1{Top: intPtr(1), Bottom: intPtr(3), AbsTop: true, AbsBottom: true}},
		{"max cell", "XFD1048576", false, RangeA1{
			Top: intPtr(MaxRows), Left: intPtr(MaxCols), Bottom: intPtr(MaxRows), Right: intPtr(MaxCols),
		}},
		{"partial column", "A1:C", true, RangeA1{Top: intPtr(0), Left: intPtr(0), Right: intPtr(2)}},
		{"partial row", "A1:3", true, RangeA1{Top: intPtr(0), Left: intPtr(0), Bottom: intPtr(2)}},
		{"partial from column", "C:A1", true, RangeA1{Left: intPtr(0), Right: intPtr(2), Bottom: intPtr(0)}},
		{"trim head", "A1.:B2", false, RangeA1{
			Top: intPtr(0), Left: intPtr(0), Bottom: intPtr(1), Right: intPtr(1), Trim: TrimHead,
		}},
		{"trim both", "A1.:.B2", false, RangeA1{
			Top: intPtr(0), Left: intPtr(0), Bottom: intPtr(1), Right: intPtr(1), Trim: TrimBoth,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromA1(tt.input, tt.ternary)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromA1_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		ternary bool
	}{
		{"empty", "", false},
		{"row past edge", "XFD1048577", false},
		{"column past edge", "XFE1048576", false},
		{"row zero", "A0", false},
		{"partial without ternary", "A1:C", false},
		{"partial row without ternary", "A1:3", false},
		{"trailing junk", "A1B", false},
		{"lone column", "A", false},
		{"lone row", "1", false},
		{"name", "Rates", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := FromA1(tt.input, tt.ternary)
			assert.False(t, ok)
		})
	}
}

func TestFromA1_OrdersCorners(t *testing.T) {
	flipped, ok := FromA1("B2:A1", false)
	require.True(t, ok)
	straight, ok := FromA1("A1:B2", false)
	require.True(t, ok)
	assert.Equal(t, straight, flipped)

	// $ flags travel with their coordinate
	r, ok := FromA1("$B$2:A1", false)
	require.True(t, ok)
	assert.Equal(t, "A1:$B$2", ToA1(r))
}

func TestToA1(t *testing.T) {
	tests := []struct {
		name  string
		input RangeA1
		want  string
	}{
		{"cell", Cell(2, 1), "B3"},
		{"rectangle", RangeA1{Top: intPtr(0), Left: intPtr(0), Bottom: intPtr(9), Right: intPtr(2)}, "A1:C10"},
		{"column beam", RangeA1{Left: intPtr(0), Right: intPtr(2)}, "A:C"},
		{"full height is a beam", RangeA1{Top: intPtr(0), Left: intPtr(3), Bottom: intPtr(MaxRows), Right: intPtr(3)}, "D:D"},
		{"row beam", RangeA1{Top: intPtr(4), Bottom: intPtr(4)}, "5:5"},
		{"full width is a beam", RangeA1{Top: intPtr(0), Left: intPtr(0), Bottom: intPtr(0), Right: intPtr(MaxCols)}, "1:1"},
		{"full width keeps column anchor", RangeA1{Top: intPtr(0), Left: intPtr(0), Bottom: intPtr(0), Right: intPtr(MaxCols), AbsRight: true}, "A1:$XFD1"},
		{"full height keeps column anchor", RangeA1{Top: intPtr(0), Left: intPtr(0), Bottom: intPtr(MaxRows), Right: intPtr(1), AbsLeft: true}, "$A1:B1048576"},
		{"full width keeps row anchor", RangeA1{Top: intPtr(0), Left: intPtr(0), Bottom: intPtr(1), Right: intPtr(MaxCols), AbsTop: true}, "A$1:XFD2"},
		{"full height same column", RangeA1{Top: intPtr(0), Left: intPtr(3), Bottom: intPtr(MaxRows), Right: intPtr(3), AbsLeft: true}, "$D:D"},
		{"partial column", RangeA1{Top: intPtr(0), Left: intPtr(0), Right: intPtr(2)}, "A1:C"},
		{"partial row", RangeA1{Top: intPtr(0), Left: intPtr(0), Bottom: intPtr(2)}, "A1:3"},
		{"partial from column", RangeA1{Left: intPtr(0), Right: intPtr(2), Bottom: intPtr(0)}, "A1:C"},
		{"partial from row", RangeA1{Top: intPtr(0), Bottom: intPtr(2), Right: intPtr(0)}, "A1:3"},
		{"mixed anchoring", RangeA1{Top: intPtr(0), Left: intPtr(0), Bottom: intPtr(0), Right: intPtr(0), AbsTop: true, AbsLeft: true}, "$A$1:A1"},
		{"trim", RangeA1{Top: intPtr(0), Left: intPtr(0), Bottom: intPtr(0), Right: intPtr(0), Trim: TrimTail}, "A1:.A1"},
		{"clamped", RangeA1{Top: intPtr(-4), Left: intPtr(MaxCols + 10), Bottom: intPtr(-4), Right: intPtr(MaxCols + 10)}, "XFD1"},
		{"corner only", RangeA1{Top: intPtr(3), Left: intPtr(1)}, "B4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToA1(tt.input))
		})
	}
}

func TestA1_RoundTrip(t *testing.T) {
	inputs := []string{
		"A1", "$A$1", "A$1", "$A1", "A1:B2", "$B$2:C10", "A:A", "$A:$C", "1:1", "$1:$3",
		"A1:C", "A1:3", "A1.:B2", "A1:.B2", "A1.:.B2", "XFD1048576",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			r, ok := FromA1(input, true)
			require.True(t, ok)
			assert.Equal(t, input, ToA1(r))
		})
	}
}

func TestAddA1RangeBounds(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"B2:A", "A2:B1048576"},
		{"A1:3", "1:3"},
		{"A:B", "A:B"},
		{"2:3", "2:3"},
		{"A1:B2", "A1:B2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, ok := FromA1(tt.input, true)
			require.True(t, ok)
			bounded := AddA1RangeBounds(r)
			assert.Equal(t, tt.want, ToA1(bounded))
			assert.NotNil(t, bounded.Top)
			assert.NotNil(t, bounded.Bottom)
			assert.NotNil(t, bounded.Left)
			assert.NotNil(t, bounded.Right)
		})
	}
}

func TestAddA1RangeBounds_DoesNotMutate(t *testing.T) {
	r, ok := FromA1("A1:C", true)
	require.True(t, ok)
	_ = AddA1RangeBounds(r)
	assert.Nil(t, r.Bottom)
}
