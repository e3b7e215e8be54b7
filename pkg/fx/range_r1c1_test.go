package fx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromR1C1(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		ternary bool
		want    RangeR1C1
	}{
		{"absolute cell", "R1C1", false, RangeR1C1{
			R0: intPtr(0), C0: intPtr(0), R1: intPtr(0), C1: intPtr(0),
			AbsR0: true, AbsC0: true, AbsR1: true, AbsC1: true,
		}},
		{"relative cell", "R[-1]C[2]", false, RangeR1C1{R0: intPtr(-1), C0: intPtr(2), R1: intPtr(-1), C1: intPtr(2)}},
		{"zero offsets", "RC", false, RangeR1C1{R0: intPtr(0), C0: intPtr(0), R1: intPtr(0), C1: intPtr(0)}},
		{"lowercase", "r[1]c", false, RangeR1C1{R0: intPtr(1), C0: intPtr(0), R1: intPtr(1), C1: intPtr(0)}},
		{"row beam", "R1:R3", false, RangeR1C1{R0: intPtr(0), R1: intPtr(2), AbsR0: true, AbsR1: true}},
		{"column beam", "C[2]", false, RangeR1C1{C0: intPtr(2), C1: intPtr(2)}},
		{"ordered rectangle", "R2C2:R1C1", false, RangeR1C1{
			R0: intPtr(0), C0: intPtr(0), R1: intPtr(1), C1: intPtr(1),
			AbsR0: true, AbsC0: true, AbsR1: true, AbsC1: true,
		}},
		{"mixed anchoring keeps order", "R[1]C[1]:R2C2", false, RangeR1C1{
			R0: intPtr(1), C0: intPtr(1), R1: intPtr(1), C1: intPtr(1), AbsR1: true, AbsC1: true,
		}},
		{"partial", "RC:C", true, RangeR1C1{R0: intPtr(0), C0: intPtr(0), C1: intPtr(0)}},
		{"trim", "R1C1.:R2C2", false, RangeR1C1{
			R0: intPtr(0), C0: intPtr(0), R1: intPtr(1), C1: intPtr(1),
			AbsR0: true, AbsC0: true, AbsR1: true, AbsC1: true, Trim: TrimHead,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromR1C1(tt.input, tt.ternary)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromR1C1_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"row past edge", "R1048577C1"},
		{"column past edge", "R1C16385"},
		{"offset past edge", "R[1048576]C"},
		{"row zero", "R0C1"},
		{"partial without ternary", "RC:C"},
		{"unclosed offset", "R[1C"},
		{"name", "Rates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := FromR1C1(tt.input, false)
			assert.False(t, ok)
		})
	}
}

func TestR1C1_RoundTrip(t *testing.T) {
	inputs := []string{
		"R1C1", "R[-1]C[2]", "RC", "R", "C", "R1:R3", "C[2]", "C1:C[4]", "R[1]C[1]:R2C2",
		"RC:C", "R1C1:R1", "R1C1.:R2C2", "R1048576C16384",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			r, ok := FromR1C1(input, true)
			require.True(t, ok)
			assert.Equal(t, input, ToR1C1(r))
		})
	}
}

func TestToR1C1_FullSpans(t *testing.T) {
	allRows := RangeR1C1{
		R0: intPtr(0), R1: intPtr(MaxRows), C0: intPtr(1), C1: intPtr(1),
		AbsR0: true, AbsR1: true, AbsC0: true, AbsC1: true,
	}
	assert.Equal(t, "C2", ToR1C1(allRows))

	allCols := RangeR1C1{
		R0: intPtr(-2), R1: intPtr(-2), C0: intPtr(0), C1: intPtr(MaxCols),
		AbsC0: true, AbsC1: true,
	}
	assert.Equal(t, "R[-2]", ToR1C1(allCols))
}
