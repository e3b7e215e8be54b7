package fx

import (
	"errors"
	"strconv"
)

// Sheet bounds, as 0-based maximum indexes.
const (
	MaxRows = 1048575
	MaxCols = 16383
)

// ColToIndex converts column letters ("A", "aa", "XFD") to a 0-based column index.
// Only the last three letters are considered. Non-letters yield -1.
func ColToIndex(letters string) int {
	if letters == "" {
		return -1
	}
	start := 0
	if len(letters) > 3 {
		start = len(letters) - 3
	}
	n := 0
	for i := start; i < len(letters); i++ {
		d := letterValue(letters[i])
		if d < 0 {
			return -1
		}
		n = n*26 + d + 1
	}
	return n - 1
}

// letterValue maps A-Z (either case) to 0-25, anything else to -1.
func letterValue(c byte) int {
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	}
	return -1
}

// IndexToCol converts a 0-based column index to uppercase column letters.
func IndexToCol(index int) string {
	if index < 0 {
		return ""
	}
	var buf [4]byte
	i := len(buf)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

var errInvalidRow = errors.New("invalid row")

// RowToIndex converts a 1-based row string ("1", "1048576") to a 0-based index.
func RowToIndex(row string) (int, error) {
	if row == "" || len(row) > 7 {
		return 0, errInvalidRow
	}
	for i := 0; i < len(row); i++ {
		if row[i] < '0' || row[i] > '9' {
			return 0, errInvalidRow
		}
	}
	n, err := strconv.Atoi(row)
	if err != nil || n < 1 || n > MaxRows+1 {
		return 0, errInvalidRow
	}
	return n - 1, nil
}

// IndexToRow converts a 0-based row index to its 1-based text form.
func IndexToRow(index int) string {
	return strconv.Itoa(index + 1)
}

func clamp(lo, v, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// intPtr returns a pointer to a copy of v.
func intPtr(v int) *int {
	return &v
}

// derefOr returns *p, or def when p is nil.
func derefOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func sameInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
