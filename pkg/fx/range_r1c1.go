// range_r1c1.go implements the R1C1 range scanner and its stringifier.

package fx

import "strconv"

// RangeR1C1 is a range in R1C1 notation. An Abs flag marks an absolute
// row/column number (R5); otherwise the value is an offset from an anchor
// cell (R[5]). A nil bound means the range is unbounded on that side.
type RangeR1C1 struct {
	R0    *int `json:"r0"`
	C0    *int `json:"c0"`
	R1    *int `json:"r1"`
	C1    *int `json:"c1"`
	AbsR0 bool `json:"$r0"`
	AbsC0 bool `json:"$c0"`
	AbsR1 bool `json:"$r1"`
	AbsC1 bool `json:"$c1"`
	Trim  Trim `json:"trim,omitempty"`
}

// Clone returns a deep copy of r.
func (r RangeR1C1) Clone() RangeR1C1 {
	c := r
	if r.R0 != nil {
		c.R0 = intPtr(*r.R0)
	}
	if r.C0 != nil {
		c.C0 = intPtr(*r.C0)
	}
	if r.R1 != nil {
		c.R1 = intPtr(*r.R1)
	}
	if r.C1 != nil {
		c.C1 = intPtr(*r.C1)
	}
	return c
}

// r1c1Part is one side of an R1C1 range: an R part, a C part, or both.
type r1c1Part struct {
	hasRow, hasCol bool
	row, col       int
	absRow, absCol bool
}

// advR1C1Axis scans R, R5 or R[-5] (or the C equivalents) at pos.
func advR1C1Axis(s string, pos int, axis byte, maxIndex int) (n, v int, abs bool) {
	if pos >= len(s) || (s[pos] != axis && s[pos] != axis+('a'-'A')) {
		return 0, 0, false
	}
	p := pos + 1
	if p < len(s) && s[p] == '[' {
		q := p + 1
		if q < len(s) && (s[q] == '+' || s[q] == '-') {
			q++
		}
		digits := q
		for q < len(s) && s[q] >= '0' && s[q] <= '9' {
			q++
		}
		if q == digits || q-digits > 7 || q >= len(s) || s[q] != ']' {
			return 0, 0, false
		}
		off, err := strconv.Atoi(s[p+1 : q])
		if err != nil || off > maxIndex || off < -maxIndex {
			return 0, 0, false
		}
		return q + 1 - pos, off, false
	}
	digits := p
	for p < len(s) && s[p] >= '0' && s[p] <= '9' {
		p++
	}
	if p == digits {
		return p - pos, 0, false
	}
	if p-digits > 7 {
		return 0, 0, false
	}
	num, err := strconv.Atoi(s[digits:p])
	if err != nil || num < 1 || num > maxIndex+1 {
		return 0, 0, false
	}
	return p - pos, num - 1, true
}

// advR1C1Part scans an R part and/or a C part at pos.
func advR1C1Part(s string, pos int) (int, r1c1Part) {
	var part r1c1Part
	p := pos
	if n, v, abs := advR1C1Axis(s, p, 'R', MaxRows); n > 0 {
		part.hasRow, part.row, part.absRow = true, v, abs
		p += n
	}
	if n, v, abs := advR1C1Axis(s, p, 'C', MaxCols); n > 0 {
		part.hasCol, part.col, part.absCol = true, v, abs
		p += n
	}
	return p - pos, part
}

// scanR1C1Range scans an R1C1 range starting at pos. It returns the range,
// the number of bytes consumed and the token type the shape lexes as.
func scanR1C1Range(s string, pos int, allowTernary bool) (RangeR1C1, int, TokenType) {
	n1, first := advR1C1Part(s, pos)
	if n1 == 0 {
		return RangeR1C1{}, 0, TokenUnknown
	}
	p := pos + n1
	preOp := p
	opLen, trim := advRangeOp(s, p)
	if opLen > 0 {
		if n2, second := advR1C1Part(s, p+opLen); n2 > 0 && canEndRange(s, p+opLen+n2) {
			end := p + opLen + n2
			full1 := first.hasRow && first.hasCol
			full2 := second.hasRow && second.hasCol
			switch {
			case full1 && full2:
				return joinR1C1(first, second, trim), end - pos, TokenRange
			case !full1 && !full2 && first.hasRow == second.hasRow:
				return joinR1C1(first, second, trim), end - pos, TokenBeam
			case allowTernary && full1 != full2:
				return joinR1C1(first, second, trim), end - pos, TokenTernary
			}
		}
	}
	if opLen == 0 && !canEndRange(s, preOp) {
		return RangeR1C1{}, 0, TokenUnknown
	}
	r := singleR1C1(first)
	if first.hasRow && first.hasCol {
		return r, preOp - pos, TokenRange
	}
	return r, preOp - pos, TokenBeam
}

// singleR1C1 expands a lone part symmetrically to both ends.
func singleR1C1(a r1c1Part) RangeR1C1 {
	var r RangeR1C1
	if a.hasRow {
		r.R0, r.R1 = intPtr(a.row), intPtr(a.row)
		r.AbsR0, r.AbsR1 = a.absRow, a.absRow
	}
	if a.hasCol {
		r.C0, r.C1 = intPtr(a.col), intPtr(a.col)
		r.AbsC0, r.AbsC1 = a.absCol, a.absCol
	}
	return r
}

// joinR1C1 merges the two sides of a range per axis. Ends sharing the same
// absoluteness are ordered; mixed ends are kept as written, and an axis
// present on one side only becomes partial.
func joinR1C1(a, b r1c1Part, trim Trim) RangeR1C1 {
	r := RangeR1C1{Trim: trim}
	r.R0, r.R1, r.AbsR0, r.AbsR1 = joinAxis(a.hasRow, a.row, a.absRow, b.hasRow, b.row, b.absRow)
	r.C0, r.C1, r.AbsC0, r.AbsC1 = joinAxis(a.hasCol, a.col, a.absCol, b.hasCol, b.col, b.absCol)
	return r
}

func joinAxis(has0 bool, v0 int, abs0 bool, has1 bool, v1 int, abs1 bool) (lo, hi *int, absLo, absHi bool) {
	switch {
	case has0 && has1:
		if abs0 == abs1 && v0 > v1 {
			v0, v1 = v1, v0
		}
		return intPtr(v0), intPtr(v1), abs0, abs1
	case has0:
		return intPtr(v0), nil, abs0, false
	case has1:
		return intPtr(v1), nil, abs1, false
	}
	return nil, nil, false, false
}

// FromR1C1 parses an R1C1 range string such as "R1C1", "R[-1]C:R[1]C[2]",
// "R1:R3" or "C[2]". Partial ranges such as "RC:R" require allowTernary.
func FromR1C1(s string, allowTernary bool) (RangeR1C1, bool) {
	r, n, _ := scanR1C1Range(s, 0, allowTernary)
	if n == 0 || n != len(s) {
		return RangeR1C1{}, false
	}
	return r, true
}

// r1c1Coord renders one coordinate: 5 for absolute, [5] for an offset and
// nothing at all for a zero offset.
func r1c1Coord(v int, abs bool) string {
	if abs {
		return strconv.Itoa(v + 1)
	}
	if v == 0 {
		return ""
	}
	return "[" + strconv.Itoa(v) + "]"
}

func clampR1C1(v int, abs bool, max int) int {
	if abs {
		return clamp(0, v, max)
	}
	return clamp(-max, v, max)
}

// ToR1C1 renders a range in canonical R1C1 form.
func ToR1C1(r RangeR1C1) string {
	nullR0, nullC0 := r.R0 == nil, r.C0 == nil
	nullR1, nullC1 := r.R1 == nil, r.C1 == nil
	op := r.Trim.operator()
	hasTrim := r.Trim != TrimNone

	r0 := clampR1C1(derefOr(r.R0, 0), r.AbsR0, MaxRows)
	c0 := clampR1C1(derefOr(r.C0, 0), r.AbsC0, MaxCols)
	absR1, absC1 := r.AbsR1, r.AbsC1
	var r1, c1 int
	if !nullR0 && nullR1 && !nullC0 && nullC1 {
		r1, c1 = r0, c0
		absR1, absC1 = r.AbsR0, r.AbsC0
		nullR1, nullC1 = false, false
	} else {
		r1 = clampR1C1(derefOr(r.R1, 0), r.AbsR1, MaxRows)
		c1 = clampR1C1(derefOr(r.C1, 0), r.AbsC1, MaxCols)
	}

	allRows := r.AbsR0 && absR1 && r0 == 0 && r1 >= MaxRows
	if (allRows && !nullC0 && !nullC1) || (nullR0 && nullR1) {
		a, b := r1c1Coord(c0, r.AbsC0), r1c1Coord(c1, absC1)
		if a == b && r.AbsC0 == absC1 && !hasTrim {
			return "C" + a
		}
		return "C" + a + op + "C" + b
	}
	allCols := r.AbsC0 && absC1 && c0 == 0 && c1 >= MaxCols
	if (allCols && !nullR0 && !nullR1) || (nullC0 && nullC1) {
		a, b := r1c1Coord(r0, r.AbsR0), r1c1Coord(r1, absR1)
		if a == b && r.AbsR0 == absR1 && !hasTrim {
			return "R" + a
		}
		return "R" + a + op + "R" + b
	}

	sr0, sc0 := r1c1Coord(r0, r.AbsR0), r1c1Coord(c0, r.AbsC0)
	sr1, sc1 := r1c1Coord(r1, absR1), r1c1Coord(c1, absC1)
	if nullR0 || nullR1 || nullC0 || nullC1 {
		s := ""
		if !nullR0 {
			s += "R" + sr0
		}
		if !nullC0 {
			s += "C" + sc0
		}
		s += op
		if !nullR1 {
			s += "R" + sr1
		}
		if !nullC1 {
			s += "C" + sc1
		}
		return s
	}
	if sr0 != sr1 || sc0 != sc1 || hasTrim {
		return "R" + sr0 + "C" + sc0 + op + "R" + sr1 + "C" + sc1
	}
	return "R" + sr0 + "C" + sc0
}
