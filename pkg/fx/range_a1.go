// range_a1.go implements the hand-written A1 range scanner and its stringifier.

package fx

// Trim marks which ends of a range are trimmed of empty cells (the .: :. and .:. operators).
type Trim string

const (
	TrimNone Trim = ""
	TrimHead Trim = "head" // .:
	TrimTail Trim = "tail" // :.
	TrimBoth Trim = "both" // .:.
)

// operator returns the range operator text for the trim mode.
func (t Trim) operator() string {
	switch t {
	case TrimHead:
		return ".:"
	case TrimTail:
		return ":."
	case TrimBoth:
		return ".:."
	}
	return ":"
}

// RangeA1 is a rectangle in A1 coordinates. A nil bound means the range is
// unbounded on that side (beams and partial ranges).
type RangeA1 struct {
	Top       *int `json:"top"`
	Left      *int `json:"left"`
	Bottom    *int `json:"bottom"`
	Right     *int `json:"right"`
	AbsTop    bool `json:"$top"`
	AbsLeft   bool `json:"$left"`
	AbsBottom bool `json:"$bottom"`
	AbsRight  bool `json:"$right"`
	Trim      Trim `json:"trim,omitempty"`
}

// Clone returns a deep copy of r.
func (r RangeA1) Clone() RangeA1 {
	c := r
	if r.Top != nil {
		c.Top = intPtr(*r.Top)
	}
	if r.Left != nil {
		c.Left = intPtr(*r.Left)
	}
	if r.Bottom != nil {
		c.Bottom = intPtr(*r.Bottom)
	}
	if r.Right != nil {
		c.Right = intPtr(*r.Right)
	}
	return c
}

// Cell returns the single cell range at the given 0-based row and column.
func Cell(row, col int) RangeA1 {
	return RangeA1{Top: intPtr(row), Left: intPtr(col), Bottom: intPtr(row), Right: intPtr(col)}
}

// a1Part is one half of an A1 range as scanned from text.
type a1Part struct {
	col, row       int // 0-based; -1 when absent
	absCol, absRow bool
}

// advRangeOp scans a range operator at pos and returns its length and trim mode.
func advRangeOp(s string, pos int) (int, Trim) {
	if pos >= len(s) {
		return 0, TrimNone
	}
	switch s[pos] {
	case '.':
		if pos+1 < len(s) && s[pos+1] == ':' {
			if pos+2 < len(s) && s[pos+2] == '.' {
				return 3, TrimBoth
			}
			return 2, TrimHead
		}
	case ':':
		if pos+1 < len(s) && s[pos+1] == '.' {
			return 2, TrimTail
		}
		return 1, TrimNone
	}
	return 0, TrimNone
}

// advA1Col scans $?[A-Z]{1,3} at pos. It returns 0 if no column is present
// or the column is past the sheet edge.
func advA1Col(s string, pos int) (n, col int, abs bool) {
	start := pos
	if pos < len(s) && s[pos] == '$' {
		abs = true
		pos++
	}
	v := 0
	stop := pos + 3
	for pos < len(s) && pos < stop {
		d := letterValue(s[pos])
		if d < 0 {
			break
		}
		v = v*26 + d + 1
		pos++
	}
	if v == 0 || v > MaxCols+1 {
		return 0, -1, false
	}
	return pos - start, v - 1, abs
}

// advA1Row scans $?[1-9][0-9]{0,6} at pos. It returns 0 if no row is present
// or the row is past the sheet edge.
func advA1Row(s string, pos int) (n, row int, abs bool) {
	start := pos
	if pos < len(s) && s[pos] == '$' {
		abs = true
		pos++
	}
	if pos >= len(s) || s[pos] < '1' || s[pos] > '9' {
		return 0, -1, false
	}
	v := 0
	stop := pos + 7
	for pos < len(s) && pos < stop && s[pos] >= '0' && s[pos] <= '9' {
		v = v*10 + int(s[pos]-'0')
		pos++
	}
	if v > MaxRows+1 {
		return 0, -1, false
	}
	return pos - start, v - 1, abs
}

// canEndRange reports whether a reference may end at pos: the next
// character must not continue a name or open a call or bracket.
func canEndRange(s string, pos int) bool {
	if pos >= len(s) {
		return true
	}
	c := s[pos]
	return !isNameChar(c) && c != '(' && c != '['
}

// scanA1Range scans an A1 range starting at pos. It returns the range,
// the number of bytes consumed and the token type the shape lexes as.
// A zero length means no range is present.
func scanA1Range(s string, pos int, allowTernary bool) (RangeA1, int, TokenType) {
	p := pos
	if n, col, absCol := advA1Col(s, p); n > 0 {
		p += n
		first := a1Part{col: col, row: -1, absCol: absCol}
		if n, row, absRow := advA1Row(s, p); n > 0 {
			first.row, first.absRow = row, absRow
			p += n
		}
		preOp := p
		opLen, trim := advRangeOp(s, p)
		if opLen > 0 {
			p += opLen
			second := a1Part{col: -1, row: -1}
			if n, col, absCol := advA1Col(s, p); n > 0 {
				second.col, second.absCol = col, absCol
				p += n
			}
			if n, row, absRow := advA1Row(s, p); n > 0 {
				second.row, second.absRow = row, absRow
				p += n
			}
			if canEndRange(s, p) {
				hasTop, hasRight, hasBottom := first.row >= 0, second.col >= 0, second.row >= 0
				switch {
				case hasTop && hasRight && hasBottom:
					// A1:B2
					return buildA1(first, second, trim), p - pos, TokenRange
				case !hasTop && hasRight && !hasBottom:
					// A:B
					return buildA1(first, second, trim), p - pos, TokenBeam
				case allowTernary && hasTop && (hasRight || hasBottom):
					// A1:B or A1:2
					return buildA1(first, second, trim), p - pos, TokenTernary
				case allowTernary && !hasTop && hasRight && hasBottom:
					// A:B2
					return buildA1(first, second, trim), p - pos, TokenTernary
				}
			}
		}
		// a cell followed by an operator that did not form a range
		if first.row >= 0 && (opLen > 0 || canEndRange(s, preOp)) {
			return buildA1(first, first, TrimNone), preOp - pos, TokenRange
		}
		return RangeA1{}, 0, TokenUnknown
	}

	// 1:2 or 1:A2
	n, row, absRow := advA1Row(s, p)
	if n == 0 {
		return RangeA1{}, 0, TokenUnknown
	}
	p += n
	first := a1Part{col: -1, row: row, absRow: absRow}
	opLen, trim := advRangeOp(s, p)
	if opLen == 0 {
		return RangeA1{}, 0, TokenUnknown
	}
	p += opLen
	second := a1Part{col: -1, row: -1}
	if n, col, absCol := advA1Col(s, p); n > 0 {
		second.col, second.absCol = col, absCol
		p += n
	}
	if n, row, absRow := advA1Row(s, p); n > 0 {
		second.row, second.absRow = row, absRow
		p += n
	}
	if second.row < 0 || !canEndRange(s, p) {
		return RangeA1{}, 0, TokenUnknown
	}
	if second.col < 0 {
		return buildA1(first, second, trim), p - pos, TokenBeam
	}
	if allowTernary {
		return buildA1(first, second, trim), p - pos, TokenTernary
	}
	return RangeA1{}, 0, TokenUnknown
}

// buildA1 assembles a range from its two scanned halves, ordering each axis
// so that the lower index comes first.
func buildA1(a, b a1Part, trim Trim) RangeA1 {
	r := RangeA1{Trim: trim}
	if a.row >= 0 {
		r.Top, r.AbsTop = intPtr(a.row), a.absRow
	}
	if a.col >= 0 {
		r.Left, r.AbsLeft = intPtr(a.col), a.absCol
	}
	if b.row >= 0 {
		r.Bottom, r.AbsBottom = intPtr(b.row), b.absRow
	}
	if b.col >= 0 {
		r.Right, r.AbsRight = intPtr(b.col), b.absCol
	}
	r.order()
	return r
}

// order swaps reversed corners, carrying their absolute flags along.
func (r *RangeA1) order() {
	if r.Top != nil && r.Bottom != nil && *r.Top > *r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
		r.AbsTop, r.AbsBottom = r.AbsBottom, r.AbsTop
	}
	if r.Left != nil && r.Right != nil && *r.Left > *r.Right {
		r.Left, r.Right = r.Right, r.Left
		r.AbsLeft, r.AbsRight = r.AbsRight, r.AbsLeft
	}
}

// FromA1 parses an A1 range string such as "A1", "$B$2:C10", "A:C", "1:3"
// or, with allowTernary, "A1:C". It reports false for anything else.
func FromA1(s string, allowTernary bool) (RangeA1, bool) {
	r, n, _ := scanA1Range(s, 0, allowTernary)
	if n == 0 || n != len(s) {
		return RangeA1{}, false
	}
	return r, true
}

// ToA1 renders a range in its canonical A1 form. The shape is chosen from the
// values present, not from how the range was written, and all coordinates are
// clamped into the sheet.
func ToA1(r RangeA1) string {
	noTop, noLeft := r.Top == nil, r.Left == nil
	noBottom, noRight := r.Bottom == nil, r.Right == nil
	top := clamp(0, derefOr(r.Top, 0), MaxRows)
	left := clamp(0, derefOr(r.Left, 0), MaxCols)
	var bottom, right int
	if !noLeft && !noTop && noRight && noBottom {
		bottom, right = top, left
	} else {
		bottom = clamp(0, derefOr(r.Bottom, 0), MaxRows)
		right = clamp(0, derefOr(r.Right, 0), MaxCols)
	}
	op := r.Trim.operator()

	col := func(abs bool, v int) string { return dollar(abs) + IndexToCol(v) }
	row := func(abs bool, v int) string { return dollar(abs) + IndexToRow(v) }

	// A full span only collapses to a beam when doing so loses no $ flag.
	allRows := top == 0 && bottom >= MaxRows
	if (allRows && !noLeft && !noRight && (r.AbsLeft == r.AbsRight || left == right)) || (noTop && noBottom) {
		// A:A
		return col(r.AbsLeft, left) + op + col(r.AbsRight, right)
	}
	allCols := left == 0 && right >= MaxCols
	if (allCols && !noTop && !noBottom && (r.AbsTop == r.AbsBottom || top == bottom)) || (noLeft && noRight) {
		// 1:1
		return row(r.AbsTop, top) + op + row(r.AbsBottom, bottom)
	}
	switch {
	case !noLeft && !noTop && !noBottom && noRight:
		// A1:1
		return col(r.AbsLeft, left) + row(r.AbsTop, top) + op + row(r.AbsBottom, bottom)
	case !noLeft && noTop && !noBottom && !noRight:
		// A:A1 => A1:A
		return col(r.AbsLeft, left) + row(r.AbsBottom, bottom) + op + col(r.AbsRight, right)
	case !noLeft && !noTop && noBottom && !noRight:
		// A1:A
		return col(r.AbsLeft, left) + row(r.AbsTop, top) + op + col(r.AbsRight, right)
	case noLeft && !noTop && !noBottom && !noRight:
		// 1:A1 => A1:1
		return col(r.AbsRight, right) + row(r.AbsTop, top) + op + row(r.AbsBottom, bottom)
	}
	if left != right || top != bottom || r.AbsLeft != r.AbsRight || r.AbsTop != r.AbsBottom || r.Trim != TrimNone {
		return col(r.AbsLeft, left) + row(r.AbsTop, top) + op + col(r.AbsRight, right) + row(r.AbsBottom, bottom)
	}
	return col(r.AbsLeft, left) + row(r.AbsTop, top)
}

// AddA1RangeBounds fills unbounded sides with the sheet edges.
func AddA1RangeBounds(r RangeA1) RangeA1 {
	r = r.Clone()
	if r.Top == nil {
		r.Top, r.AbsTop = intPtr(0), false
	}
	if r.Bottom == nil {
		r.Bottom, r.AbsBottom = intPtr(MaxRows), false
	}
	if r.Left == nil {
		r.Left, r.AbsLeft = intPtr(0), false
	}
	if r.Right == nil {
		r.Right, r.AbsRight = intPtr(MaxCols), false
	}
	return r
}

func dollar(abs bool) string {
	if abs {
		return "$"
	}
	return ""
}

// isNameChar reports whether c may continue a defined name.
func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '.' || c == '\\' || c == '?' || c >= 0x80
}

// isNameStart reports whether c may begin a defined name.
func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '\\' || c >= 0x80
}
