// reference.go parses reference strings into Reference values and renders
// them back to text, in both A1 and R1C1 notation.

package fx

import (
	"strings"
)

// Reference is a parsed reference. Scope is given either as a Context
// stack (the default) or, in xlsx mode, as a WorkbookName/SheetName pair.
// Exactly one of Range, RangeR1C1, Name and Struct is set.
type Reference struct {
	Context      []string   `json:"context,omitempty"`
	WorkbookName string     `json:"workbookName,omitempty"`
	SheetName    string     `json:"sheetName,omitempty"`
	Range        *RangeA1   `json:"range,omitempty"`
	RangeR1C1    *RangeR1C1 `json:"rangeR1C1,omitempty"`
	Name         string     `json:"name,omitempty"`
	Struct       *StructRef `json:"structured,omitempty"`
}

// RefOptions controls reference parsing and stringification.
type RefOptions struct {
	AllowTernary bool // accept partial ranges such as A1:A
	XLSX         bool // use WorkbookName/SheetName instead of Context
	ThisRow      bool // write [#This Row] in long form instead of @
}

// ParseA1Ref parses an A1 range or a defined name, with an optional prefix:
// "A1", "Sheet1!$B$2:C10", "'My Sheet'!A:A", "[Book]Sheet1!Rates".
func ParseA1Ref(ref string, opts RefOptions) (*Reference, bool) {
	r, ok := parseRef(ref, opts, false)
	if !ok || r.Struct != nil {
		return nil, false
	}
	return r, true
}

// ParseR1C1Ref parses an R1C1 range or a defined name, with an optional prefix.
func ParseR1C1Ref(ref string, opts RefOptions) (*Reference, bool) {
	r, ok := parseRef(ref, opts, true)
	if !ok || r.Struct != nil {
		return nil, false
	}
	return r, true
}

// parseRef tokenizes ref and accepts it only if the whole string is one
// legal reference run.
func parseRef(ref string, opts RefOptions, r1c1 bool) (*Reference, bool) {
	if ref == "" {
		return nil, false
	}
	tokens := Tokenize(ref, TokenizeOptions{
		AllowTernary: opts.AllowTernary,
		R1C1:         r1c1,
		XLSX:         opts.XLSX,
	})
	if len(tokens) == 0 || matchRun(tokens, len(tokens)-1) != len(tokens) {
		return nil, false
	}

	r := &Reference{}
	i := 0
	if t := tokens[0]; t.Type == TokenContext || t.Type == TokenContextQuote {
		ctx := t.Value
		if t.Type == TokenContextQuote {
			ctx = strings.ReplaceAll(ctx[1:len(ctx)-1], "''", "'")
		}
		splitContext(r, ctx, opts.XLSX)
		i = 2
	}

	rest := tokens[i:]
	last := rest[len(rest)-1]
	text := Text(rest)
	switch last.Type {
	case TokenRange, TokenBeam, TokenTernary:
		if r1c1 {
			rng, ok := FromR1C1(text, opts.AllowTernary)
			if !ok {
				return nil, false
			}
			r.RangeR1C1 = &rng
		} else {
			rng, ok := FromA1(text, opts.AllowTernary)
			if !ok {
				return nil, false
			}
			r.Range = &rng
		}
	case TokenNamed:
		r.Name = text
	case TokenStructured:
		sr, ok := splitStruct(text)
		if !ok {
			return nil, false
		}
		r.Struct = &sr
	default:
		return nil, false
	}
	return r, true
}

// splitStruct splits Table1[...] into its table name and bracketed part.
func splitStruct(s string) (StructRef, bool) {
	at := strings.IndexByte(s, '[')
	if at < 0 {
		return StructRef{}, false
	}
	sr, n, ok := scanSRange(s, at)
	if !ok || at+n != len(s) {
		return StructRef{}, false
	}
	sr.Table = s[:at]
	return sr, true
}

// splitContext stores a sheet prefix on r. [Book]Sheet is split into its
// workbook and sheet parts.
func splitContext(r *Reference, ctx string, xlsx bool) {
	book, sheet := "", ctx
	if strings.HasPrefix(ctx, "[") {
		if end := strings.IndexByte(ctx, ']'); end > 0 {
			book, sheet = ctx[1:end], ctx[end+1:]
		}
	}
	if xlsx {
		r.WorkbookName, r.SheetName = book, sheet
		return
	}
	for _, part := range []string{book, sheet} {
		if part != "" {
			r.Context = append(r.Context, part)
		}
	}
}

// stringifyPrefix renders the scope of r followed by "!", or nothing.
func stringifyPrefix(r *Reference, xlsx bool) string {
	var book, sheet string
	if xlsx {
		book, sheet = r.WorkbookName, r.SheetName
	} else {
		switch n := len(r.Context); {
		case n == 1:
			sheet = r.Context[0]
		case n >= 2:
			book, sheet = r.Context[n-2], r.Context[n-1]
		}
	}
	if book == "" && sheet == "" {
		return ""
	}
	pre := sheet
	if book != "" {
		pre = "[" + book + "]" + sheet
	}
	if needsQuotes(book, false) || needsQuotes(sheet, true) {
		pre = "'" + strings.ReplaceAll(pre, "'", "''") + "'"
	}
	return pre + "!"
}

// needsQuotes reports whether a prefix part cannot be written bare.
func needsQuotes(part string, isSheet bool) bool {
	if part == "" {
		return false
	}
	for i := 0; i < len(part); i++ {
		c := part[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '.' || c >= 0x80) {
			return true
		}
	}
	if !isSheet {
		return false
	}
	if isDigit(part[0]) {
		return true
	}
	if _, ok := FromA1(part, false); ok {
		return true
	}
	_, ok := FromR1C1(part, false)
	return ok
}

// StringifyA1Ref renders a Reference in A1 notation.
func StringifyA1Ref(ref *Reference, opts RefOptions) string {
	if ref == nil {
		return ""
	}
	pre := stringifyPrefix(ref, opts.XLSX)
	switch {
	case ref.Range != nil:
		return pre + ToA1(*ref.Range)
	case ref.Struct != nil:
		return pre + stringifyStruct(*ref.Struct, opts.ThisRow)
	}
	return pre + ref.Name
}

// StringifyR1C1Ref renders a Reference in R1C1 notation.
func StringifyR1C1Ref(ref *Reference, opts RefOptions) string {
	if ref == nil {
		return ""
	}
	pre := stringifyPrefix(ref, opts.XLSX)
	switch {
	case ref.RangeR1C1 != nil:
		return pre + ToR1C1(*ref.RangeR1C1)
	case ref.Struct != nil:
		return pre + stringifyStruct(*ref.Struct, opts.ThisRow)
	}
	return pre + ref.Name
}

// scope returns the effective workbook and sheet of r, falling back to the
// given defaults.
func (r *Reference) scope(defWorkbook, defSheet string) (workbook, sheet string) {
	workbook, sheet = r.WorkbookName, r.SheetName
	switch n := len(r.Context); {
	case n == 1:
		sheet = r.Context[0]
	case n >= 2:
		workbook, sheet = r.Context[n-2], r.Context[n-1]
	}
	if workbook == "" {
		workbook = defWorkbook
	}
	if sheet == "" {
		sheet = defSheet
	}
	return workbook, sheet
}
