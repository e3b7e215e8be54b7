// annotate.go computes nesting depth, bracket matching and reference
// grouping for a token list.

package fx

import (
	"strconv"
	"strings"
)

// MetaOptions controls AddTokenMeta.
type MetaOptions struct {
	SheetName    string // sheet assumed for references without a prefix
	WorkbookName string // workbook assumed for references without a prefix
	R1C1         bool
	AllowTernary bool
	XLSX         bool
}

// AddTokenMeta returns annotated copies of tokens. Matching parens and
// braces share a GroupID, as do references that denote the same range,
// name or table slice. Unmatched closers and unknown tokens are flagged.
func AddTokenMeta(tokens []Token, opts MetaOptions) []TokenEnhanced {
	out := make([]TokenEnhanced, len(tokens))
	var parens []int
	brace := -1
	nextID := 0
	uid := func() string {
		nextID++
		return "fxg" + strconv.Itoa(nextID)
	}
	type knownRef struct {
		ref *Reference
		id  string
	}
	var known []knownRef

	depth := func() int {
		d := len(parens)
		if brace >= 0 {
			d++
		}
		return d
	}

	for i, t := range tokens {
		et := TokenEnhanced{Token: t.clone(), Index: i, Depth: depth()}
		switch {
		case t.Type == TokenOperator && t.Value == "(":
			parens = append(parens, i)
			et.Depth = depth()
		case t.Type == TokenOperator && t.Value == ")":
			if len(parens) == 0 {
				et.Error = true
				break
			}
			open := parens[len(parens)-1]
			parens = parens[:len(parens)-1]
			id := uid()
			et.GroupID, et.Depth = id, out[open].Depth
			out[open].GroupID = id
		case t.Type == TokenOperator && t.Value == "{":
			if brace >= 0 {
				et.Error = true
				break
			}
			brace = i
			et.Depth = depth()
		case t.Type == TokenOperator && t.Value == "}":
			if brace < 0 {
				et.Error = true
				break
			}
			id := uid()
			et.GroupID, et.Depth = id, out[brace].Depth
			out[brace].GroupID = id
			brace = -1
		case IsReference(t):
			ref, ok := parseRef(t.Value, RefOptions{AllowTernary: opts.AllowTernary, XLSX: true}, opts.R1C1)
			if !ok {
				break
			}
			ref.WorkbookName, ref.SheetName = ref.scope(opts.WorkbookName, opts.SheetName)
			for _, k := range known {
				if equivalentRefs(k.ref, ref) {
					et.GroupID = k.id
					break
				}
			}
			if et.GroupID == "" {
				et.GroupID = uid()
				known = append(known, knownRef{ref: ref, id: et.GroupID})
			}
		case t.Type == TokenUnknown:
			et.Error = true
		}
		out[i] = et
	}
	return out
}

// equivalentRefs reports whether two references denote the same thing,
// ignoring case and $ anchoring.
func equivalentRefs(a, b *Reference) bool {
	if !strings.EqualFold(a.WorkbookName, b.WorkbookName) || !strings.EqualFold(a.SheetName, b.SheetName) {
		return false
	}
	switch {
	case a.Name != "" || b.Name != "":
		return strings.EqualFold(a.Name, b.Name)
	case a.Struct != nil || b.Struct != nil:
		return a.Struct != nil && b.Struct != nil && equivalentStructs(*a.Struct, *b.Struct)
	case a.Range != nil && b.Range != nil:
		ra, rb := *a.Range, *b.Range
		return sameInt(ra.Top, rb.Top) && sameInt(ra.Left, rb.Left) &&
			sameInt(ra.Bottom, rb.Bottom) && sameInt(ra.Right, rb.Right) && ra.Trim == rb.Trim
	case a.RangeR1C1 != nil && b.RangeR1C1 != nil:
		ra, rb := *a.RangeR1C1, *b.RangeR1C1
		return sameInt(ra.R0, rb.R0) && sameInt(ra.C0, rb.C0) && sameInt(ra.R1, rb.R1) && sameInt(ra.C1, rb.C1) &&
			ra.AbsR0 == rb.AbsR0 && ra.AbsC0 == rb.AbsC0 && ra.AbsR1 == rb.AbsR1 && ra.AbsC1 == rb.AbsC1 &&
			ra.Trim == rb.Trim
	}
	return false
}

func equivalentStructs(a, b StructRef) bool {
	if !strings.EqualFold(a.Table, b.Table) || len(a.Columns) != len(b.Columns) || len(a.Sections) != len(b.Sections) {
		return false
	}
	for i := range a.Columns {
		if !strings.EqualFold(a.Columns[i], b.Columns[i]) {
			return false
		}
	}
	for i := range a.Sections {
		if a.Sections[i] != b.Sections[i] {
			return false
		}
	}
	return true
}
