// structured.go parses and renders structured table references such as
// Table1[[#Data],[Sales]:[Costs]].

package fx

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section is a structured reference keyword.
type Section string

const (
	SectionHeaders Section = "headers"
	SectionData    Section = "data"
	SectionTotals  Section = "totals"
	SectionAll     Section = "all"
	SectionThisRow Section = "this row"
)

// StructRef is the table part of a structured reference.
type StructRef struct {
	Table    string    `json:"table"`
	Columns  []string  `json:"columns,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

var sectionBits = map[string]int{
	"headers":  1,
	"data":     2,
	"totals":   4,
	"all":      8,
	"this row": 16,
}

// sectionSets lists the keyword combinations Excel accepts, in canonical order.
var sectionSets = map[int][]Section{
	0:  nil,
	1:  {SectionHeaders},
	2:  {SectionData},
	4:  {SectionTotals},
	8:  {SectionAll},
	16: {SectionThisRow},
	3:  {SectionHeaders, SectionData},
	6:  {SectionData, SectionTotals},
}

// scanKeyword matches [#keyword] at pos.
func scanKeyword(s string, pos int) (bits, n int) {
	if !strings.HasPrefix(s[pos:], "[#") {
		return 0, 0
	}
	p := pos + 2
	for p < len(s) && (letterValue(s[p]) >= 0 || s[p] == ' ') {
		p++
	}
	if p == pos+2 || p >= len(s) || s[p] != ']' {
		return 0, 0
	}
	b, ok := sectionBits[strings.ToLower(s[pos+2:p])]
	if !ok {
		return -1, p + 1 - pos
	}
	return b, p + 1 - pos
}

// scanColumn matches a column name at pos: [Name] with ' escaping any of
// '#@[], or, when allowUnbraced, a bare run free of #@[]: characters.
func scanColumn(s string, pos int, allowUnbraced bool) (name string, n int) {
	if pos < len(s) && s[pos] == '[' {
		var b strings.Builder
		p := pos + 1
		for p < len(s) {
			c := s[p]
			if c == '\'' {
				if p+1 < len(s) && strings.IndexByte("'#@[]", s[p+1]) >= 0 {
					b.WriteByte(s[p+1])
					p += 2
					continue
				}
				break
			}
			if strings.IndexByte("#@[]", c) >= 0 {
				break
			}
			b.WriteByte(c)
			p++
		}
		if p > pos+1 && p < len(s) && s[p] == ']' {
			return b.String(), p + 1 - pos
		}
	}
	if !allowUnbraced {
		return "", 0
	}
	p := pos
	for p < len(s) && strings.IndexByte("#@[]:", s[p]) < 0 {
		p++
	}
	return s[pos:p], p - pos
}

// scanSRange scans the bracketed part of a structured reference at pos.
// It returns the columns and sections found and the bytes consumed.
func scanSRange(s string, pos int) (StructRef, int, bool) {
	var ref StructRef
	if pos >= len(s) || s[pos] != '[' {
		return ref, 0, false
	}
	p := pos
	terms := 0

	if bits, n := scanKeyword(s, p); n > 0 {
		// [#Keyword]
		if bits < 0 {
			return ref, 0, false
		}
		terms = bits
		p += n
	} else if name, n := scanColumn(s, p, false); n > 0 {
		// [Column]
		ref.Columns = append(ref.Columns, name)
		p += n
	} else {
		p++
		for p < len(s) && s[p] == ' ' {
			p++
		}
		more := true
		for more {
			bits, n := scanKeyword(s, p)
			if n == 0 {
				break
			}
			if bits < 0 {
				return ref, 0, false
			}
			terms |= bits
			p += n
			if q := skipComma(s, p); q > p {
				p = q
			} else {
				more = false
			}
		}
		if more && p < len(s) && s[p] == '@' {
			terms |= sectionBits["this row"]
			p++
			more = p < len(s) && s[p] != ']'
		}
		if _, ok := sectionSets[terms]; !ok {
			return ref, 0, false
		}
		if more {
			if name, n := scanColumn(s, p, true); n > 0 {
				ref.Columns = append(ref.Columns, name)
				p += n
				if p < len(s) && s[p] == ':' {
					name, n := scanColumn(s, p+1, true)
					if n == 0 {
						return ref, 0, false
					}
					ref.Columns = append(ref.Columns, name)
					p += 1 + n
				}
				more = false
			}
		}
		for p < len(s) && s[p] == ' ' {
			p++
		}
		if more && terms != 0 || p >= len(s) || s[p] != ']' {
			return ref, 0, false
		}
		p++
	}

	sections, ok := sectionSets[terms]
	if !ok {
		return ref, 0, false
	}
	ref.Sections = append([]Section(nil), sections...)
	return ref, p - pos, true
}

// skipComma skips a comma and the blanks around it.
func skipComma(s string, pos int) int {
	p := pos
	for p < len(s) && s[p] == ' ' {
		p++
	}
	if p >= len(s) || s[p] != ',' {
		return pos
	}
	p++
	for p < len(s) && s[p] == ' ' {
		p++
	}
	return p
}

// ParseStructRef parses a structured reference with an optional sheet
// prefix, such as "Table1[Col]" or "'My Sheet'!Sales[[#Totals],[Q1]]".
func ParseStructRef(ref string, opts RefOptions) (*Reference, bool) {
	r, ok := parseRef(ref, opts, false)
	if !ok || r.Struct == nil {
		return nil, false
	}
	return r, true
}

// StringifyStructRef renders a structured reference in canonical form. A
// lone [#This Row] is written as @ unless opts.ThisRow is set.
func StringifyStructRef(ref *Reference, opts RefOptions) string {
	if ref == nil || ref.Struct == nil {
		return ""
	}
	return stringifyPrefix(ref, opts.XLSX) + stringifyStruct(*ref.Struct, opts.ThisRow)
}

func stringifyStruct(sr StructRef, thisRow bool) string {
	var b strings.Builder
	b.WriteString(sr.Table)
	numCols, numSections := len(sr.Columns), len(sr.Sections)
	switch {
	case numSections == 1 && numCols == 0:
		b.WriteString("[" + sectionText(sr.Sections[0]) + "]")
	case numSections == 0 && numCols == 1:
		b.WriteString("[" + quoteColname(sr.Columns[0]) + "]")
	default:
		b.WriteByte('[')
		singleAt := !thisRow && numSections == 1 && strings.EqualFold(string(sr.Sections[0]), string(SectionThisRow))
		if singleAt {
			b.WriteByte('@')
		} else if numSections > 0 {
			for i, sec := range sr.Sections {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString("[" + sectionText(sec) + "]")
			}
			if numCols > 0 {
				b.WriteByte(',')
			}
		}
		if singleAt && numCols == 1 && !needsBraces(sr.Columns[0]) {
			b.WriteString(quoteColname(sr.Columns[0]))
		} else if numCols > 0 {
			cols := sr.Columns
			if len(cols) > 2 {
				cols = cols[:2]
			}
			for i, c := range cols {
				if i > 0 {
					b.WriteByte(':')
				}
				b.WriteString("[" + quoteColname(c) + "]")
			}
		}
		b.WriteByte(']')
	}
	return b.String()
}

// sectionText renders a section keyword with its leading # in title case.
func sectionText(s Section) string {
	// Casers carry state, so each call gets its own.
	return "#" + cases.Title(language.Und).String(string(s))
}

// quoteColname escapes the characters that are special inside a column name.
func quoteColname(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if strings.IndexByte("[]#'@", name[i]) >= 0 {
			b.WriteByte('\'')
		}
		b.WriteByte(name[i])
	}
	return b.String()
}

// needsBraces reports whether a column name must be wrapped in brackets
// when written after @.
func needsBraces(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80) {
			return true
		}
	}
	return false
}
