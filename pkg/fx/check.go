package fx

import (
	"fmt"
	"log"
)

// CheckOptions controls Check.
type CheckOptions struct {
	R1C1         bool
	AllowTernary bool
	XLSX         bool
	SheetName    string
	WorkbookName string
}

// Diagnostic is a problem found in a formula.
type Diagnostic struct {
	Token   TokenEnhanced `json:"token"`
	Message string        `json:"message"`
}

// CheckResult holds the annotated tokens of a formula and any problems found.
type CheckResult struct {
	Formula     string          `json:"formula"`
	Tokens      []TokenEnhanced `json:"tokens"`
	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`
}

// AddWarning records a diagnostic against tok and logs it.
func (r *CheckResult) AddWarning(tok TokenEnhanced, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Token: tok, Message: msg})
	log.Printf("WARN: "+format, args...)
}

// OK reports whether no diagnostics were found.
func (r *CheckResult) OK() bool {
	return len(r.Diagnostics) == 0
}

// Check tokenizes and annotates formula and reports unknown input,
// unbalanced parens and braces, unterminated strings and references
// that do not parse.
func Check(formula string, opts CheckOptions) *CheckResult {
	tokens := Tokenize(formula, TokenizeOptions{
		WithLocation:    true,
		MergeRefs:       true,
		NegativeNumbers: true,
		AllowTernary:    opts.AllowTernary,
		R1C1:            opts.R1C1,
		XLSX:            opts.XLSX,
	})
	result := &CheckResult{
		Formula: formula,
		Tokens: AddTokenMeta(tokens, MetaOptions{
			SheetName:    opts.SheetName,
			WorkbookName: opts.WorkbookName,
			R1C1:         opts.R1C1,
			AllowTernary: opts.AllowTernary,
			XLSX:         opts.XLSX,
		}),
	}

	refOpts := RefOptions{AllowTernary: opts.AllowTernary, XLSX: opts.XLSX}
	for _, t := range result.Tokens {
		switch {
		case t.Type == TokenUnknown:
			result.AddWarning(t, "unexpected input %q at position %d", t.Value, t.Loc.Start)
		case t.Type == TokenOperator && t.Error:
			result.AddWarning(t, "unmatched %q at position %d", t.Value, t.Loc.Start)
		case t.Type == TokenOperator && (t.Value == "(" || t.Value == "{") && t.GroupID == "":
			result.AddWarning(t, "unclosed %q at position %d", t.Value, t.Loc.Start)
		case t.Type == TokenString && t.Unterminated:
			result.AddWarning(t, "unterminated string at position %d", t.Loc.Start)
		case IsReference(t.Token) && !parses(t.Value, refOpts, opts.R1C1):
			result.AddWarning(t, "invalid reference %q at position %d", t.Value, t.Loc.Start)
		}
	}
	return result
}

func parses(ref string, opts RefOptions, r1c1 bool) bool {
	_, ok := parseRef(ref, opts, r1c1)
	return ok
}
