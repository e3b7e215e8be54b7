package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/open-cli-collective/fx/pkg/fx"
)

// maxValueWidth caps token values in table output.
const maxValueWidth = 48

var tokenColors = map[fx.TokenType]*color.Color{
	fx.TokenOperator:     color.New(color.FgWhite),
	fx.TokenBoolean:      color.New(color.FgMagenta),
	fx.TokenError:        color.New(color.FgRed, color.Bold),
	fx.TokenNumber:       color.New(color.FgMagenta),
	fx.TokenFunction:     color.New(color.FgBlue, color.Bold),
	fx.TokenString:       color.New(color.FgGreen),
	fx.TokenContext:      color.New(color.FgCyan),
	fx.TokenContextQuote: color.New(color.FgCyan),
	fx.TokenRange:        color.New(color.FgYellow),
	fx.TokenBeam:         color.New(color.FgYellow),
	fx.TokenTernary:      color.New(color.FgYellow),
	fx.TokenNamed:        color.New(color.FgHiYellow),
	fx.TokenStructured:   color.New(color.FgHiCyan),
	fx.TokenFxPrefix:     color.New(color.Faint),
	fx.TokenUnknown:      color.New(color.FgRed, color.Underline),
}

// TokenColor returns the highlight colour for a token type, or nil when
// the type is printed plain.
func TokenColor(t fx.TokenType) *color.Color {
	return tokenColors[t]
}

// Highlight joins tokens back into formula text, colouring each by type.
func Highlight(tokens []fx.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if c := TokenColor(t.Type); c != nil {
			sb.WriteString(c.Sprint(t.Value))
		} else {
			sb.WriteString(t.Value)
		}
	}
	return sb.String()
}

// RenderTokens renders a token list. With meta set, depth, group and error
// columns are included.
func (r *Renderer) RenderTokens(tokens []fx.TokenEnhanced, meta bool) error {
	if r.format == FormatJSON {
		if meta {
			return r.RenderJSON(tokens)
		}
		return r.RenderJSON(fx.Plain(tokens))
	}

	headers := []string{"TYPE", "VALUE", "START", "END"}
	if meta {
		headers = append(headers, "DEPTH", "GROUP", "ERROR")
	}

	rows := make([][]string, 0, len(tokens))
	for _, t := range tokens {
		start, end := "-", "-"
		if t.Loc != nil {
			start, end = strconv.Itoa(t.Loc.Start), strconv.Itoa(t.Loc.End)
		}
		typ := t.Type.String()
		if c := TokenColor(t.Type); c != nil && r.format == FormatTable {
			typ = c.Sprint(typ)
		}
		value := t.Value
		if r.format == FormatTable {
			value = Truncate(strconv.Quote(value), maxValueWidth)
		}
		row := []string{typ, value, start, end}
		if meta {
			row = append(row, strconv.Itoa(t.Depth), t.GroupID, fmt.Sprintf("%t", t.Error))
		}
		rows = append(rows, row)
	}
	r.RenderTable(headers, rows)
	return nil
}

// Warning prints a warning message.
func (r *Renderer) Warning(msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintln(r.writer, "! "+msg)
}
