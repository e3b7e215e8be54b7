// Package mdscan finds spreadsheet formulas embedded in markdown documents.
//
// Three places are searched: fenced code blocks tagged excel, formula or fx
// (one formula per non-blank line), inline code spans whose text starts
// with "=", and GFM table cells whose text starts with "=".
package mdscan

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Kind says where in the document a formula was found.
type Kind string

const (
	KindBlock Kind = "block"
	KindCode  Kind = "code"
	KindCell  Kind = "cell"
)

// Formula is one formula found in a document. Start and End are byte
// offsets into the scanned source.
type Formula struct {
	Text  string `json:"text"`
	Kind  Kind   `json:"kind"`
	Line  int    `json:"line"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// fenceLanguages are the fenced code block info strings that hold formulas.
var fenceLanguages = map[string]bool{
	"excel":   true,
	"formula": true,
	"fx":      true,
}

// mdParser is a pre-configured goldmark instance with GFM table extension.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// scanner holds state during the AST walk.
type scanner struct {
	source   []byte
	formulas []Formula
}

// Scan returns every formula in source, in document order.
func Scan(source []byte) []Formula {
	if len(source) == 0 {
		return nil
	}
	doc := mdParser.Parser().Parse(text.NewReader(source))
	s := &scanner{source: source}
	s.walk(doc)
	sort.SliceStable(s.formulas, func(i, j int) bool {
		return s.formulas[i].Start < s.formulas[j].Start
	})
	return s.formulas
}

func (s *scanner) walk(n ast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.FencedCodeBlock:
			s.scanFence(node)
			continue
		case *ast.CodeSpan:
			s.scanCodeSpan(node)
			continue
		case *extast.TableCell:
			if s.scanCell(node) {
				continue
			}
		}
		s.walk(child)
	}
}

func (s *scanner) scanFence(n *ast.FencedCodeBlock) {
	lang := strings.ToLower(string(n.Language(s.source)))
	if !fenceLanguages[lang] {
		return
	}
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		s.add(KindBlock, seg.Start, seg.Stop)
	}
}

func (s *scanner) scanCodeSpan(n *ast.CodeSpan) {
	start, stop, ok := textBounds(n)
	if !ok {
		return
	}
	value := bytes.TrimSpace(s.source[start:stop])
	if !bytes.HasPrefix(value, []byte("=")) {
		return
	}
	s.add(KindCode, start, stop)
}

// scanCell records a cell whose text starts with "=" and reports whether
// it did. Other cells are searched for code spans.
func (s *scanner) scanCell(n *extast.TableCell) bool {
	first, ok := n.FirstChild().(*ast.Text)
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(first.Segment.Value(s.source)), []byte("=")) {
		return false
	}
	start, stop, ok := textBounds(n)
	if !ok {
		return false
	}
	s.add(KindCell, start, stop)
	return true
}

// add records source[start:stop] with surrounding blanks trimmed.
func (s *scanner) add(kind Kind, start, stop int) {
	raw := s.source[start:stop]
	lead := len(raw) - len(bytes.TrimLeft(raw, " \t"))
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return
	}
	start += lead
	stop = start + len(trimmed)
	s.formulas = append(s.formulas, Formula{
		Text:  string(trimmed),
		Kind:  kind,
		Line:  bytes.Count(s.source[:start], []byte("\n")) + 1,
		Start: start,
		End:   stop,
	})
}

// textBounds returns the smallest source range covering every text
// segment below n.
func textBounds(n ast.Node) (start, stop int, ok bool) {
	start, stop = -1, -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, isText := c.(*ast.Text); isText {
			if start < 0 || t.Segment.Start < start {
				start = t.Segment.Start
			}
			if t.Segment.Stop > stop {
				stop = t.Segment.Stop
			}
		}
		return ast.WalkContinue, nil
	})
	return start, stop, start >= 0 && stop > start
}

// Rewrite applies fn to every formula in source and splices the results
// back in. It returns the new document and the number of formulas changed.
func Rewrite(source []byte, fn func(Formula) string) ([]byte, int) {
	formulas := Scan(source)
	var out bytes.Buffer
	out.Grow(len(source))
	last, changed := 0, 0
	for _, f := range formulas {
		if f.Start < last {
			continue
		}
		replacement := fn(f)
		if replacement == f.Text {
			continue
		}
		out.Write(source[last:f.Start])
		out.WriteString(replacement)
		last = f.End
		changed++
	}
	out.Write(source[last:])
	return out.Bytes(), changed
}

// FromHTML converts an HTML document to markdown so its formulas can be
// scanned. <pre><code class="language-excel"> blocks become tagged fences
// and <code> elements become code spans.
func FromHTML(html string) (string, error) {
	if html == "" {
		return "", nil
	}
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}

// ReadDocument reads the document at path, or stdin when path is "-".
// Files ending in .html or .htm are converted to markdown first; converted
// reports whether that happened.
func ReadDocument(path string, stdin io.Reader) (source []byte, converted bool, err error) {
	var data []byte
	if path == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read file: %w", err)
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		markdown, err := FromHTML(string(data))
		if err != nil {
			return nil, false, fmt.Errorf("failed to convert HTML: %w", err)
		}
		return []byte(markdown), true, nil
	}
	return data, false, nil
}
