// merge.go recombines token runs that together spell one reference.

package fx

import "strings"

// runNode is a node in the trie of legal reference runs. Runs are stored
// right to left so a match can be walked backward from the last token.
type runNode struct {
	next map[string]*runNode
	leaf bool
}

func (n *runNode) add(run []string) {
	node := n
	for i := len(run) - 1; i >= 0; i-- {
		child, ok := node.next[run[i]]
		if !ok {
			child = &runNode{next: map[string]*runNode{}}
			node.next[run[i]] = child
		}
		node = child
	}
	node.leaf = true
}

const (
	keyContext = "context"
	keyRange   = "range"
	keyBeam    = "range_beam"
	keyTernary = "range_ternary"
	keyNamed   = "range_named"
	keyStruct  = "structured"
)

// refRuns is the closed set of token sequences that form one reference.
// Operators are keyed by value, everything else by type; both context
// token types share one key.
var refRuns = func() *runNode {
	root := &runNode{next: map[string]*runNode{}}
	for _, run := range [][]string{
		{keyRange, ":", keyRange},
		{keyRange},
		{keyBeam},
		{keyTernary},
		{keyContext, "!", keyRange, ":", keyRange},
		{keyContext, "!", keyRange},
		{keyContext, "!", keyBeam},
		{keyContext, "!", keyTernary},
		{keyNamed},
		{keyContext, "!", keyNamed},
		{keyStruct},
		{keyNamed, keyStruct},
		{keyContext, "!", keyStruct},
		{keyContext, "!", keyNamed, keyStruct},
	} {
		root.add(run)
	}
	return root
}()

func runKey(t Token) string {
	switch t.Type {
	case TokenOperator:
		return t.Value
	case TokenContext, TokenContextQuote:
		return keyContext
	}
	return t.Type.String()
}

// matchRun returns the length of the longest legal reference run ending at
// tokens[end], or 0 if there is none.
func matchRun(tokens []Token, end int) int {
	node := refRuns
	best := 0
	for i := end; i >= 0; i-- {
		key := runKey(tokens[i])
		child, ok := node.next[key]
		if !ok {
			break
		}
		// A1:B2:C3 is two ranges and an operator, not one reference.
		if key == ":" && (strings.Contains(tokens[i+1].Value, ":") || (i > 0 && strings.Contains(tokens[i-1].Value, ":"))) {
			break
		}
		node = child
		if node.leaf {
			best = end - i + 1
		}
	}
	return best
}

// MergeRefTokens returns a copy of tokens in which every run that spells a
// single reference (Sheet1 ! A1, A1 : B2, Table1 [Col]) is merged into one
// token. The merged token keeps the type and flags of the run's last token
// and spans the locations of the whole run.
func MergeRefTokens(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i].clone()
		if IsReference(tok) {
			if size := matchRun(tokens, i); size > 1 {
				start := i - size + 1
				var b strings.Builder
				for j := start; j <= i; j++ {
					b.WriteString(tokens[j].Value)
				}
				tok.Value = b.String()
				if tok.Loc != nil && tokens[start].Loc != nil {
					tok.Loc.Start = tokens[start].Loc.Start
				}
				i = start
			}
		}
		out = append(out, tok)
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}
