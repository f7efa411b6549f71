// Package diff computes word-level differences between two revisions of a
// post, e.g. before and after a refinement.
package diff

import (
	"strings"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of change a span represents.
type Op int

const (
	OpEqual  Op = iota // Unchanged text
	OpInsert           // Text only in the new revision
	OpDelete           // Text only in the old revision
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "equal"
	}
}

// Span is a run of text with a single Op.
type Span struct {
	Op   Op
	Text string
}

// Engine computes word diffs. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewEngine creates a diff engine.
func NewEngine() *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // texts are short; prefer the minimal diff
	return &Engine{dmp: dmp}
}

// DefaultEngine is a shared engine for general use.
var DefaultEngine = NewEngine()

// Words diffs two texts at word granularity. Each word keeps its trailing
// whitespace, so joining the Equal and Delete spans yields oldText and joining
// the Equal and Insert spans yields newText. Adjacent spans never share an Op.
func (e *Engine) Words(oldText, newText string) []Span {
	tokens := make([]string, 0)
	index := make(map[string]rune)
	encode := func(text string) []rune {
		words := tokenize(text)
		out := make([]rune, len(words))
		for i, w := range words {
			r, ok := index[w]
			if !ok {
				r = tokenRune(len(tokens))
				index[w] = r
				tokens = append(tokens, w)
			}
			out[i] = r
		}
		return out
	}
	a, b := encode(oldText), encode(newText)

	diffs := e.dmp.DiffMainRunes(a, b, false)
	diffs = e.dmp.DiffCleanupSemantic(diffs)

	spans := make([]Span, 0, len(diffs))
	for _, d := range diffs {
		var sb strings.Builder
		for _, r := range d.Text {
			sb.WriteString(tokens[tokenIndex(r)])
		}
		spans = appendSpan(spans, Span{Op: opOf(d.Type), Text: sb.String()})
	}
	return spans
}

// Words diffs two texts with the default engine.
func Words(oldText, newText string) []Span {
	return DefaultEngine.Words(oldText, newText)
}

// Changed reports whether any span is an insertion or deletion.
func Changed(spans []Span) bool {
	for _, s := range spans {
		if s.Op != OpEqual {
			return true
		}
	}
	return false
}

// Stats counts inserted and deleted words.
func Stats(spans []Span) (inserted, deleted int) {
	for _, s := range spans {
		n := len(strings.Fields(s.Text))
		switch s.Op {
		case OpInsert:
			inserted += n
		case OpDelete:
			deleted += n
		}
	}
	return inserted, deleted
}

// Revision rebuilds one side of a diff: the old text for OpDelete, the new
// text for OpInsert.
func Revision(spans []Span, side Op) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Op == OpEqual || s.Op == side {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

// tokenize splits text into words that each carry their trailing whitespace.
// Leading whitespace forms its own token.
func tokenize(text string) []string {
	var out []string
	start := 0
	inSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if !space && inSpace && i > start {
			out = append(out, text[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// tokenRune maps a token index to a rune outside the surrogate range so the
// diff text round-trips through UTF-8.
func tokenRune(i int) rune {
	r := rune(i + 1)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}

func tokenIndex(r rune) int {
	if r >= 0xE000 {
		r -= 0x800
	}
	return int(r) - 1
}

func opOf(t diffmatchpatch.Operation) Op {
	switch t {
	case diffmatchpatch.DiffInsert:
		return OpInsert
	case diffmatchpatch.DiffDelete:
		return OpDelete
	default:
		return OpEqual
	}
}

func appendSpan(spans []Span, s Span) []Span {
	if s.Text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Op == s.Op {
		spans[n-1].Text += s.Text
		return spans
	}
	return append(spans, s)
}
