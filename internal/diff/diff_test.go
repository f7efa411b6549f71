package diff

import (
	"testing"
)

func TestWords_Substitution(t *testing.T) {
	spans := NewEngine().Words("Our beans are roasted daily.", "Our beans are freshly roasted daily.")

	if !Changed(spans) {
		t.Fatal("expected a change")
	}
	inserted, deleted := Stats(spans)
	if inserted != 1 || deleted != 0 {
		t.Errorf("Stats = (%d, %d), want (1, 0)", inserted, deleted)
	}

	found := false
	for _, s := range spans {
		if s.Op == OpInsert && s.Text == "freshly " {
			found = true
		}
	}
	if !found {
		t.Errorf("expected inserted span %q, got %+v", "freshly ", spans)
	}
}

func TestWords_RebuildsBothSides(t *testing.T) {
	cases := map[string][2]string{
		"rewrite":    {"Come try our new latte today", "Taste the new oat latte, today only"},
		"shorten":    {"We roast every single morning in small batches.", "We roast every morning."},
		"arabic":     {"قهوة طازجة كل يوم", "قهوة طازجة ومحمصة كل صباح"},
		"whitespace": {"  leading and\ntrailing  ", "leading and\n\ntrailing"},
		"from empty": {"", "brand new text"},
		"to empty":   {"old text", ""},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			spans := NewEngine().Words(tc[0], tc[1])
			if got := Revision(spans, OpDelete); got != tc[0] {
				t.Errorf("old side = %q, want %q", got, tc[0])
			}
			if got := Revision(spans, OpInsert); got != tc[1] {
				t.Errorf("new side = %q, want %q", got, tc[1])
			}
			for i := 1; i < len(spans); i++ {
				if spans[i].Op == spans[i-1].Op {
					t.Errorf("spans %d and %d share op %s", i-1, i, spans[i].Op)
				}
			}
		})
	}
}

func TestWords_Identical(t *testing.T) {
	spans := Words("same text", "same text")
	if Changed(spans) {
		t.Errorf("identical texts reported as changed: %+v", spans)
	}
	if len(spans) != 1 || spans[0].Op != OpEqual {
		t.Errorf("expected one equal span, got %+v", spans)
	}
}

func TestWords_EngineReuse(t *testing.T) {
	e := NewEngine()
	first := e.Words("a b c", "a x c")
	first[0].Text = "mutated"

	second := e.Words("d e", "d f")
	if got := Revision(second, OpDelete); got != "d e" {
		t.Errorf("old side = %q, want %q", got, "d e")
	}
	third := e.Words("a b c", "a x c")
	if got := Revision(third, OpInsert); got != "a x c" {
		t.Errorf("new side = %q, want %q", got, "a x c")
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize(" hello  world\nbye")
	want := []string{" ", "hello  ", "world\n", "bye"}
	if len(got) != len(want) {
		t.Fatalf("tokenize = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenRuneSkipsSurrogates(t *testing.T) {
	for _, i := range []int{0, 1, 0xD7FE, 0xD7FF, 0xD800, 0x20000} {
		r := tokenRune(i)
		if r >= 0xD800 && r <= 0xDFFF {
			t.Errorf("tokenRune(%d) = %U is a surrogate", i, r)
		}
		if got := tokenIndex(r); got != i {
			t.Errorf("tokenIndex(tokenRune(%d)) = %d", i, got)
		}
	}
}
