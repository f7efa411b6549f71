package render

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialpost/internal/diff"
	"socialpost/internal/types"
)

func newPlain(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(WithPlain(), WithWidth(100), WithLocation(time.UTC))
	require.NoError(t, err)
	return r
}

func at(day, hour int) time.Time {
	return time.Date(2024, 5, day, hour, 0, 0, 0, time.UTC)
}

func TestGroupByDay(t *testing.T) {
	posts := []types.Post{
		{ID: "old", DateGenerated: at(1, 9)},
		{ID: "new-a", DateGenerated: at(3, 8)},
		{ID: "undated"},
		{ID: "mid", DateGenerated: at(2, 23)},
		{ID: "new-b", DateGenerated: at(3, 18)},
		{ID: "new-c", DateGenerated: at(3, 18)},
	}

	groups := GroupByDay(posts, time.UTC)

	ids := make([][]string, len(groups))
	for i, g := range groups {
		for _, p := range g.Posts {
			ids[i] = append(ids[i], p.ID)
		}
	}
	want := [][]string{
		{"new-b", "new-c", "new-a"},
		{"mid"},
		{"old"},
		{"undated"},
	}
	if d := cmp.Diff(want, ids); d != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", d)
	}
	assert.Equal(t, at(3, 0), groups[0].Day)
	assert.True(t, groups[3].Day.IsZero())
	assert.Equal(t, "old", posts[0].ID, "input is not reordered")
}

func TestGroupByDay_UsesLocation(t *testing.T) {
	cairo := time.FixedZone("EET", 2*60*60)
	posts := []types.Post{
		{ID: "late", DateGenerated: time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)},
		{ID: "early", DateGenerated: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
	}
	assert.Len(t, GroupByDay(posts, time.UTC), 1)
	assert.Len(t, GroupByDay(posts, cairo), 2)
}

func TestPostCard(t *testing.T) {
	r := newPlain(t)
	out := r.Post(types.Post{
		ID:            "p1",
		Text:          "Fresh beans today",
		TovPhrase:     "warm and bold",
		Platform:      types.PlatformInstagram,
		ContentType:   types.ContentSocialPost,
		Topic:         "new roast",
		Hashtags:      []string{"#coffee", "#roast"},
		CampaignTheme: "Teaser",
		DayInCampaign: 2,
		VisualInspiration: &types.VisualInspiration{
			Description:  "Steam over a cup",
			ColorPalette: []string{"#3E2723", "#FFF8E1"},
			ImagePrompt:  "macro shot of coffee",
		},
	})

	for _, want := range []string{
		"Day 2 · Teaser", "Instagram", "Social Post", "id p1", "Topic: new roast",
		"Fresh beans today", "“warm and bold”", "#coffee #roast",
		"Steam over a cup", "#3E2723 #FFF8E1", "macro shot of coffee",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[", "plain output has no escape codes")
}

func TestPostCard_OmitsEmptySections(t *testing.T) {
	out := newPlain(t).Post(types.Post{ID: "p1", Text: "hello"})
	assert.NotContains(t, out, "Day ")
	assert.NotContains(t, out, "Topic:")
	assert.NotContains(t, out, "Visual inspiration")
}

func TestBrandTable(t *testing.T) {
	r := newPlain(t)
	out := r.BrandTable([]types.Brand{
		{ID: "b1", Name: "Bean There", Dialect: types.DialectGulf, Posts: []types.Post{{}, {}}},
		{ID: "b2", Name: "Tea", Posts: nil},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Brands", lines[0])
	assert.Contains(t, lines[1], "ID | Name")
	assert.Contains(t, lines[3], "Gulf")
	assert.Contains(t, lines[4], "Egyptian Arabic", "unset dialect shows the default")
	assert.True(t, strings.HasSuffix(lines[3], "| 2"))

	assert.Contains(t, r.BrandTable(nil), "No brands yet")
}

func TestBrand_IdentityMarkdown(t *testing.T) {
	assert.Equal(t, "_No identity profile defined._", IdentityMarkdown(types.BrandIdentity{}))

	md := IdentityMarkdown(types.BrandIdentity{
		AudiencePersona: "Students",
		BrandLexicon:    types.BrandLexicon{KeywordsToAvoid: []string{"cheap"}},
	})
	assert.Contains(t, md, "**Audience:** Students")
	assert.Contains(t, md, "**Keywords to avoid**\n\n- cheap\n")
	assert.NotContains(t, md, "Content pillars")

	out := newPlain(t).Brand(types.Brand{
		ID:          "b1",
		Name:        "Bean",
		Description: "Coffee shop",
		Identity:    types.BrandIdentity{ContentPillars: []string{"Education"}},
	})
	assert.Contains(t, out, "Bean")
	assert.Contains(t, out, "Coffee shop")
	assert.Contains(t, out, "Education")
}

func TestHistory(t *testing.T) {
	r := newPlain(t)
	out := r.History(types.Brand{
		Name: "Bean",
		Posts: []types.Post{
			{ID: "a", Text: "first", DateGenerated: at(1, 9)},
			{ID: "b", Text: "second", DateGenerated: at(4, 9)},
		},
	})
	newer := strings.Index(out, "Saturday, 4 May 2024 (1)")
	older := strings.Index(out, "Wednesday, 1 May 2024 (1)")
	require.NotEqual(t, -1, newer)
	require.NotEqual(t, -1, older)
	assert.Less(t, newer, older)

	assert.Contains(t, r.History(types.Brand{Name: "Empty"}), "Empty has no posts yet.")
}

func TestList(t *testing.T) {
	out := newPlain(t).List("Topic ideas", []string{"Latte art", "Origin stories"})
	assert.Equal(t, "Topic ideas\n 1. Latte art\n 2. Origin stories\n", out)
}

func TestRevision(t *testing.T) {
	out := newPlain(t).Revision([]diff.Span{
		{Op: diff.OpEqual, Text: "Our beans are "},
		{Op: diff.OpDelete, Text: "roasted daily "},
		{Op: diff.OpInsert, Text: "freshly roasted "},
		{Op: diff.OpEqual, Text: "for you."},
	})
	assert.Equal(t, "Our beans are [-roasted daily-] {+freshly roasted+} for you.\n+2 -2 words\n", out)
}
