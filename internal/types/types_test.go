package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumTablesComplete(t *testing.T) {
	for _, p := range Platforms() {
		assert.NotContains(t, p.String(), "Platform(", "platform %d has no name", int(p))
	}
	for _, tone := range Tones() {
		assert.NotContains(t, tone.String(), "ToneOfVoice(")
	}
	for _, c := range ContentTypes() {
		assert.NotContains(t, c.String(), "ContentType(")
	}
	for _, d := range Dialects() {
		assert.NotContains(t, d.String(), "Dialect(")
	}
	for _, g := range CampaignGoals() {
		assert.NotEmpty(t, g.Description(), "goal %s has no description", g)
	}
	assert.Len(t, Platforms(), 5)
	assert.Len(t, Dialects(), 3)
}

func TestParseAliases(t *testing.T) {
	tests := []struct {
		in   string
		want Platform
	}{
		{"X (formerly Twitter)", PlatformX},
		{"x", PlatformX},
		{"LINKEDIN", PlatformLinkedIn},
		{" tiktok ", PlatformTikTok},
	}
	for _, tt := range tests {
		got, err := ParsePlatform(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParsePlatform("myspace")
	assert.Error(t, err)

	d, err := ParseDialect("gulf")
	require.NoError(t, err)
	assert.Equal(t, DialectGulf, d)

	a, err := ParseRefinementAction("changeTone")
	require.NoError(t, err)
	assert.Equal(t, RefineChangeTone, a)
}

func TestPostJSONWireFormat(t *testing.T) {
	raw := `{"id":"1","text":"hi","tovPhrase":"t","dateGenerated":"2024-05-12T10:00:00.000Z",
		"platform":"X (formerly Twitter)","contentType":"Video Script","topic":"coffee",
		"visualInspiration":{"description":"d","colorPalette":["#fff"],"imagePrompt":"p"},
		"campaignTheme":"teaser","dayInCampaign":2}`

	var p Post
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, PlatformX, p.Platform)
	assert.Equal(t, ContentVideoScript, p.ContentType)
	assert.True(t, p.IsCampaign())
	require.NotNil(t, p.VisualInspiration)
	assert.Equal(t, []string{"#fff"}, p.VisualInspiration.ColorPalette)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"platform":"X (formerly Twitter)"`)
	assert.Contains(t, string(out), `"contentType":"Video Script"`)
}

func TestEmptyEnumStringDecodesToUnset(t *testing.T) {
	var b Brand
	require.NoError(t, json.Unmarshal([]byte(`{"id":"b","dialect":""}`), &b))
	assert.False(t, b.Dialect.Valid())
}

func TestUnknownEnumNameDecodesToUnset(t *testing.T) {
	var b Brand
	raw := `{"id":"b","dialect":"Levantine Arabic","posts":[{"id":"p","platform":"Mastodon","contentType":"Carousel"}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	assert.False(t, b.Dialect.Valid())
	require.Len(t, b.Posts, 1)
	assert.False(t, b.Posts[0].Platform.Valid())
	assert.False(t, b.Posts[0].ContentType.Valid())

	out, err := json.Marshal(b.Posts[0])
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"platform"`)
}

func TestIdentityNormalized(t *testing.T) {
	id := BrandIdentity{
		AudiencePersona: "  students ",
		ContentPillars:  []string{"coffee", " coffee", "", "community"},
		BrandLexicon:    BrandLexicon{KeywordsToAvoid: []string{"  "}},
	}
	n := id.Normalized()
	assert.Equal(t, "students", n.AudiencePersona)
	assert.Equal(t, []string{"coffee", "community"}, n.ContentPillars)
	assert.Nil(t, n.BrandLexicon.KeywordsToAvoid)
	assert.False(t, n.IsEmpty())
	assert.True(t, BrandIdentity{}.IsEmpty())
}

func TestPostUpdateApply(t *testing.T) {
	text := "new"
	p := Post{ID: "p", Text: "old", TovPhrase: "tov", Hashtags: []string{"#a"}}

	got := PostUpdate{Text: &text}.Apply(p)
	assert.Equal(t, "new", got.Text)
	assert.Equal(t, "tov", got.TovPhrase)
	assert.Equal(t, []string{"#a"}, got.Hashtags)
	assert.Equal(t, "old", p.Text)

	got = PostUpdate{SetHashtags: true}.Apply(p)
	assert.Empty(t, got.Hashtags)
	assert.True(t, PostUpdate{}.IsZero())
}
