// Package types holds the brand/post data model shared by the store, the prompt
// builder and the generation façade. The JSON field names are the persisted wire
// format and must stay stable.
package types

import (
	"strings"
	"time"
)

// Brand is a user-defined identity the generator writes for.
type Brand struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Dialect     Dialect       `json:"dialect,omitempty"`
	Identity    BrandIdentity `json:"identity"`
	Posts       []Post        `json:"posts"`
}

// BrandIdentity is the strategic profile of a brand. Every field is optional;
// an empty field means "not yet defined".
type BrandIdentity struct {
	AudiencePersona string       `json:"audiencePersona,omitempty"`
	ContentPillars  []string     `json:"contentPillars,omitempty"`
	BrandLexicon    BrandLexicon `json:"brandLexicon"`
	SuccessExamples []string     `json:"successExamples,omitempty"`
}

// BrandLexicon lists words to lean on and words to keep out of generated copy.
type BrandLexicon struct {
	KeywordsToUse   []string `json:"keywordsToUse,omitempty"`
	KeywordsToAvoid []string `json:"keywordsToAvoid,omitempty"`
}

// IsEmpty reports whether no identity field is populated.
func (id BrandIdentity) IsEmpty() bool {
	return strings.TrimSpace(id.AudiencePersona) == "" &&
		len(id.ContentPillars) == 0 &&
		len(id.BrandLexicon.KeywordsToUse) == 0 &&
		len(id.BrandLexicon.KeywordsToAvoid) == 0 &&
		len(id.SuccessExamples) == 0
}

// Normalized trims every entry, drops empty ones and removes duplicates while
// keeping the first occurrence.
func (id BrandIdentity) Normalized() BrandIdentity {
	return BrandIdentity{
		AudiencePersona: strings.TrimSpace(id.AudiencePersona),
		ContentPillars:  uniqueTrimmed(id.ContentPillars),
		BrandLexicon: BrandLexicon{
			KeywordsToUse:   uniqueTrimmed(id.BrandLexicon.KeywordsToUse),
			KeywordsToAvoid: uniqueTrimmed(id.BrandLexicon.KeywordsToAvoid),
		},
		SuccessExamples: uniqueTrimmed(id.SuccessExamples),
	}
}

// Post is one piece of generated content.
type Post struct {
	ID                string             `json:"id"`
	Text              string             `json:"text"`
	TovPhrase         string             `json:"tovPhrase"`
	DateGenerated     time.Time          `json:"dateGenerated"`
	Platform          Platform           `json:"platform,omitempty"`
	ContentType       ContentType        `json:"contentType,omitempty"`
	Topic             string             `json:"topic"`
	Hashtags          []string           `json:"hashtags,omitempty"`
	VisualInspiration *VisualInspiration `json:"visualInspiration,omitempty"`
	CampaignTheme     string             `json:"campaignTheme,omitempty"`
	DayInCampaign     int                `json:"dayInCampaign,omitempty"`
}

// IsCampaign reports whether the post was produced as part of a campaign.
func (p Post) IsCampaign() bool { return p.DayInCampaign > 0 }

// VisualInspiration is creative guidance for the designer accompanying a post.
type VisualInspiration struct {
	Description  string   `json:"description"`
	ColorPalette []string `json:"colorPalette"`
	ImagePrompt  string   `json:"imagePrompt"`
}

// PostUpdate is a partial update; nil fields are left untouched.
type PostUpdate struct {
	Text      *string
	TovPhrase *string
	Hashtags  []string
	// SetHashtags distinguishes "replace with empty list" from "leave alone".
	SetHashtags bool
}

// Apply returns a copy of p with the populated fields of u merged in.
func (u PostUpdate) Apply(p Post) Post {
	if u.Text != nil {
		p.Text = *u.Text
	}
	if u.TovPhrase != nil {
		p.TovPhrase = *u.TovPhrase
	}
	if u.SetHashtags {
		p.Hashtags = append([]string(nil), u.Hashtags...)
	}
	return p
}

// IsZero reports whether the update changes nothing.
func (u PostUpdate) IsZero() bool {
	return u.Text == nil && u.TovPhrase == nil && !u.SetHashtags
}

func uniqueTrimmed(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// lookup resolves s against an enum name table (case-insensitive) and then an
// alias map. Index 0 of names is the unset value and never matches.
func lookup(names []string, s string, aliases map[string]int) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for i, name := range names {
		if i == 0 || name == "" {
			continue
		}
		if strings.EqualFold(name, s) {
			return i, true
		}
	}
	if v, ok := aliases[strings.ToLower(s)]; ok {
		return v, true
	}
	return 0, false
}
