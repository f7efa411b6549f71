package types

import (
	"fmt"
)

// =============================================================================
// ENUMERATIONS
// =============================================================================
//
// Every enum starts at 1 so the zero value means "unset" (used by the store's
// load-time defaulting). The *End sentinels size the lookup tables below; the
// blank array declarations fail to compile when a table is shorter than its enum.

// Table sizes for arrays indexed by an enum outside this package. Index 0 is
// the unset value.
const (
	PlatformTableSize   = int(platformEnd)
	DialectTableSize    = int(dialectEnd)
	RefinementTableSize = int(refineEnd)
)

// Platform is the social network a post targets.
type Platform int

const (
	PlatformFacebook Platform = iota + 1
	PlatformInstagram
	PlatformTikTok
	PlatformX
	PlatformLinkedIn
	platformEnd
)

var platformNames = [...]string{
	PlatformFacebook:  "Facebook",
	PlatformInstagram: "Instagram",
	PlatformTikTok:    "TikTok",
	PlatformX:         "X (formerly Twitter)",
	PlatformLinkedIn:  "LinkedIn",
}

var _ [len(platformNames) - int(platformEnd)]struct{}

// Platforms lists every platform in declaration order.
func Platforms() []Platform {
	out := make([]Platform, 0, int(platformEnd)-1)
	for p := PlatformFacebook; p < platformEnd; p++ {
		out = append(out, p)
	}
	return out
}

func (p Platform) Valid() bool { return p > 0 && p < platformEnd }

func (p Platform) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Platform(%d)", int(p))
	}
	return platformNames[p]
}

// ParsePlatform accepts the wire value (e.g. "X (formerly Twitter)") or a
// case-insensitive short alias such as "x" or "linkedin".
func ParsePlatform(s string) (Platform, error) {
	if v, ok := lookup(platformNames[:], s, map[string]int{"x": int(PlatformX), "twitter": int(PlatformX)}); ok {
		return Platform(v), nil
	}
	return 0, fmt.Errorf("unknown platform %q", s)
}

func (p Platform) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid platform %d", int(p))
	}
	return []byte(platformNames[p]), nil
}

// UnmarshalText never fails: an empty or unrecognised name decodes as the
// unset value, so records written by other versions still load.
func (p *Platform) UnmarshalText(b []byte) error {
	*p, _ = ParsePlatform(string(b))
	return nil
}

// ToneOfVoice is the voice requested for generated copy.
type ToneOfVoice int

const (
	ToneProfessional ToneOfVoice = iota + 1
	ToneFriendly
	ToneFunny
	ToneBold
	ToneInspirational
	toneEnd
)

var toneNames = [...]string{
	ToneProfessional:  "Professional",
	ToneFriendly:      "Friendly",
	ToneFunny:         "Funny",
	ToneBold:          "Bold",
	ToneInspirational: "Inspirational",
}

var _ [len(toneNames) - int(toneEnd)]struct{}

func Tones() []ToneOfVoice {
	out := make([]ToneOfVoice, 0, int(toneEnd)-1)
	for t := ToneProfessional; t < toneEnd; t++ {
		out = append(out, t)
	}
	return out
}

func (t ToneOfVoice) Valid() bool { return t > 0 && t < toneEnd }

func (t ToneOfVoice) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ToneOfVoice(%d)", int(t))
	}
	return toneNames[t]
}

func ParseTone(s string) (ToneOfVoice, error) {
	if v, ok := lookup(toneNames[:], s, nil); ok {
		return ToneOfVoice(v), nil
	}
	return 0, fmt.Errorf("unknown tone %q", s)
}

func (t ToneOfVoice) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tone %d", int(t))
	}
	return []byte(toneNames[t]), nil
}

func (t *ToneOfVoice) UnmarshalText(b []byte) error {
	*t, _ = ParseTone(string(b))
	return nil
}

// ContentType is the format of a generated piece.
type ContentType int

const (
	ContentSocialPost ContentType = iota + 1
	ContentVideoScript
	ContentArticle
	contentEnd
)

var contentTypeNames = [...]string{
	ContentSocialPost:  "Social Post",
	ContentVideoScript: "Video Script",
	ContentArticle:     "Article",
}

var _ [len(contentTypeNames) - int(contentEnd)]struct{}

func ContentTypes() []ContentType {
	out := make([]ContentType, 0, int(contentEnd)-1)
	for c := ContentSocialPost; c < contentEnd; c++ {
		out = append(out, c)
	}
	return out
}

func (c ContentType) Valid() bool { return c > 0 && c < contentEnd }

func (c ContentType) String() string {
	if !c.Valid() {
		return fmt.Sprintf("ContentType(%d)", int(c))
	}
	return contentTypeNames[c]
}

func ParseContentType(s string) (ContentType, error) {
	aliases := map[string]int{
		"post":   int(ContentSocialPost),
		"social": int(ContentSocialPost),
		"video":  int(ContentVideoScript),
		"script": int(ContentVideoScript),
	}
	if v, ok := lookup(contentTypeNames[:], s, aliases); ok {
		return ContentType(v), nil
	}
	return 0, fmt.Errorf("unknown content type %q", s)
}

func (c ContentType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid content type %d", int(c))
	}
	return []byte(contentTypeNames[c]), nil
}

func (c *ContentType) UnmarshalText(b []byte) error {
	*c, _ = ParseContentType(string(b))
	return nil
}

// Dialect selects the language and regional variant of generated text.
type Dialect int

const (
	DialectEgyptian Dialect = iota + 1
	DialectGulf
	DialectEnglish
	dialectEnd
)

// DefaultDialect is assigned to stored brands that predate the dialect field.
const DefaultDialect = DialectEgyptian

var dialectNames = [...]string{
	DialectEgyptian: "Egyptian Arabic",
	DialectGulf:     "Gulf Arabic",
	DialectEnglish:  "English",
}

var _ [len(dialectNames) - int(dialectEnd)]struct{}

func Dialects() []Dialect {
	out := make([]Dialect, 0, int(dialectEnd)-1)
	for d := DialectEgyptian; d < dialectEnd; d++ {
		out = append(out, d)
	}
	return out
}

func (d Dialect) Valid() bool { return d > 0 && d < dialectEnd }

func (d Dialect) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
	return dialectNames[d]
}

func ParseDialect(s string) (Dialect, error) {
	aliases := map[string]int{
		"egyptian": int(DialectEgyptian),
		"eg":       int(DialectEgyptian),
		"gulf":     int(DialectGulf),
		"en":       int(DialectEnglish),
	}
	if v, ok := lookup(dialectNames[:], s, aliases); ok {
		return Dialect(v), nil
	}
	return 0, fmt.Errorf("unknown dialect %q", s)
}

func (d Dialect) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid dialect %d", int(d))
	}
	return []byte(dialectNames[d]), nil
}

func (d *Dialect) UnmarshalText(b []byte) error {
	*d, _ = ParseDialect(string(b))
	return nil
}

// RefinementAction is a transformation applied to existing post text.
type RefinementAction int

const (
	RefineRephrase RefinementAction = iota + 1
	RefineShorten
	RefineLengthen
	RefineChangeTone
	refineEnd
)

var refinementNames = [...]string{
	RefineRephrase:   "rephrase",
	RefineShorten:    "shorten",
	RefineLengthen:   "lengthen",
	RefineChangeTone: "changeTone",
}

var _ [len(refinementNames) - int(refineEnd)]struct{}

func (a RefinementAction) Valid() bool { return a > 0 && a < refineEnd }

func (a RefinementAction) String() string {
	if !a.Valid() {
		return fmt.Sprintf("RefinementAction(%d)", int(a))
	}
	return refinementNames[a]
}

func ParseRefinementAction(s string) (RefinementAction, error) {
	aliases := map[string]int{"tone": int(RefineChangeTone), "change-tone": int(RefineChangeTone)}
	if v, ok := lookup(refinementNames[:], s, aliases); ok {
		return RefinementAction(v), nil
	}
	return 0, fmt.Errorf("unknown refinement action %q", s)
}

// CampaignGoal is the marketing objective of a campaign.
type CampaignGoal int

const (
	GoalProductLaunch CampaignGoal = iota + 1
	GoalBrandAwareness
	GoalSpecialOffer
	GoalCommunityEngagement
	goalEnd
)

var goalNames = [...]string{
	GoalProductLaunch:       "Product Launch",
	GoalBrandAwareness:      "Brand Awareness",
	GoalSpecialOffer:        "Special Offer / Promotion",
	GoalCommunityEngagement: "Community Engagement",
}

var goalDescriptions = [...]string{
	GoalProductLaunch:       "A teaser, announcement and follow-up sequence for launching a new product or service.",
	GoalBrandAwareness:      "Content centred on the brand's story and values to reach a new audience.",
	GoalSpecialOffer:        "A series of posts promoting a discount, offer or limited-time event.",
	GoalCommunityEngagement: "Content designed to get followers participating, commenting and sharing.",
}

var (
	_ [len(goalNames) - int(goalEnd)]struct{}
	_ [len(goalDescriptions) - int(goalEnd)]struct{}
)

func CampaignGoals() []CampaignGoal {
	out := make([]CampaignGoal, 0, int(goalEnd)-1)
	for g := GoalProductLaunch; g < goalEnd; g++ {
		out = append(out, g)
	}
	return out
}

func (g CampaignGoal) Valid() bool { return g > 0 && g < goalEnd }

func (g CampaignGoal) String() string {
	if !g.Valid() {
		return fmt.Sprintf("CampaignGoal(%d)", int(g))
	}
	return goalNames[g]
}

// Description is the prompt-only explanation of the goal.
func (g CampaignGoal) Description() string {
	if !g.Valid() {
		return ""
	}
	return goalDescriptions[g]
}

func ParseCampaignGoal(s string) (CampaignGoal, error) {
	aliases := map[string]int{
		"launch":     int(GoalProductLaunch),
		"awareness":  int(GoalBrandAwareness),
		"offer":      int(GoalSpecialOffer),
		"promotion":  int(GoalSpecialOffer),
		"engagement": int(GoalCommunityEngagement),
		"community":  int(GoalCommunityEngagement),
	}
	if v, ok := lookup(goalNames[:], s, aliases); ok {
		return CampaignGoal(v), nil
	}
	return 0, fmt.Errorf("unknown campaign goal %q", s)
}
