package generator

import (
	"fmt"
	"math"
	"strings"

	"socialpost/internal/response"
	"socialpost/internal/types"
)

// Draft is a generated post before it is stored.
type Draft struct {
	Text              string
	TovPhrase         string
	VisualInspiration *types.VisualInspiration
}

// CampaignDraft is one day of a generated campaign.
type CampaignDraft struct {
	Draft
	Day   int
	Theme string
}

// Model-facing wire shapes.

type wireVisual struct {
	Description  string   `json:"description"`
	ColorPalette []string `json:"color_palette"`
	ImagePrompt  string   `json:"image_prompt"`
}

type wirePost struct {
	Text              string      `json:"text"`
	TovPhrase         string      `json:"tov_phrase"`
	VisualInspiration *wireVisual `json:"visual_inspiration"`
}

func (w wirePost) validate(i int) error {
	if strings.TrimSpace(w.Text) == "" {
		return fmt.Errorf("item %d has no text", i)
	}
	return nil
}

func (w wirePost) draft() Draft {
	d := Draft{
		Text:      strings.TrimSpace(w.Text),
		TovPhrase: strings.TrimSpace(w.TovPhrase),
	}
	if v := w.VisualInspiration; v != nil {
		d.VisualInspiration = &types.VisualInspiration{
			Description:  strings.TrimSpace(v.Description),
			ColorPalette: cleanList(v.ColorPalette),
			ImagePrompt:  strings.TrimSpace(v.ImagePrompt),
		}
	}
	return d
}

type postsResult struct {
	Posts []wirePost `json:"posts"`
}

func (r *postsResult) Validate() error {
	if err := response.RequireNonEmpty("posts", len(r.Posts)); err != nil {
		return err
	}
	for i, p := range r.Posts {
		if err := p.validate(i); err != nil {
			return err
		}
	}
	return nil
}

type wireCampaignPost struct {
	wirePost
	Day   float64 `json:"day"`
	Theme string  `json:"theme"`
}

type campaignResult struct {
	CampaignPosts []wireCampaignPost `json:"campaignPosts"`
}

func (r *campaignResult) Validate() error {
	if err := response.RequireNonEmpty("campaignPosts", len(r.CampaignPosts)); err != nil {
		return err
	}
	for i, p := range r.CampaignPosts {
		if err := p.validate(i); err != nil {
			return err
		}
	}
	return nil
}

type ideasResult struct {
	Ideas []string `json:"ideas"`
}

func (r *ideasResult) Validate() error {
	r.Ideas = cleanList(r.Ideas)
	return response.RequireNonEmpty("ideas", len(r.Ideas))
}

type hashtagsResult struct {
	Hashtags []string `json:"hashtags"`
}

func (r *hashtagsResult) Validate() error {
	r.Hashtags = normalizeHashtags(r.Hashtags)
	return response.RequireNonEmpty("hashtags", len(r.Hashtags))
}

// campaignDay returns the model's day number, or the 1-based position when the
// model gave none.
func campaignDay(day float64, position int) int {
	d := int(math.Round(day))
	if d <= 0 {
		return position + 1
	}
	return d
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// normalizeHashtags trims, strips inner spaces and adds a missing '#'.
func normalizeHashtags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, tag := range in {
		tag = strings.Join(strings.Fields(tag), "")
		tag = strings.TrimLeft(tag, "#")
		if tag == "" {
			continue
		}
		out = append(out, "#"+tag)
	}
	return out
}

// cleanTagline strips quotation marks and surrounding whitespace.
func cleanTagline(s string) string {
	s = strings.NewReplacer(`"`, "", "“", "", "”", "", "«", "", "»", "").Replace(s)
	return strings.TrimSpace(s)
}
