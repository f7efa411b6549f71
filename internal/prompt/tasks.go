package prompt

import (
	"fmt"

	"socialpost/internal/types"
)

// PostsParams describes a batch of single posts.
type PostsParams struct {
	Platform    types.Platform
	Tone        types.ToneOfVoice
	Count       int
	ContentType types.ContentType
	Topic       string
}

// CampaignParams describes a day-by-day campaign plan.
type CampaignParams struct {
	Goal     types.CampaignGoal
	Days     int
	Topic    string
	Platform types.Platform
	Tone     types.ToneOfVoice
}

// Posts builds the prompt for a batch of posts. Count is passed through as is.
func Posts(brand types.Brand, p PostsParams) string {
	lang := Language(brand.Dialect)

	return assemble(
		fmt.Sprintf("You are a digital content marketing strategist and visual arts specialist. Your task is to create %d complete content pieces (copy plus visual inspiration) for a brand.", p.Count),
		bullets("Brand details", "Description", brand.Description),
		IdentityBlock(brand.Identity),
		bullets("Task details",
			"Target platform", p.Platform.String(),
			"Tone of voice", p.Tone.String(),
			"Content type", p.ContentType.String(),
			"Topic", p.Topic,
			"Language/dialect", lang,
		),
		platformSection(p.Platform),
		fmt.Sprintf(`**Task:**
For each of the %d content pieces, produce the following with great precision, guided by the brand identity profile:
1. **Content text (text):** complete, creative and engaging copy. Include relevant hashtags where they suit the platform.
2. **Tone-of-voice design phrase (tov_phrase):** a very short line for the designer to use in the artwork (example: "Quality in every cup").
3. **Visual inspiration (visual_inspiration):** an object with three fields to guide the designer:
   * **description:** a detailed, original description of the image or video that fits the copy and the identity. Be specific about elements, lighting and angle.
   * **color_palette:** an array of 3-4 suggested HEX colour codes that suit the design and the identity (example: ["#6F4E37", "#D2B48C", "#F5F5DC"]).
   * **image_prompt:** a professional prompt ready for AI image tools such as Midjourney or DALL-E. It must be in English, detailed and technical.`, p.Count),
		outputRules(lang),
	)
}

// Campaign builds the prompt for a campaign of Days posts.
func Campaign(brand types.Brand, p CampaignParams) string {
	lang := Language(brand.Dialect)

	goal := p.Goal.String()
	if d := p.Goal.Description(); d != "" {
		goal = fmt.Sprintf("%s (%s)", goal, d)
	}

	return assemble(
		"You are a campaign marketing strategist and creative director. Your task is to create a complete content plan for a brand's marketing campaign, built around a specific goal and a strategic identity.",
		bullets("Brand details", "Description", brand.Description),
		IdentityBlock(brand.Identity),
		bullets("Campaign details",
			"Goal", goal,
			"Duration", fmt.Sprintf("%d days", p.Days),
			"Topic/brief", p.Topic,
			"Primary platform", p.Platform.String(),
			"Overall tone", p.Tone.String(),
			"Language/dialect", lang,
		),
		platformSection(p.Platform),
		fmt.Sprintf(`**Task:**
Generate a coherent day-by-day content plan for a campaign lasting %d days. For each day provide one complete post with copy and visual inspiration. Posts must build on one another toward the campaign goal and follow the brand identity profile exactly.

For each day, create one object with this structure:
1. **day (number):** the day number in the campaign (1, 2, 3...).
2. **theme (string):** a short theme or title for the day's post (examples: "Teaser", "The big reveal", "Customer testimonial").
3. **text (string):** the complete, creative and engaging post copy. Include relevant hashtags.
4. **tov_phrase (string):** a very short line for the designer to use in the visual.
5. **visual_inspiration (object):** three fields to guide the designer:
   * **description (string):** a detailed, original description of the image or video.
   * **color_palette (array of strings):** 3-4 suggested HEX colour codes.
   * **image_prompt (string):** a professional, detailed and technical English prompt for AI image tools.`, p.Days),
		outputRules(lang),
	)
}

// TopicIdeas asks for five short content topics for a brand description.
func TopicIdeas(description string, dialect types.Dialect) string {
	return assemble(
		"Based on the following brand description, suggest 5 creative content topic ideas.",
		bullets("",
			"Description", quote(description),
			"Language", Language(dialect),
		),
		"The ideas must be concise and suitable for social media.",
	)
}

// Hashtags asks for five hashtags for a post.
func Hashtags(text string, dialect types.Dialect) string {
	return assemble(
		"Based on the following post text, suggest 5 relevant, fitting hashtags. Each hashtag starts with #.",
		bullets("",
			"Post text", quote(text),
			"Language/dialect", Language(dialect),
		),
	)
}

var refineInstructions = [...]string{
	types.RefineRephrase:   "Rephrase this post in a different style while keeping its core message.",
	types.RefineShorten:    "Make this post shorter and more concise, suitable for a platform like X/Twitter.",
	types.RefineLengthen:   "Lengthen this post, adding more detail or wider context.",
	types.RefineChangeTone: "Change the tone of this post to %s.",
}

var (
	_ [len(refineInstructions) - types.RefinementTableSize]struct{}
	_ [types.RefinementTableSize - len(refineInstructions)]struct{}
)

// RefineInstruction is the task line for a refinement action. The tone is used
// only by RefineChangeTone.
func RefineInstruction(action types.RefinementAction, tone types.ToneOfVoice) string {
	if !action.Valid() {
		return ""
	}
	if action == types.RefineChangeTone {
		return fmt.Sprintf(refineInstructions[action], tone)
	}
	return refineInstructions[action]
}

// Refine asks for a rewritten post. The answer is plain text, not JSON.
func Refine(text string, action types.RefinementAction, tone types.ToneOfVoice, dialect types.Dialect) string {
	return assemble(
		bullets("",
			"Task", RefineInstruction(action, tone),
			"Original text", quote(text),
			"Required language/dialect", Language(dialect),
		),
		"Return only the revised text.",
	)
}

// Tagline asks for a 3-5 word design phrase.
func Tagline(text, description string, dialect types.Dialect) string {
	return assemble(
		`You are a creative director. Based on the following post text and brand description, generate one concise, inspiring phrase (3-5 words) for a graphic designer to use in the artwork.
This phrase is called a "tone-of-voice design phrase".`,
		bullets("",
			"Brand description", quote(description),
			"Post text", quote(text),
		),
		bullets("", "Required language", Language(dialect)),
		"Return only the phrase as raw text, with no extra formatting or quotation marks.",
	)
}

func platformSection(p types.Platform) string {
	g := PlatformGuideline(p)
	if g == "" {
		return ""
	}
	return "**Platform guidelines:**\n" + g
}

func outputRules(lang string) string {
	return fmt.Sprintf("Make sure all text (except image_prompt) is written in the requested language/dialect: %s.\nYour output must be a completely valid JSON object.", lang)
}

func quote(s string) string { return `"` + s + `"` }
