// Package prompt builds the natural-language instructions sent to the
// generation service. Every builder is a pure function of its inputs.
//
// Brand text (description, identity fields, topics) is interpolated verbatim.
// A user who controls that text can steer the model; nothing here sanitises it.
package prompt

import (
	"fmt"
	"strings"

	"socialpost/internal/types"
)

var languageLines = [...]string{
	types.DialectEgyptian: "Arabic (Egyptian dialect)",
	types.DialectGulf:     "Arabic (Gulf dialect)",
	types.DialectEnglish:  "English",
}

var platformGuidelines = [...]string{
	types.PlatformFacebook:  "Focus on community engagement, asking questions and storytelling. Use a warm, welcoming tone.",
	types.PlatformInstagram: "Write visually engaging captions. Use relevant hashtags and a conversational tone. Emoji are encouraged.",
	types.PlatformTikTok:    "Short, punchy, trend-focused captions. Draw on trending sounds and hashtags. Keep it fun and energetic.",
	types.PlatformX:         "Concise, high-impact messages. Ideal for news, quick updates and joining conversations. Use hashtags for reach.",
	types.PlatformLinkedIn:  "Professional, industry-relevant content. Share insights, company news and thought leadership. Keep a formal, credible tone.",
}

// Both bounds: a missing or extra entry fails to compile.
var (
	_ [len(languageLines) - types.DialectTableSize]struct{}
	_ [types.DialectTableSize - len(languageLines)]struct{}
	_ [len(platformGuidelines) - types.PlatformTableSize]struct{}
	_ [types.PlatformTableSize - len(platformGuidelines)]struct{}
)

// Language names the language and dialect generated text must be written in.
// Unset dialects use the default.
func Language(d types.Dialect) string {
	if !d.Valid() {
		d = types.DefaultDialect
	}
	return languageLines[d]
}

// PlatformGuideline returns the writing guidance for a platform, or "" for an
// unset platform.
func PlatformGuideline(p types.Platform) string {
	if !p.Valid() {
		return ""
	}
	return platformGuidelines[p]
}

// IdentityBlock renders the populated fields of a brand identity. Empty fields
// produce no line at all, and an empty identity produces "".
func IdentityBlock(id types.BrandIdentity) string {
	if id.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("**Strategic brand identity profile:**\n")
	sb.WriteString("Treat this profile as the primary reference for every word you write. The content must match this identity exactly.\n")

	if persona := strings.TrimSpace(id.AudiencePersona); persona != "" {
		fmt.Fprintf(&sb, "- **Target audience persona:** %s\n", persona)
	}
	if len(id.ContentPillars) > 0 {
		fmt.Fprintf(&sb, "- **Content pillars:** %s\n", strings.Join(id.ContentPillars, ", "))
	}
	if len(id.BrandLexicon.KeywordsToUse) > 0 {
		fmt.Fprintf(&sb, "- **Keywords to use (reinforce the identity):** %s\n", strings.Join(id.BrandLexicon.KeywordsToUse, ", "))
	}
	if len(id.BrandLexicon.KeywordsToAvoid) > 0 {
		fmt.Fprintf(&sb, "- **Keywords to avoid (protect the identity):** %s\n", strings.Join(id.BrandLexicon.KeywordsToAvoid, ", "))
	}
	if len(id.SuccessExamples) > 0 {
		sb.WriteString("- **Successful examples (learn from this style):**\n")
		for _, ex := range id.SuccessExamples {
			fmt.Fprintf(&sb, "  - \"%s\"\n", ex)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// assemble joins non-empty sections with blank lines.
func assemble(sections ...string) string {
	kept := make([]string, 0, len(sections))
	for _, s := range sections {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n")
}

// bullets renders "- **label:** value" lines, skipping empty values.
func bullets(title string, pairs ...string) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "**%s:**\n", title)
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		fmt.Fprintf(&sb, "- **%s:** %s\n", pairs[i], pairs[i+1])
	}
	return sb.String()
}
