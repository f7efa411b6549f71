package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"socialpost/internal/diff"
	"socialpost/internal/types"
)

// Renderer turns brands and posts into terminal text.
type Renderer struct {
	styles Styles
	md     *glamour.TermRenderer
	width  int
	loc    *time.Location
	plain  bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPlain disables colors and borders, and renders markdown with the
// no-terminal glamour style.
func WithPlain() Option {
	return func(r *Renderer) { r.plain = true }
}

// WithWidth sets the word-wrap width.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// WithLocation sets the zone used to group and print generation dates.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// New creates a renderer.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{width: 80, loc: time.Local}
	for _, opt := range opts {
		opt(r)
	}

	mdOpts := []glamour.TermRendererOption{glamour.WithWordWrap(r.width)}
	if r.plain {
		r.styles = PlainStyles()
		mdOpts = append(mdOpts, glamour.WithStylePath("notty"))
	} else {
		r.styles = DefaultStyles()
		mdOpts = append(mdOpts, glamour.WithAutoStyle())
	}

	md, err := glamour.NewTermRenderer(mdOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	r.md = md
	return r, nil
}

// Styles returns the active style set.
func (r *Renderer) Styles() Styles { return r.styles }

// Markdown renders markdown source, falling back to the source on error.
func (r *Renderer) Markdown(src string) string {
	out, err := r.md.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}

// BrandTable lists brands with their dialect and post count.
func (r *Renderer) BrandTable(brands []types.Brand) string {
	if len(brands) == 0 {
		return r.styles.Muted.Render("No brands yet. Create one with `socialpost brand add`.") + "\n"
	}
	t := NewTable("Brands", "ID", "Name", "Dialect", "Posts")
	for _, b := range brands {
		t.AddRow(b.ID, b.Name, dialectName(b.Dialect), fmt.Sprintf("%d", len(b.Posts)))
	}
	return t.View(r.styles)
}

// Brand renders a brand header followed by its identity profile.
func (r *Renderer) Brand(b types.Brand) string {
	var sb strings.Builder
	sb.WriteString(r.styles.Title.Render(b.Name))
	sb.WriteString("  ")
	sb.WriteString(r.styles.Muted.Render(b.ID))
	sb.WriteString("\n")
	if b.Description != "" {
		sb.WriteString(r.styles.Subtitle.Render(b.Description))
		sb.WriteString("\n")
	}
	sb.WriteString(r.styles.Muted.Render(fmt.Sprintf("Dialect: %s · %d posts", dialectName(b.Dialect), len(b.Posts))))
	sb.WriteString("\n\n")
	sb.WriteString(r.Markdown(IdentityMarkdown(b.Identity)))
	sb.WriteString("\n")
	return sb.String()
}

// IdentityMarkdown describes an identity profile as markdown.
func IdentityMarkdown(id types.BrandIdentity) string {
	if id.IsEmpty() {
		return "_No identity profile defined._"
	}

	var sb strings.Builder
	sb.WriteString("## Identity\n")
	if id.AudiencePersona != "" {
		fmt.Fprintf(&sb, "\n**Audience:** %s\n", id.AudiencePersona)
	}
	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n**%s**\n\n", title)
		for _, it := range items {
			fmt.Fprintf(&sb, "- %s\n", it)
		}
	}
	list("Content pillars", id.ContentPillars)
	list("Keywords to use", id.BrandLexicon.KeywordsToUse)
	list("Keywords to avoid", id.BrandLexicon.KeywordsToAvoid)
	list("Successful examples", id.SuccessExamples)
	return sb.String()
}

// Post renders one post as a card.
func (r *Renderer) Post(p types.Post) string {
	var lines []string

	var head []string
	if p.IsCampaign() {
		label := fmt.Sprintf("Day %d", p.DayInCampaign)
		if p.CampaignTheme != "" {
			label += " · " + p.CampaignTheme
		}
		head = append(head, r.styles.Campaign.Render(label))
	}
	if p.Platform.Valid() {
		head = append(head, r.styles.Bold.Render(p.Platform.String()))
	}
	if p.ContentType.Valid() {
		head = append(head, r.styles.Muted.Render(p.ContentType.String()))
	}
	if len(head) > 0 {
		lines = append(lines, strings.Join(head, "  "))
	}
	lines = append(lines, r.styles.Muted.Render("id "+p.ID))
	if p.Topic != "" {
		lines = append(lines, r.styles.Muted.Render("Topic: "+p.Topic))
	}

	lines = append(lines, "", r.Markdown(p.Text))
	if p.TovPhrase != "" {
		lines = append(lines, "", r.styles.Phrase.Render("“"+p.TovPhrase+"”"))
	}
	if len(p.Hashtags) > 0 {
		lines = append(lines, "", r.styles.Tag.Render(strings.Join(p.Hashtags, " ")))
	}
	if v := p.VisualInspiration; v != nil {
		lines = append(lines, "", r.styles.Bold.Render("Visual inspiration"))
		if v.Description != "" {
			lines = append(lines, v.Description)
		}
		if len(v.ColorPalette) > 0 {
			lines = append(lines, r.styles.Muted.Render("Palette: ")+strings.Join(v.ColorPalette, " "))
		}
		if v.ImagePrompt != "" {
			lines = append(lines, r.styles.Muted.Render("Image prompt: ")+v.ImagePrompt)
		}
	}

	return r.styles.Card.Render(strings.Join(lines, "\n")) + "\n"
}

// Posts renders posts as a sequence of cards.
func (r *Renderer) Posts(posts []types.Post) string {
	var sb strings.Builder
	for _, p := range posts {
		sb.WriteString(r.Post(p))
	}
	return sb.String()
}

// List renders a titled bullet list, e.g. topic ideas.
func (r *Renderer) List(title string, items []string) string {
	var sb strings.Builder
	sb.WriteString(r.styles.Title.Render(title))
	sb.WriteString("\n")
	for i, it := range items {
		fmt.Fprintf(&sb, "%2d. %s\n", i+1, it)
	}
	return sb.String()
}

// Success renders a confirmation line.
func (r *Renderer) Success(format string, args ...any) string {
	return r.styles.Success.Render(fmt.Sprintf(format, args...)) + "\n"
}

func dialectName(d types.Dialect) string {
	if !d.Valid() {
		d = types.DefaultDialect
	}
	return d.String()
}

// Revision renders a word diff. Plain output marks deletions as [-text-] and
// insertions as {+text+}.
func (r *Renderer) Revision(spans []diff.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		switch s.Op {
		case diff.OpInsert:
			sb.WriteString(r.mark(r.styles.Inserted, "{+", s.Text, "+}"))
		case diff.OpDelete:
			sb.WriteString(r.mark(r.styles.Deleted, "[-", s.Text, "-]"))
		default:
			sb.WriteString(s.Text)
		}
	}
	inserted, deleted := diff.Stats(spans)
	sb.WriteString("\n")
	sb.WriteString(r.styles.Muted.Render(fmt.Sprintf("+%d -%d words", inserted, deleted)))
	sb.WriteString("\n")
	return sb.String()
}

// mark styles the words of text and leaves trailing whitespace outside the
// markers.
func (r *Renderer) mark(style lipgloss.Style, opening, text, closing string) string {
	body := strings.TrimRightFunc(text, unicode.IsSpace)
	tail := text[len(body):]
	if r.plain {
		return opening + body + closing + tail
	}
	return style.Render(body) + tail
}
