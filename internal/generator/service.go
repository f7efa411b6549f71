// Package generator is the generation façade. Each operation builds a prompt,
// calls the generation service once, parses the answer into a typed result and
// turns any failure into a *Error carrying a task-specific user message.
// Nothing is retried.
package generator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"socialpost/internal/llm"
	"socialpost/internal/logging"
	"socialpost/internal/prompt"
	"socialpost/internal/response"
	"socialpost/internal/types"
	"socialpost/internal/usage"
)

// taglineTokenBudget caps the design phrase; only a few words are wanted.
const taglineTokenBudget = 20

// Service runs generation tasks against an llm.Client.
type Service struct {
	client llm.Client
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used to timestamp materialised posts.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator sets the post id source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a façade over client.
func NewService(client llm.Client, opts ...Option) *Service {
	s := &Service{
		client: client,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PostsRequest describes a batch of single posts.
type PostsRequest struct {
	Platform    types.Platform
	Tone        types.ToneOfVoice
	Count       int
	ContentType types.ContentType
	Topic       string
}

// CampaignRequest describes a campaign.
type CampaignRequest struct {
	Goal     types.CampaignGoal
	Days     int
	Topic    string
	Platform types.Platform
	Tone     types.ToneOfVoice
}

// Refinement is a refinement action. Tone is required for RefineChangeTone.
type Refinement struct {
	Action types.RefinementAction
	Tone   types.ToneOfVoice
}

// GeneratePosts asks for Count drafts. Count is not bounded here; extra drafts
// are dropped and a shortfall is logged.
func (s *Service) GeneratePosts(ctx context.Context, brand types.Brand, req PostsRequest) ([]Draft, error) {
	switch {
	case !req.Platform.Valid():
		return nil, invalid(TaskPosts, "platform is required")
	case !req.Tone.Valid():
		return nil, invalid(TaskPosts, "tone is required")
	case !req.ContentType.Valid():
		return nil, invalid(TaskPosts, "content type is required")
	}

	text := prompt.Posts(brand, prompt.PostsParams{
		Platform:    req.Platform,
		Tone:        req.Tone,
		Count:       req.Count,
		ContentType: req.ContentType,
		Topic:       req.Topic,
	})

	var result postsResult
	if err := s.generateJSON(ctx, TaskPosts, text, postsSchema(), &result); err != nil {
		return nil, err
	}

	items := fitCount(TaskPosts, result.Posts, req.Count)
	drafts := make([]Draft, 0, len(items))
	for _, p := range items {
		drafts = append(drafts, p.draft())
	}
	logging.Generator("generated %d posts for brand %s", len(drafts), brand.ID)
	return drafts, nil
}

// GenerateCampaign asks for one draft per day. Entries without a usable day
// number get their position.
func (s *Service) GenerateCampaign(ctx context.Context, brand types.Brand, req CampaignRequest) ([]CampaignDraft, error) {
	switch {
	case !req.Goal.Valid():
		return nil, invalid(TaskCampaign, "campaign goal is required")
	case !req.Platform.Valid():
		return nil, invalid(TaskCampaign, "platform is required")
	case !req.Tone.Valid():
		return nil, invalid(TaskCampaign, "tone is required")
	}

	text := prompt.Campaign(brand, prompt.CampaignParams{
		Goal:     req.Goal,
		Days:     req.Days,
		Topic:    req.Topic,
		Platform: req.Platform,
		Tone:     req.Tone,
	})

	var result campaignResult
	if err := s.generateJSON(ctx, TaskCampaign, text, campaignSchema(), &result); err != nil {
		return nil, err
	}

	items := fitCount(TaskCampaign, result.CampaignPosts, req.Days)
	drafts := make([]CampaignDraft, 0, len(items))
	for i, p := range items {
		drafts = append(drafts, CampaignDraft{
			Draft: p.draft(),
			Day:   campaignDay(p.Day, i),
			Theme: strings.TrimSpace(p.Theme),
		})
	}
	logging.Generator("generated %d-day campaign for brand %s", len(drafts), brand.ID)
	return drafts, nil
}

// GenerateTopicIdeas suggests short content topics for a brand description.
func (s *Service) GenerateTopicIdeas(ctx context.Context, description string, dialect types.Dialect) ([]string, error) {
	var result ideasResult
	err := s.generateJSON(ctx, TaskTopicIdeas, prompt.TopicIdeas(description, dialect),
		stringListSchema("ideas", ""), &result)
	if err != nil {
		return nil, err
	}
	return result.Ideas, nil
}

// GenerateHashtags suggests hashtags for a post text.
func (s *Service) GenerateHashtags(ctx context.Context, text string, dialect types.Dialect) ([]string, error) {
	var result hashtagsResult
	err := s.generateJSON(ctx, TaskHashtags, prompt.Hashtags(text, dialect),
		stringListSchema("hashtags", "Hashtag starting with #"), &result)
	if err != nil {
		return nil, err
	}
	return result.Hashtags, nil
}

// RefinePost returns the model's rewrite of text. The answer is free text; only
// surrounding whitespace is removed.
func (s *Service) RefinePost(ctx context.Context, text string, r Refinement, dialect types.Dialect) (string, error) {
	if !r.Action.Valid() {
		return "", invalid(TaskRefine, "refinement action is required")
	}
	if r.Action == types.RefineChangeTone && !r.Tone.Valid() {
		return "", invalid(TaskRefine, "a target tone is required to change tone")
	}

	raw, err := s.generate(ctx, TaskRefine, llm.Request{Prompt: prompt.Refine(text, r.Action, r.Tone, dialect)})
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(raw)
	if out == "" {
		return "", s.fail(TaskRefine, KindMalformed, response.ErrEmpty)
	}
	return out, nil
}

// GenerateTagline returns a short design phrase with quotation marks removed.
func (s *Service) GenerateTagline(ctx context.Context, text, description string, dialect types.Dialect) (string, error) {
	raw, err := s.generate(ctx, TaskTagline, llm.Request{
		Prompt:          prompt.Tagline(text, description, dialect),
		MaxOutputTokens: taglineTokenBudget,
		DisableThinking: true,
	})
	if err != nil {
		return "", err
	}
	out := cleanTagline(raw)
	if out == "" {
		return "", s.fail(TaskTagline, KindMalformed, response.ErrEmpty)
	}
	return out, nil
}

func (s *Service) generate(ctx context.Context, task Task, req llm.Request) (string, error) {
	if s.client == nil {
		return "", s.fail(task, KindTransport, llm.ErrNoAPIKey)
	}
	logging.GeneratorDebug("%s: prompt_len=%d", task, len(req.Prompt))
	raw, err := s.client.Generate(usage.WithOperation(ctx, task.String()), req)
	if err != nil {
		return "", s.fail(task, KindTransport, err)
	}
	return raw, nil
}

func (s *Service) generateJSON(ctx context.Context, task Task, text string, schema *genai.Schema, out response.Validator) error {
	raw, err := s.generate(ctx, task, llm.Request{Prompt: text, Schema: schema})
	if err != nil {
		return err
	}
	if err := response.Decode(raw, out); err != nil {
		logging.GeneratorDebug("%s: unparseable response: %.200q", task, raw)
		return s.fail(task, KindMalformed, err)
	}
	return nil
}

func (s *Service) fail(task Task, kind Kind, err error) *Error {
	if !errors.Is(err, context.Canceled) {
		logging.GeneratorError("%s failed (%s): %v", task, kind, err)
	}
	return &Error{Task: task, Kind: kind, Err: err}
}

// fitCount drops items beyond want and logs a shortfall. want <= 0 keeps all.
func fitCount[T any](task Task, items []T, want int) []T {
	if want <= 0 {
		return items
	}
	if len(items) > want {
		logging.GeneratorWarn("%s: model returned %d items, keeping the first %d", task, len(items), want)
		return items[:want]
	}
	if len(items) < want {
		logging.GeneratorWarn("%s: model returned %d of %d requested items", task, len(items), want)
	}
	return items
}
