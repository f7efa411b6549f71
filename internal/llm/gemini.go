package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"socialpost/internal/config"
	"socialpost/internal/logging"
	"socialpost/internal/usage"
)

// GeminiClient calls models.generateContent through the genai SDK.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultGeminiConfig returns sensible defaults for Gemini.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey: apiKey,
		Model:  config.DefaultModel,
	}
}

// NewGeminiClient creates a Gemini client. It does not contact the service.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{client: client, model: cfg.Model, timeout: cfg.Timeout}, nil
}

// NewClientFromConfig builds the production client from the llm config section.
func NewClientFromConfig(ctx context.Context, cfg *config.Config) (Client, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	switch cfg.LLM.Provider {
	case "", "gemini":
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.LLM.Provider)
	}
	return NewGeminiClient(ctx, GeminiConfig{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.GetLLMTimeout(),
	})
}

func (c *GeminiClient) Model() string { return c.model }

// Generate sends one prompt.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	timer := logging.StartTimer(logging.CategoryAPI, "generateContent")
	defer timer.StopWithThreshold(30 * time.Second)

	logging.APIDebug("generateContent: model=%s prompt_len=%d schema=%t max_tokens=%d",
		c.model, len(req.Prompt), req.Schema != nil, req.MaxOutputTokens)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), generationConfig(req))
	if err != nil {
		logging.APIError("generateContent failed: %v", err)
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if um := resp.UsageMetadata; um != nil {
		logging.APIDebug("generateContent: prompt_tokens=%d output_tokens=%d",
			um.PromptTokenCount, um.CandidatesTokenCount)
		if tracker := usage.FromContext(ctx); tracker != nil {
			tracker.Track(ctx, c.model, int(um.PromptTokenCount), int(um.CandidatesTokenCount))
		}
	}
	return text, nil
}

// requestContext applies the configured timeout to a context without a
// deadline. Without a configured timeout the transport default governs.
func (c *GeminiClient) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func generationConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.MaxOutputTokens
	}
	if req.DisableThinking {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: int32Ptr(0)}
	}
	return cfg
}

func int32Ptr(v int32) *int32 { return &v }
