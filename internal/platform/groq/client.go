package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/healthlens/healthlens-backend/internal/domain"
	"github.com/healthlens/healthlens-backend/internal/platform/apierr"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
	"github.com/healthlens/healthlens-backend/internal/platform/prompts"
)

// Client is the LLM gateway used by the analysis and claim-discovery
// services. Implementations never touch storage.
type Client interface {
	AnalyzeClaim(ctx context.Context, claimText string) (domain.ClaimAnalysis, error)
	AnalyzeInfluencer(ctx context.Context, posts []string) (domain.InfluencerAnalysis, error)
	ExtractHealthClaims(ctx context.Context, content string) ([]domain.ExtractedClaim, error)
	VerifyHealthClaim(ctx context.Context, claimText string) (domain.ClaimVerdict, error)
}

// ClientConfig is passed at construction so tests can point the client at a
// fake provider.
type ClientConfig struct {
	APIKey    string
	BaseURL   string // defaults to the Groq OpenAI-compatible endpoint
	Model     string
	Timeout   time.Duration
	MaxTokens int
	// Temperature is applied as-is; the provider treats 0 as a valid value,
	// so the zero struct keeps the documented default instead.
	Temperature *float64
}

const (
	defaultBaseURL     = "https://api.groq.com/openai/v1"
	defaultModel       = "llama-3.3-70b-versatile"
	defaultMaxTokens   = 1000
	defaultTemperature = 0.3
	defaultTimeout     = 60 * time.Second
)

type client struct {
	log         *logger.Logger
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	templates   *prompts.Config
	httpClient  *http.Client
}

func NewClient(log *logger.Logger, cfg ClientConfig, templates *prompts.Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing LLM API key")
	}
	if templates == nil {
		templates = prompts.Default()
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	temperature := defaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &client{
		log:         log.With("service", "GroqClient"),
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		templates:   templates,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *client) AnalyzeClaim(ctx context.Context, claimText string) (domain.ClaimAnalysis, error) {
	var out domain.ClaimAnalysis
	tpl := c.templates.ClaimAnalysis
	if err := c.complete(ctx, tpl.System, tpl.Render(claimText), &out); err != nil {
		return domain.ClaimAnalysis{}, err
	}
	return out, nil
}

func (c *client) AnalyzeInfluencer(ctx context.Context, posts []string) (domain.InfluencerAnalysis, error) {
	var out domain.InfluencerAnalysis
	encoded, err := json.Marshal(posts)
	if err != nil {
		return domain.InfluencerAnalysis{}, apierr.Parse("encode_posts_failed", err)
	}
	tpl := c.templates.InfluencerAnalysis
	if err := c.complete(ctx, tpl.System, tpl.Render(string(encoded)), &out); err != nil {
		return domain.InfluencerAnalysis{}, err
	}
	return out, nil
}

func (c *client) ExtractHealthClaims(ctx context.Context, content string) ([]domain.ExtractedClaim, error) {
	var out struct {
		Claims []domain.ExtractedClaim `json:"claims"`
	}
	tpl := c.templates.ClaimExtraction
	if err := c.complete(ctx, tpl.System, tpl.Render(content), &out); err != nil {
		return nil, err
	}
	return out.Claims, nil
}

func (c *client) VerifyHealthClaim(ctx context.Context, claimText string) (domain.ClaimVerdict, error) {
	var out domain.ClaimVerdict
	tpl := c.templates.ClaimVerification
	if err := c.complete(ctx, tpl.System, tpl.Render(claimText), &out); err != nil {
		return domain.ClaimVerdict{}, err
	}
	out.Status = normalizeVerdictStatus(out.Status)
	return out, nil
}

// complete issues one chat-completion call and decodes the model reply into
// out. Best-effort-once: no retries, no backoff; every failure propagates.
func (c *client) complete(ctx context.Context, system, user string, out any) error {
	req := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		TopP:        1,
		Stream:      false,
	}

	var resp chatCompletionResponse
	if err := c.do(ctx, "/chat/completions", req, &resp); err != nil {
		return err
	}

	if len(resp.Choices) == 0 {
		return apierr.InvalidResponse("empty_choices", fmt.Errorf("provider returned no choices"))
	}

	content := resp.Choices[0].Message.Content
	cleaned := SanitizeModelJSON(content)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		c.log.Error("Model reply is not valid JSON", "error", err, "raw", content)
		return apierr.Parse("model_reply_not_json", fmt.Errorf("parse model reply: %w; raw=%s", err, content))
	}
	return nil
}

func (c *client) do(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierr.Upstream("provider_unreachable", err, nil)
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return apierr.Upstream("provider_read_failed", readErr, nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apierr.Upstream(
			"provider_error",
			fmt.Errorf("provider http %d: %s", resp.StatusCode, string(raw)),
			decodeErrorPayload(raw),
		)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return apierr.InvalidResponse("provider_envelope_invalid", fmt.Errorf("decode provider envelope: %w", err))
	}
	return nil
}

// decodeErrorPayload keeps the provider's error body as structured JSON when
// possible so it can be echoed back to the caller.
func decodeErrorPayload(raw []byte) any {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return string(raw)
	}
	return payload
}

// SanitizeModelJSON strips markdown code fences and control characters from a
// model reply so the remainder can be parsed as JSON.
func SanitizeModelJSON(content string) string {
	s := strings.TrimSpace(content)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(' ')
			continue
		}
		if r < 0x20 {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func normalizeVerdictStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case domain.VerificationVerified:
		return domain.VerificationVerified
	case domain.VerificationFalse:
		return domain.VerificationFalse
	case domain.VerificationMisleading:
		return domain.VerificationMisleading
	default:
		return domain.VerificationUnverified
	}
}
