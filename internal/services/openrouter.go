package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"
)

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// HTTPClient is optional; tests point it at an httptest server.
	HTTPClient *http.Client
}

// openRouterService talks to an OpenAI-compatible chat-completions endpoint.
// The SDK handles transport and auth; the body is read raw so that the
// response shape can be checked field by field.
type openRouterService struct {
	client  openai.Client
	model   string
	timeout time.Duration
	prompts *PromptBuilder
	logger  *slog.Logger
}

func NewOpenRouterService(cfg OpenRouterConfig, logger *slog.Logger) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter api key is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("openrouter base url is required")
	}

	baseURL := cfg.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &openRouterService{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		prompts: NewPromptBuilder(),
		logger:  logger,
	}, nil
}

// Generate implements Generator.
func (s *openRouterService) Generate(ctx context.Context, input string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(s.prompts.SystemPrompt()),
			openai.UserMessage(s.prompts.UserPrompt(input)),
		},
	}

	var (
		raw      []byte
		httpResp *http.Response
	)
	start := time.Now()
	_, err := s.client.Chat.Completions.New(ctx, params,
		option.WithResponseBodyInto(&raw),
		option.WithResponseInto(&httpResp),
	)
	if err != nil {
		genErr := classifyTransportError(err)
		s.logger.Error("AI request error", "kind", genErr.Kind, "model", s.model, "error", err)
		return "", genErr
	}
	if httpResp != nil && (httpResp.StatusCode < 200 || httpResp.StatusCode > 299) {
		genErr := unreachable("unexpected status %d", httpResp.StatusCode)
		s.logger.Error("AI request error", "kind", genErr.Kind, "status", httpResp.StatusCode)
		return "", genErr
	}

	content, genErr := extractContent(raw)
	if genErr != nil {
		s.logger.Error("response processing error", "kind", genErr.Kind, "error", genErr.Err, "body_bytes", len(raw))
		return "", genErr
	}

	s.logger.Debug("AI response received", "model", s.model, "chars", len(content), "latency", time.Since(start))
	return content, nil
}

func classifyTransportError(err error) *GenerationError {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &GenerationError{Kind: KindServiceUnreachable, Err: fmt.Errorf("upstream returned HTTP %d: %w", apiErr.StatusCode, err)}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &GenerationError{Kind: KindServiceUnreachable, Err: fmt.Errorf("upstream timed out: %w", err)}
	}
	return &GenerationError{Kind: KindServiceUnreachable, Err: err}
}

// extractContent pulls choices[0].message.content out of a chat-completions body.
// The content is returned byte-for-byte as the upstream produced it.
func extractContent(raw []byte) (string, *GenerationError) {
	if !gjson.ValidBytes(raw) {
		return "", malformed("response body is not valid JSON")
	}

	choices := gjson.GetBytes(raw, "choices")
	if !choices.Exists() {
		return "", malformed("unexpected response format: missing choices")
	}
	if !choices.IsArray() || len(choices.Array()) == 0 {
		return "", malformed("unexpected response format: choices is empty")
	}

	content := gjson.GetBytes(raw, "choices.0.message.content")
	if content.Type != gjson.String {
		return "", malformed("unexpected response format: choices[0].message.content is not a string")
	}
	if content.Str == "" {
		return "", malformed("unexpected response format: empty content")
	}
	if strings.ContainsRune(content.Str, 0) {
		return "", malformed("unexpected response format: content contains a NUL byte")
	}

	return content.Str, nil
}
