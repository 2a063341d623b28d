package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

type GeminiConfig struct {
	APIKey string
	// BaseURL overrides the Gemini API endpoint; empty means the SDK default.
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type geminiService struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
	prompts   *PromptBuilder
	logger    *slog.Logger
}

func NewGeminiService(ctx context.Context, cfg GeminiConfig, logger *slog.Logger) (Generator, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: cfg.Model,
		timeout:   cfg.Timeout,
		prompts:   NewPromptBuilder(),
		logger:    logger,
	}, nil
}

// Generate implements Generator.
func (g *geminiService) Generate(ctx context.Context, input string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(g.prompts.SystemPrompt(), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(g.prompts.UserPrompt(input)), config)
	if err != nil {
		genErr := classifyGeminiError(err)
		g.logger.Error("gemini API error", "kind", genErr.Kind, "model", g.modelName, "error", err)
		return "", genErr
	}

	if resp == nil || len(resp.Candidates) == 0 {
		genErr := malformed("gemini returned no candidates")
		g.logger.Error("response processing error", "kind", genErr.Kind, "error", genErr.Err)
		return "", genErr
	}

	text := resp.Text()
	if text == "" {
		genErr := malformed("no text content in response")
		g.logger.Error("response processing error", "kind", genErr.Kind, "error", genErr.Err)
		return "", genErr
	}
	if strings.ContainsRune(text, 0) {
		genErr := malformed("response text contains a NUL byte")
		g.logger.Error("response processing error", "kind", genErr.Kind, "error", genErr.Err)
		return "", genErr
	}

	return text, nil
}

// classifyGeminiError maps SDK errors onto generation kinds. Only a body the SDK
// could not decode counts as malformed; API errors and transport failures are unreachable.
func classifyGeminiError(err error) *GenerationError {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &GenerationError{Kind: KindMalformedResponse, Err: err}
	}
	return &GenerationError{Kind: KindServiceUnreachable, Err: err}
}
