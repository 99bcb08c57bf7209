package flows

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is used when the configuration leaves the model empty
const DefaultModel = "gemini-2.0-flash"

// Gemini is a Generator backed by the Gemini API
type Gemini struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGemini creates a Gemini generator for the given API key and model
func NewGemini(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
		logger: logger.Named("gemini"),
	}, nil
}

// Generate sends the prompt and any inline media, asking for JSON that
// matches req.Schema
func (g *Gemini) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	for _, m := range req.Media {
		parts = append(parts, genai.NewPartFromBytes(m.Data, m.MIMEType))
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}

	g.logger.Debug("generate",
		zap.String("flow", req.Name),
		zap.String("model", g.model),
		zap.Int("prompt_len", len(req.Prompt)),
		zap.Int("media", len(req.Media)))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, nil
	}
	return json.RawMessage(text), nil
}

// Model returns the model name in use
func (g *Gemini) Model() string {
	return g.model
}
