package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	genai "google.golang.org/genai"
)

const (
	DefaultModel       = "gemini-flash-latest"
	DefaultTemperature = 0.7
	responseMIMEType   = "application/json"
)

type Gemini struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

type GeminiOptions struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint. Empty uses the SDK default.
	BaseURL string
	Logger  *zap.Logger
}

func NewGemini(ctx context.Context, opts GeminiOptions) (*Gemini, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Gemini{client: c, model: model, log: log}, nil
}

func (g *Gemini) Model() string { return g.model }

func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}
	temp := req.Temperature
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: responseMIMEType,
		ResponseSchema:   StudyMaterialSchema(),
		Temperature:      &temp,
	}
	g.log.Debug("gemini request", zap.String("model", model), zap.Int("prompt_bytes", len(req.Prompt)))
	res, err := g.client.Models.GenerateContent(ctx, model, []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	text := strings.TrimSpace(res.Text())
	g.log.Debug("gemini response", zap.Int("bytes", len(text)))
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}
