package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/aliskhannn/faith-journey-bot/internal/service"
)

const (
	DefaultModel       = "gemini-2.5-flash-image"
	DefaultAspectRatio = "1:1"
	defaultMIMEType    = "image/png"
)

// ErrMissingAPIKey is returned when the generator is built without a key.
var ErrMissingAPIKey = errors.New("gemini API key is required")

// contentGenerator is the part of genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ImageGenerator produces stage illustrations with a Gemini image model.
type ImageGenerator struct {
	models      contentGenerator
	model       string
	aspectRatio string
}

// NewImageGenerator creates a Gemini-backed generator.
func NewImageGenerator(ctx context.Context, apiKey, model string) (*ImageGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newImageGenerator(client.Models, model), nil
}

func newImageGenerator(models contentGenerator, model string) *ImageGenerator {
	if model == "" {
		model = DefaultModel
	}
	return &ImageGenerator{
		models:      models,
		model:       model,
		aspectRatio: DefaultAspectRatio,
	}
}

// GenerateImage returns the first inline image of the response as a data URI.
func (g *ImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: g.aspectRatio,
		},
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	uri, ok := firstInlineImage(resp)
	if !ok {
		return "", service.ErrNoImage
	}
	return uri, nil
}

// Name returns the generator name.
func (g *ImageGenerator) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}

func firstInlineImage(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return "", false
	}

	for _, part := range candidate.Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}

		mime := part.InlineData.MIMEType
		if mime == "" {
			mime = defaultMIMEType
		}
		return DataURI(mime, part.InlineData.Data), true
	}

	return "", false
}

// DataURI wraps raw image bytes as a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Disabled is used when no API key is configured. It never produces an image.
type Disabled struct{}

func (Disabled) GenerateImage(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: %w", service.ErrNoImage, ErrMissingAPIKey)
}
