package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/aliskhannn/faith-journey-bot/internal/service"
)

type fakeModels struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig

	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func responseWith(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: genai.RoleModel, Parts: parts}},
		},
	}
}

func TestGenerateImage(t *testing.T) {
	models := &fakeModels{
		resp: responseWith(
			genai.NewPartFromText("here you go"),
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}}},
		),
	}
	gen := newImageGenerator(models, "")

	uri, err := gen.GenerateImage(context.Background(), "a sprout")

	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,/9j/", uri)

	assert.Equal(t, DefaultModel, models.model)
	require.Len(t, models.contents, 1)
	assert.Equal(t, "a sprout", models.contents[0].Parts[0].Text)
	assert.Equal(t, []string{string(genai.ModalityImage)}, models.config.ResponseModalities)
	require.NotNil(t, models.config.ImageConfig)
	assert.Equal(t, DefaultAspectRatio, models.config.ImageConfig.AspectRatio)
}

func TestGenerateImage_DefaultMIMEType(t *testing.T) {
	models := &fakeModels{
		resp: responseWith(&genai.Part{InlineData: &genai.Blob{Data: []byte("png")}}),
	}

	uri, err := newImageGenerator(models, "custom-model").GenerateImage(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,cG5n", uri)
	assert.Equal(t, "custom-model", models.model)
}

func TestGenerateImage_NoImage(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{name: "nil response"},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}},
		{name: "no content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{name: "text only", resp: responseWith(genai.NewPartFromText("sorry"))},
		{name: "empty blob", resp: responseWith(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png"}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newImageGenerator(&fakeModels{resp: tt.resp}, "")

			_, err := gen.GenerateImage(context.Background(), "p")

			assert.ErrorIs(t, err, service.ErrNoImage)
		})
	}
}

func TestGenerateImage_BackendError(t *testing.T) {
	boom := errors.New("quota exceeded")
	gen := newImageGenerator(&fakeModels{err: boom}, "")

	_, err := gen.GenerateImage(context.Background(), "p")

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, service.ErrNoImage)
}

func TestNewImageGenerator_RequiresKey(t *testing.T) {
	_, err := NewImageGenerator(context.Background(), "", "")

	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestDisabled(t *testing.T) {
	var gen service.ImageGenerator = Disabled{}

	_, err := gen.GenerateImage(context.Background(), "p")

	assert.ErrorIs(t, err, service.ErrNoImage)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestName(t *testing.T) {
	assert.Equal(t, "genai:gemini-2.5-flash-image", newImageGenerator(&fakeModels{}, "").Name())
}
