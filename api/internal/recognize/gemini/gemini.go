package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"digit-identifier/api/internal/recognize"
)

type Engine struct {
	Model string

	cl *genai.Client
}

// New opens one SDK client for the whole process; the key is validated by
// config.Load, an empty one here is a programming error.
func New(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*Engine, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Engine{
		Model: strings.TrimSpace(model),
		cl:    cl,
	}, nil
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Close() error {
	if e.cl == nil {
		return nil
	}
	return e.cl.Close()
}

// Classify sends the OCR instruction and the image as one user turn and
// returns the first text part of the reply. Single attempt, no streaming.
// A reply without any text part is an error; an empty text part is not.
func (e *Engine) Classify(ctx context.Context, img []byte, mime string) (string, error) {
	m := e.cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "text/plain",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(recognize.Prompt)},
	}

	parts := []genai.Part{
		genai.Text("Classify the digits in this image."),
		&genai.Blob{MIMEType: mime, Data: img},
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini classify: %w", err)
	}
	txt, ok := firstText(resp)
	if !ok {
		return "", errors.New("gemini classify: no text in response")
	}
	return txt, nil
}

// --------------------------- helpers ---------------------------

// firstText reports false when no candidate carries a text part at all.
func firstText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil {
		return "", false
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t), true
			}
		}
	}
	return "", false
}

func ptrFloat32(v float32) *float32 { return &v }
