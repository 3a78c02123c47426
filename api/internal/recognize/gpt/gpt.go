package gpt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"digit-identifier/api/internal/recognize"
	"digit-identifier/api/internal/util"
)

type Engine struct {
	Model string

	cl *openai.Client
}

// New builds a chat-completions client. baseURL is optional and points the
// client at a compatible gateway instead of api.openai.com.
func New(apiKey, model, baseURL string) (*Engine, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is empty")
	}
	cfg := openai.DefaultConfig(apiKey)
	if u := strings.TrimRight(strings.TrimSpace(baseURL), "/"); u != "" {
		cfg.BaseURL = u
	}
	return &Engine{
		Model: strings.TrimSpace(model),
		cl:    openai.NewClientWithConfig(cfg),
	}, nil
}

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

// Classify posts the instruction as the system message and the image as a
// data URL in the user message. Single attempt, no streaming.
func (e *Engine) Classify(ctx context.Context, img []byte, mime string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: e.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: recognize.Prompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: "Classify the digits in this image."},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
						URL:    util.MakeDataURL(mime, img),
						Detail: openai.ImageURLDetailHigh,
					}},
				},
			},
		},
		Temperature: 0,
	}

	resp, err := e.cl.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai classify: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai classify: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
