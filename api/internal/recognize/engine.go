package recognize

import (
	"context"
	"fmt"
	"strings"
)

// Engine is the external multimodal model. Classify sends the fixed
// instruction together with the image and returns the model's reply verbatim.
type Engine interface {
	Name() string
	GetModel() string
	Classify(ctx context.Context, img []byte, mime string) (string, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine
}

func (e *Engines) GetEngine(name string) (Engine, error) {
	var eng Engine
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gemini":
		eng = e.Gemini
	case "gpt", "openai":
		eng = e.OpenAI
	default:
		return nil, fmt.Errorf("unknown llm provider %q; use 'gemini' or 'openai'", name)
	}
	if eng == nil {
		return nil, fmt.Errorf("llm provider %q is not configured", name)
	}
	return eng, nil
}
