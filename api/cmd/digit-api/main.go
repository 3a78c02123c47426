package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"digit-identifier/api/internal/config"
	"digit-identifier/api/internal/handle"
	"digit-identifier/api/internal/httpserver"
	"digit-identifier/api/internal/recognize"
	"digit-identifier/api/internal/recognize/gemini"
	"digit-identifier/api/internal/recognize/gpt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := run(cfg); err != nil {
		log.Printf("server: %v", err)
		os.Exit(1)
	}
}

// run owns every resource it opens, so deferred closes happen before main exits.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Only the selected provider is built, so only its key is required.
	engines := &recognize.Engines{}
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		defer g.Close()
		engines.Gemini = g
	case config.ProviderOpenAI:
		o, err := gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		if err != nil {
			return err
		}
		engines.OpenAI = o
	}

	eng, err := engines.GetEngine(cfg.Provider)
	if err != nil {
		return err
	}
	log.Printf("recognizer: %s/%s prompt=%s", eng.Name(), eng.GetModel(), recognize.PromptVersion)

	srv := httpserver.New(httpserver.Options{
		Addr:         ":" + cfg.Port,
		AllowOrigins: cfg.CORSAllowOrigins,
	}, handle.New(eng, cfg.MaxUploadBytes))

	return srv.Run(ctx)
}
