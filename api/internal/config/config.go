package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// MaxUploadMB bounds MAX_UPLOAD_MB (1 GiB).
const MaxUploadMB = 1 << 10

type Config struct {
	Port string

	Provider string

	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	CORSAllowOrigins []string
	MaxUploadBytes   int64
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// Load reads .env (ENV_FILE overrides the path) and then the process
// environment. Real environment variables win over the file.
// The credential of the selected provider is required.
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read %s: %w", envFile, err)
	}

	cfg := &Config{
		Port: getEnv("PORT", "8000"),

		Provider: normalizeProvider(getEnv("LLM_PROVIDER", ProviderGemini)),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),

		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
	}

	mb, err := strconv.Atoi(getEnv("MAX_UPLOAD_MB", "10"))
	if err != nil || mb <= 0 || mb > MaxUploadMB {
		return nil, fmt.Errorf("config: MAX_UPLOAD_MB must be an integer in 1..%d, got %q", MaxUploadMB, os.Getenv("MAX_UPLOAD_MB"))
	}
	cfg.MaxUploadBytes = int64(mb) << 20

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("config: missing required env GEMINI_API_KEY")
		}
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("config: missing required env OPENAI_API_KEY")
		}
	default:
		return nil, fmt.Errorf("config: unknown LLM_PROVIDER %q; use 'gemini' or 'openai'", cfg.Provider)
	}
	return cfg, nil
}

func normalizeProvider(p string) string {
	p = strings.ToLower(p)
	if p == "gpt" {
		return ProviderOpenAI
	}
	return p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
