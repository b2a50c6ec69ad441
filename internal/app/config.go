package app

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"

	"github.com/healthlens/healthlens-backend/internal/platform/envutil"
)

// Config carries every environment option the service recognizes. It is built
// once at startup and passed down explicitly; nothing reads the environment
// after construction.
type Config struct {
	Port   int
	AppEnv string // "development" or "production"; controls stack exposure

	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	// Optional second provider used by claim discovery. Falls back to the
	// Groq credentials when unset.
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// DatabaseURL wins when set; otherwise the db package assembles a DSN
	// from POSTGRES_HOST/PORT/USER/PASSWORD/DB.
	DatabaseURL string

	PromptsFile string
}

func Load() (*Config, error) {
	// Local development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Port:   envutil.Int("PORT", 3001),
		AppEnv: strings.ToLower(envutil.String("APP_ENV", "development")),

		GroqAPIKey:  envutil.String("GROQ_API_KEY", ""),
		GroqModel:   envutil.String("GROQ_MODEL", ""),
		GroqBaseURL: envutil.String("GROQ_BASE_URL", ""),

		OpenAIAPIKey:  envutil.String("OPENAI_API_KEY", ""),
		OpenAIModel:   envutil.String("OPENAI_MODEL", ""),
		OpenAIBaseURL: envutil.String("OPENAI_BASE_URL", ""),

		DatabaseURL: envutil.String("DATABASE_URL", ""),

		PromptsFile: envutil.String("PROMPTS_FILE", ""),
	}

	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}

	return cfg, nil
}

func (c *Config) DevMode() bool {
	return c.AppEnv != "production"
}
