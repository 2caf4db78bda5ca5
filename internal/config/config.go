package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"30m"`

	// Inference backend selection: "huggingface" talks to the HF text
	// generation endpoint, "openai" talks to any OpenAI-compatible chat API.
	InferenceProvider string `envconfig:"INFERENCE_PROVIDER" default:"huggingface"`

	HFAPIKey string `envconfig:"HF_API_KEY"`
	HFModel  string `envconfig:"HF_MODEL" default:"mistralai/Mistral-7B-Instruct-v0.2"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"llama-3.1-8b-instant"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"supportdesk-assets"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	// Conversations idle longer than this are evicted by the sweeper.
	// Zero disables expiry.
	HistoryTTL time.Duration `envconfig:"HISTORY_TTL" default:"0"`

	// Bootstrap: create initial company and admin user on startup
	InitCompanyName   string `envconfig:"INIT_COMPANY_NAME"`
	InitCompanyEmail  string `envconfig:"INIT_COMPANY_EMAIL"`
	InitAdminEmail    string `envconfig:"INIT_ADMIN_EMAIL"`
	InitAdminPassword string `envconfig:"INIT_ADMIN_PASSWORD"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("SUPPORTDESK", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasInference() bool {
	switch c.InferenceProvider {
	case "openai":
		return c.OpenAIAPIKey != ""
	default:
		return c.HFAPIKey != ""
	}
}

func (c *Config) HasEmbeddings() bool {
	return c.OpenAIAPIKey != ""
}
