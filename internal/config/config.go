package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the process-wide configuration loaded from environment variables.
// It is parsed once at startup and read-only afterwards.
type Config struct {
	Port        int    `env:"PORT"         envDefault:"8080"`
	AppURL      string `env:"APP_URL"      envDefault:"http://localhost:5173"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`

	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"video_share"`

	JWTSecret      string        `env:"JWT_SECRET"`
	JWTIssuer      string        `env:"JWT_ISSUER"     envDefault:"video-share-api"`
	TokenExpiresIn time.Duration `env:"TOKEN_EXPIRES_IN" envDefault:"24h"`

	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	Storage StorageConfig
}

// StorageConfig holds the object storage settings.
type StorageConfig struct {
	Region        string `env:"AWS_REGION"       envDefault:"us-east-1"`
	Bucket        string `env:"S3_BUCKET_NAME"`
	Endpoint      string `env:"S3_ENDPOINT"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
	Folder        string `env:"S3_FOLDER"        envDefault:"video-share"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks that the required settings are present.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGODB_URI environment variable")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("missing S3_BUCKET_NAME environment variable")
	}

	return nil
}
