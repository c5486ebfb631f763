package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath = "config.yaml"
	defaultPort       = "8080"
	defaultTokenPath  = "./youtube_token.json"

	// secretPrefix marks env values that live in Google Secret Manager,
	// e.g. sm://projects/my-project/secrets/yt-client-secret
	secretPrefix = "sm://"
)

type Config struct {
	YouTubeClientID     string
	YouTubeClientSecret string
	YouTubeTokenPath    string
	GCSBucket           string
	GCPProject          string

	Server ServerConfig `yaml:"server"`
	Upload UploadConfig `yaml:"upload"`
	GCS    GCSConfig    `yaml:"gcs"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type UploadConfig struct {
	TempDir string `yaml:"temp_dir"`
}

type GCSConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads .env, config.yaml and defaults, in that order of precedence,
// then resolves any sm:// values through Secret Manager.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		YouTubeClientID:     os.Getenv("YOUTUBE_CLIENT_ID"),
		YouTubeClientSecret: os.Getenv("YOUTUBE_CLIENT_SECRET"),
		YouTubeTokenPath:    getEnvOrDefault("YOUTUBE_TOKEN_PATH", defaultTokenPath),
		GCSBucket:           os.Getenv("GCS_BUCKET"),
		GCPProject:          os.Getenv("GOOGLE_CLOUD_PROJECT"),
	}

	loadYAMLConfig(cfg)
	applyDefaults(cfg)

	if err := resolveSecrets(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadYAMLConfig(cfg *Config) {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = getEnvOrDefault("PORT", defaultPort)
	}
	if cfg.Upload.TempDir == "" {
		cfg.Upload.TempDir = os.TempDir()
	}
}

// resolveSecrets swaps sm:// values for the secret payloads they point at.
// The Secret Manager client is only created when at least one value needs
// it, so local setups without GCP credentials still load.
func resolveSecrets(ctx context.Context, cfg *Config) error {
	targets := []*string{&cfg.YouTubeClientID, &cfg.YouTubeClientSecret}

	needed := false
	for _, target := range targets {
		if strings.HasPrefix(*target, secretPrefix) {
			needed = true
		}
	}
	if !needed {
		return nil
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create secret manager client: %w", err)
	}
	defer func() { _ = client.Close() }()

	for _, target := range targets {
		if !strings.HasPrefix(*target, secretPrefix) {
			continue
		}

		name := secretVersionName(*target)
		resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
		if err != nil {
			return fmt.Errorf("access secret %s: %w", name, err)
		}
		*target = string(resp.Payload.Data)
	}

	return nil
}

// secretVersionName turns an sm:// value into a full secret version
// resource name, defaulting to the latest version.
func secretVersionName(value string) string {
	name := strings.TrimPrefix(value, secretPrefix)
	if !strings.Contains(name, "/versions/") {
		name += "/versions/latest"
	}
	return name
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
