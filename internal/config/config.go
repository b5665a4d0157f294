package config

import (
	"flag"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	BlobBackendLocal = "local"
	BlobBackendS3    = "s3"

	defaultBaseURL   = "localhost:5000"
	defaultBlobMaxMB = 50
	defaultImagesDir = "./images"
)

type Config struct {
	// Server-side settings
	DatabaseDSN        string `env:"DATABASE_URI"`
	FrontendURL        string `env:"FRONTEND_URL"`
	HideInternalErrors bool   `env:"HIDE_INTERNAL_ERRORS"`

	// Image storage
	BlobBackend   string `env:"BLOB_BACKEND"`
	BlobMaxSizeMB int    `env:"BLOB_MAX_MB"`
	ImagesDir     string `env:"IMAGES_DIR"`
	S3Region      string `env:"S3_REGION"`
	S3Endpoint    string `env:"S3_ENDPOINT"`
	S3Bucket      string `env:"S3_BUCKET"`
	S3AccessKey   string `env:"S3_ACCESS_KEY"`
	S3SecretKey   string `env:"S3_SECRET_KEY"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

// BlobMaxBytes is the upload size limit in bytes.
func (c *Config) BlobMaxBytes() int64 {
	return int64(c.BlobMaxSizeMB) * 1024 * 1024
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flag defaults come from env, so a flag given on the command line wins
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN: postgres URL or SQLite file")
	flag.StringVar(&cfg.FrontendURL, "frontend-url", cfg.FrontendURL, "origin allowed by CORS")
	flag.BoolVar(&cfg.HideInternalErrors, "hide-internal-errors", cfg.HideInternalErrors, "do not expose raw database messages in 500 responses")
	flag.StringVar(&cfg.BlobBackend, "blob-backend", cfg.BlobBackend, "image storage backend: local or s3")
	flag.IntVar(&cfg.BlobMaxSizeMB, "blob-max-mb", cfg.BlobMaxSizeMB, "max upload size in MB")
	flag.StringVar(&cfg.ImagesDir, "images-dir", cfg.ImagesDir, "directory for locally stored images")
	flag.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "S3 bucket for images")
	flag.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "S3-compatible endpoint URL")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "server address as host:port")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	applyDefaults(cfg)
	return cfg
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func applyDefaults(cfg *Config) {
	// BaseURL must be "address:port" (no scheme, no path), otherwise the default is used
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.BlobMaxSizeMB <= 0 {
		cfg.BlobMaxSizeMB = defaultBlobMaxMB
	}
	if cfg.ImagesDir == "" {
		cfg.ImagesDir = defaultImagesDir
	}
	cfg.BlobBackend = strings.ToLower(strings.TrimSpace(cfg.BlobBackend))
	if cfg.BlobBackend != BlobBackendS3 {
		cfg.BlobBackend = BlobBackendLocal
	}
	if cfg.S3Region == "" {
		cfg.S3Region = "us-east-1"
	}
}
