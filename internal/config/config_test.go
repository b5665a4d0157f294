package config

import (
	"flag"
	"os"
	"strings"
	"testing"
)

// resetFlagSet gives every NewConfig call a fresh FlagSet so flags are not
// registered twice across tests.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	for _, k := range []string{
		"DATABASE_URI", "FRONTEND_URL", "HIDE_INTERNAL_ERRORS", "BLOB_BACKEND", "BLOB_MAX_MB",
		"IMAGES_DIR", "S3_REGION", "S3_BUCKET", "BASE_URL", "ENABLE_HTTPS",
	} {
		t.Setenv(k, "")
	}

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BlobMaxSizeMB != 50 {
		t.Fatalf("BlobMaxSizeMB default expected 50, got %d", cfg.BlobMaxSizeMB)
	}
	if cfg.BlobMaxBytes() != 50*1024*1024 {
		t.Fatalf("BlobMaxBytes expected 50MB, got %d", cfg.BlobMaxBytes())
	}
	if cfg.BaseURL != "localhost:5000" {
		t.Fatalf("BaseURL default expected 'localhost:5000', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "http://localhost:5000" {
		t.Fatalf("ServerURL default expected 'http://localhost:5000', got %q", cfg.ServerURL)
	}
	if cfg.BlobBackend != BlobBackendLocal || cfg.ImagesDir != "./images" {
		t.Fatalf("blob defaults: backend=%q dir=%q", cfg.BlobBackend, cfg.ImagesDir)
	}
	if cfg.HideInternalErrors {
		t.Fatalf("HideInternalErrors must default to false")
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("BLOB_MAX_MB", "10")
	t.Setenv("BLOB_BACKEND", " S3 ")
	t.Setenv("S3_BUCKET", "heroes")
	t.Setenv("S3_REGION", "eu-central-1")
	t.Setenv("HIDE_INTERNAL_ERRORS", "true")
	t.Setenv("FRONTEND_URL", "http://localhost:3000")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.ServerURL != "https://example.com:443" {
		t.Fatalf("ServerURL expected 'https://example.com:443', got %q", cfg.ServerURL)
	}
	if cfg.BlobMaxSizeMB != 10 {
		t.Fatalf("BlobMaxSizeMB expected 10, got %d", cfg.BlobMaxSizeMB)
	}
	if cfg.BlobBackend != BlobBackendS3 || cfg.S3Bucket != "heroes" || cfg.S3Region != "eu-central-1" {
		t.Fatalf("s3 settings not applied: %+v", cfg)
	}
	if !cfg.HideInternalErrors || cfg.FrontendURL != "http://localhost:3000" {
		t.Fatalf("server settings not applied: %+v", cfg)
	}
}

func TestNewConfig_InvalidBaseURLFallback(t *testing.T) {
	// a scheme is not allowed in BASE_URL
	t.Setenv("BASE_URL", "http://bad:8080")
	t.Setenv("ENABLE_HTTPS", "false")
	t.Setenv("BLOB_BACKEND", "ftp")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:5000" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:5000', got %q", cfg.BaseURL)
	}
	if !strings.HasPrefix(cfg.ServerURL, "http://localhost:5000") {
		t.Fatalf("ServerURL must reflect fallback base, got %q", cfg.ServerURL)
	}
	if cfg.BlobBackend != BlobBackendLocal {
		t.Fatalf("unknown backend must fallback to local, got %q", cfg.BlobBackend)
	}
}
