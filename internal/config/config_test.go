package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear any existing env vars
	t.Setenv("IMGRESIZE_CODEC", "")
	t.Setenv("IMGRESIZE_CONCURRENCY", "")
	t.Setenv("IMGRESIZE_LOG_DIR", "")
	t.Setenv("IMGRESIZE_LOG_LEVEL", "")
	t.Setenv("IMGRESIZE_PROJECT_FILE", "")

	cfg := Load()

	if cfg.Codec != CodecNative {
		t.Errorf("Codec = %q, want %q", cfg.Codec, CodecNative)
	}
	if cfg.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want %d", cfg.Concurrency, 1)
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
	if cfg.ProjectFile != "package.json" {
		t.Errorf("ProjectFile = %q, want %q", cfg.ProjectFile, "package.json")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("IMGRESIZE_CODEC", "VIPS")
	t.Setenv("IMGRESIZE_CONCURRENCY", "4")
	t.Setenv("IMGRESIZE_LOG_DIR", "/tmp/logs")
	t.Setenv("IMGRESIZE_LOG_LEVEL", "debug")
	t.Setenv("IMGRESIZE_PROJECT_FILE", "imgresize.json")

	cfg := Load()

	if cfg.Codec != CodecVips {
		t.Errorf("Codec = %q, want %q", cfg.Codec, CodecVips)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want %d", cfg.Concurrency, 4)
	}
	if cfg.LogDir != "/tmp/logs" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/tmp/logs")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.ProjectFile != "imgresize.json" {
		t.Errorf("ProjectFile = %q, want %q", cfg.ProjectFile, "imgresize.json")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("IMGRESIZE_CODEC", "imagemagick")
	t.Setenv("IMGRESIZE_CONCURRENCY", "not-a-number")

	cfg := Load()

	if cfg.Codec != CodecNative {
		t.Errorf("Codec = %q, want fallback %q", cfg.Codec, CodecNative)
	}
	if cfg.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want fallback %d", cfg.Concurrency, 1)
	}
}

func TestLoad_NegativeConcurrency(t *testing.T) {
	t.Setenv("IMGRESIZE_CONCURRENCY", "-3")

	if cfg := Load(); cfg.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want %d", cfg.Concurrency, 1)
	}
}
