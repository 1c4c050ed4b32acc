package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Whisper.Model != "small" {
		t.Errorf("default model = %q, want small", cfg.Whisper.Model)
	}
	if !cfg.Whisper.SerializeInference {
		t.Error("default serialize_inference = false, want true")
	}
	if len(cfg.Batch.Extensions) != 4 {
		t.Errorf("default extensions = %v", cfg.Batch.Extensions)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadParsesFile(t *testing.T) {
	path := writeConfig(t, `
[paths]
source_dir = "/videos/in"
output_dir = "/videos/out"

[batch]
workers = 3
case_insensitive_extensions = true

[whisper]
model = "medium"
language = "de"
`)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !exists {
		t.Error("exists = false, want true")
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Paths.SourceDir != "/videos/in" || cfg.Paths.OutputDir != "/videos/out" {
		t.Errorf("paths = %+v", cfg.Paths)
	}
	if cfg.Batch.Workers != 3 || !cfg.Batch.CaseInsensitiveExtensions {
		t.Errorf("batch = %+v", cfg.Batch)
	}
	if cfg.Whisper.Model != "medium" || cfg.Whisper.Language != "de" {
		t.Errorf("whisper = %+v", cfg.Whisper)
	}
	// Unset sections keep defaults.
	if cfg.FFmpeg.Binary != "ffmpeg" || cfg.Logging.Format != "console" {
		t.Errorf("defaults not preserved: %+v %+v", cfg.FFmpeg, cfg.Logging)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if exists {
		t.Error("exists = true for missing file")
	}
	if cfg.Whisper.Binary != "whisper" {
		t.Errorf("defaults not applied: %+v", cfg.Whisper)
	}
}

func TestLoadExpandsHome(t *testing.T) {
	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if strings.HasPrefix(cfg.Paths.HistoryDB, "~") {
		t.Errorf("history_db not expanded: %q", cfg.Paths.HistoryDB)
	}
	if !filepath.IsAbs(cfg.Paths.SourceDir) {
		t.Errorf("source_dir not absolute: %q", cfg.Paths.SourceDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative workers", "[batch]\nworkers = -1\n"},
		{"bad extension", "[batch]\nextensions = [\"mp4\"]\n"},
		{"bad language", "[whisper]\nlanguage = \"not a tag!\"\n"},
		{"bad log format", "[logging]\nformat = \"yaml\"\n"},
		{"bad log level", "[logging]\nlevel = \"loud\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, _, _, err := Load(path); err == nil {
				t.Errorf("Load() accepted %s", tt.name)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample() error = %v", err)
	}
	if _, _, exists, err := Load(path); err != nil || !exists {
		t.Fatalf("Load(sample) error = %v, exists = %v", err, exists)
	}
}
