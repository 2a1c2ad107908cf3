package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FromRoot(t *testing.T) {
	dir := t.TempDir()
	content := "version: 1\nbinary: /opt/breeze/breeze\ntimeout: 2m\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Root != dir {
		t.Errorf("Root = %q, want %q", res.Root, dir)
	}
	if res.Config.Version != 1 {
		t.Errorf("Version = %d, want 1", res.Config.Version)
	}
	if res.Config.Binary != "/opt/breeze/breeze" {
		t.Errorf("Binary = %q, want /opt/breeze/breeze", res.Config.Binary)
	}
	if res.Config.Timeout() != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", res.Config.Timeout())
	}
}

func TestLoad_FromSubdirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("version: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Load(sub)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Root != root {
		t.Errorf("Root = %q, want %q", res.Root, root)
	}
	if res.Config.Version != 2 {
		t.Errorf("Version = %d, want 2", res.Config.Version)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	dir := t.TempDir()
	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Root != dir {
		t.Errorf("Root = %q, want %q", res.Root, dir)
	}
	if res.Config.Binary != "" {
		t.Errorf("Binary = %q, want empty", res.Config.Binary)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("timeout: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if cfg.Timeout() != 0 {
		t.Errorf("Timeout = %v, want 0 (unbounded)", cfg.Timeout())
	}
	if cfg.MaxOutputBytes() != DefaultMaxOutput {
		t.Errorf("MaxOutputBytes = %d, want %d", cfg.MaxOutputBytes(), DefaultMaxOutput)
	}
	if cfg.TranscriptCacheSize() != DefaultTranscripts {
		t.Errorf("TranscriptCacheSize = %d, want %d", cfg.TranscriptCacheSize(), DefaultTranscripts)
	}
}

func TestTimeout_Invalid(t *testing.T) {
	cfg := &Config{RawTimeout: "soon"}
	if cfg.Timeout() != 0 {
		t.Errorf("Timeout = %v, want 0 for unparseable duration", cfg.Timeout())
	}
}
