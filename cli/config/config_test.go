package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_FullConfig(t *testing.T) {
	yaml := `seed: deadbeef
item_length: 32
bits: 256
evaluator: sha256
workers: 4
ceiling: 1024

store:
  backend: s3
  path: my-bucket/fingerprints
  region: us-east-1
  endpoint: https://example.com
  s3_path_style: true
`
	path := writeTemp(t, yaml)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	assertEqual(t, "seed", cfg.Seed, "deadbeef")
	if cfg.ItemLength != 32 {
		t.Errorf("item_length: got %d, want 32", cfg.ItemLength)
	}
	if cfg.Bits != 256 {
		t.Errorf("bits: got %d, want 256", cfg.Bits)
	}
	assertEqual(t, "evaluator", cfg.Evaluator, "sha256")
	if cfg.Workers != 4 {
		t.Errorf("workers: got %d, want 4", cfg.Workers)
	}
	if cfg.Ceiling != 1024 {
		t.Errorf("ceiling: got %d, want 1024", cfg.Ceiling)
	}

	assertEqual(t, "store.backend", cfg.Store.Backend, "s3")
	assertEqual(t, "store.path", cfg.Store.Path, "my-bucket/fingerprints")
	assertEqual(t, "store.region", cfg.Store.Region, "us-east-1")
	assertEqual(t, "store.endpoint", cfg.Store.Endpoint, "https://example.com")
	if !cfg.Store.S3PathStyle {
		t.Error("expected store.s3_path_style=true")
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	path := writeTemp(t, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Seed != "" {
		t.Errorf("expected empty seed, got %q", cfg.Seed)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/hallmark.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "hallmark config") {
		t.Errorf("error should name the hallmark config, got %q", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTemp(t, "{{invalid yaml")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_SEED", "cafe")

	yaml := `seed: ${TEST_SEED}`
	path := writeTemp(t, yaml)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertEqual(t, "seed", cfg.Seed, "cafe")
}

func TestLoad_WhitespaceOnlyConfig(t *testing.T) {
	path := writeTemp(t, "   \n  \n  \n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed for whitespace-only config: %v", err)
	}
	if cfg.Seed != "" {
		t.Errorf("expected empty seed, got %q", cfg.Seed)
	}
}

func TestLoad_CommentsOnlyConfig(t *testing.T) {
	path := writeTemp(t, "# This is a comment\n# Another comment\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed for comments-only config: %v", err)
	}
	if cfg.Seed != "" {
		t.Errorf("expected empty seed, got %q", cfg.Seed)
	}
}

func TestSeedBytes_Decoding(t *testing.T) {
	cfg := &Config{Seed: "00ff"}
	seed, err := cfg.SeedBytes()
	if err != nil {
		t.Fatalf("SeedBytes failed: %v", err)
	}
	if !bytes.Equal(seed, []byte{0x00, 0xff}) {
		t.Errorf("seed = %x, want 00ff", seed)
	}
}

func TestSeedBytes_EmptyIsValid(t *testing.T) {
	cfg := &Config{}
	seed, err := cfg.SeedBytes()
	if err != nil {
		t.Fatalf("SeedBytes failed: %v", err)
	}
	if len(seed) != 0 {
		t.Errorf("expected empty seed, got %x", seed)
	}
}

func TestSeedBytes_InvalidHex(t *testing.T) {
	cfg := &Config{Seed: "not-hex"}
	if _, err := cfg.SeedBytes(); err == nil {
		t.Fatal("expected error for invalid hex")
	}
}

// writeTemp writes content to a temp file and returns the path.
func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "hallmark.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func assertEqual(t *testing.T, field, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %q, want %q", field, got, want)
	}
}
