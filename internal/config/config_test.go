package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
cache_dir = "/var/cache/rasterchunk"
num_regions = 16
chunk_size = 128
threads = 4
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CacheDir != "/var/cache/rasterchunk" || cfg.NumRegions != 16 || cfg.ChunkSize != 128 || cfg.Threads != 4 {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	// Unset keys keep their defaults.
	if cfg.DType != Default().DType {
		t.Errorf("dtype: got %q, want default %q", cfg.DType, Default().DType)
	}
	if cfg.ChunkOverlap != Default().ChunkOverlap {
		t.Errorf("chunk_overlap: got %d, want default %d", cfg.ChunkOverlap, Default().ChunkOverlap)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("chunk_size = ["), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}
