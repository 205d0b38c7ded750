// Package config loads tool defaults from a TOML file. Every field has a
// working default so a missing config file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunables shared by the CLI commands.
type Config struct {
	// CacheDir is where normalized raster copies are kept.
	CacheDir string `toml:"cache_dir"`

	// NumRegions is the horizontal-band partition granularity.
	NumRegions int `toml:"num_regions"`

	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`

	// Threads bounds the workers used for chunk filling and filtering.
	Threads int `toml:"threads"`

	// DType names the element type of extracted batches: uint8, uint16,
	// float32 or float64.
	DType string `toml:"dtype"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CacheDir:     os.TempDir(),
		NumRegions:   8,
		ChunkSize:    256,
		ChunkOverlap: 0,
		Threads:      1,
		DType:        "float64",
	}
}

// Load reads the config at path, filling unset fields from Default. A
// missing file yields the defaults without error; a malformed file is an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
