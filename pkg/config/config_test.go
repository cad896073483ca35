package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/mergenorris/pkg/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() should validate, got %v", err)
	}
	if cfg.Merge.Checksum != models.ChecksumCRC32 {
		t.Errorf("default checksum = %s, want crc32", cfg.Merge.Checksum)
	}
	if cfg.Performance.BufferSize != 65536 {
		t.Errorf("default buffer size = %d, want 65536", cfg.Performance.BufferSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"BadChecksum", func(c *Config) { c.Merge.Checksum = "sha1" }},
		{"TinyBuffer", func(c *Config) { c.Performance.BufferSize = 100 }},
		{"NegativeBandwidth", func(c *Config) { c.Performance.BandwidthLimit = -5 }},
		{"BadOutputFormat", func(c *Config) { c.Output.Format = "xml" }},
		{"BadLogFormat", func(c *Config) { c.Logging.Format = "yaml" }},
		{"BadLogLevel", func(c *Config) { c.Logging.Level = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := Default()
	cfg.Merge.Checksum = models.ChecksumSHA256
	cfg.Output.Summary = true

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.Merge.Checksum != models.ChecksumSHA256 {
		t.Errorf("checksum = %s, want sha256", loaded.Merge.Checksum)
	}
	if !loaded.Output.Summary {
		t.Error("summary flag lost in round trip")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("merge:\n  checksum: sha1\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("LoadFromFile() should reject invalid checksum")
	}
}
