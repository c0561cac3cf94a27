package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageDir == "" {
		t.Fatal("expected a default storage dir")
	}
	if cfg.DisplayLimit != defaultDisplayLimit {
		t.Fatalf("expected default display limit, got %d", cfg.DisplayLimit)
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := &Config{StorageDir: filepath.Join(dir, "indexes"), DisplayLimit: 5}
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.StorageDir != cfg.StorageDir {
		t.Fatalf("expected storage dir %s, got %s", cfg.StorageDir, loaded.StorageDir)
	}
	if loaded.DisplayLimit != 5 {
		t.Fatalf("expected display limit 5, got %d", loaded.DisplayLimit)
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := &Config{StorageDir: filepath.Join(dir, "indexes")}
	if err := cfg.SaveTemplateConfig(path); err != nil {
		t.Fatalf("save template: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected template content")
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("template must load back: %v", err)
	}
	if loaded.StorageDir != cfg.StorageDir {
		t.Fatalf("expected storage dir substituted into template, got %s", loaded.StorageDir)
	}
}
