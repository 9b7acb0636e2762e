package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "entity-analyzer.yaml")

	cfg := DefaultConfig()
	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("failed to write initial config: %v", err)
	}

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(configPath, nil, func(c *Config) {
		reloaded <- c
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	updated := DefaultConfig()
	updated.NER.Engine = "zero-shot"
	if err := updated.SaveToFile(configPath); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	select {
	case c := <-reloaded:
		if c.NER.Engine != "zero-shot" {
			t.Errorf("expected reloaded ner engine zero-shot, got %s", c.NER.Engine)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}

func TestWatcherKeepsPreviousConfigOnParseError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "entity-analyzer.yaml")

	if err := DefaultConfig().SaveToFile(configPath); err != nil {
		t.Fatalf("failed to write initial config: %v", err)
	}

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(configPath, nil, func(c *Config) {
		reloaded <- c
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(configPath, []byte(": not valid yaml :: ["), 0644); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}

	select {
	case <-reloaded:
		t.Fatal("onReload should not fire for an unparseable config")
	case <-time.After(700 * time.Millisecond):
	}
}
