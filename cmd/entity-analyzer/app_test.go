package main

import (
	"testing"

	"github.com/c360studio/entity-analyzer/config"
)

func TestNewAppBuildsAnalyzer(t *testing.T) {
	cfg := config.DefaultConfig()

	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	if app.analyzer == nil {
		t.Fatal("expected analyzer to be built")
	}
}

func TestNewAppRejectsUnresolvableEngine(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.NER.Engine = "does-not-exist"

	if _, err := NewApp(cfg); err == nil {
		t.Error("expected error for unresolvable NER engine")
	}
}
