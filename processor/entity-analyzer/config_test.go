package entityanalyzerproc

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() should validate, got %v", err)
	}
}

func TestConfigValidateMissingStreamName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analyzer.NATS.StreamName = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing stream name")
	}
}

func TestConfigValidateMissingConsumerName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analyzer.NATS.ConsumerName = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing consumer name")
	}
}

func TestConfigValidateDelegatesToAnalyzer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analyzer.NER.Engine = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error delegated from analyzer config validation")
	}
}
