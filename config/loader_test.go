package config

import "testing"

func TestLoaderAppliesEnvOverrides(t *testing.T) {
	t.Setenv("ENTITY_ANALYZER_NATS_URL", "nats://override:4222")
	t.Setenv("ENTITY_ANALYZER_STREAM_NAME", "OVERRIDE_STREAM")
	t.Setenv("ENTITY_ANALYZER_NER_ENGINE", "transformer")
	t.Setenv("ENTITY_ANALYZER_RESCHEDULE_CRON", "0 * * * *")

	l := NewLoader(nil)
	cfg := DefaultConfig()
	l.applyEnvOverrides(cfg)

	if cfg.NATS.URL != "nats://override:4222" {
		t.Errorf("NATS.URL = %q, want override applied", cfg.NATS.URL)
	}
	if cfg.NATS.StreamName != "OVERRIDE_STREAM" {
		t.Errorf("NATS.StreamName = %q, want override applied", cfg.NATS.StreamName)
	}
	if cfg.NER.Engine != "transformer" {
		t.Errorf("NER.Engine = %q, want override applied", cfg.NER.Engine)
	}
	if cfg.NATS.RescheduleCron != "0 * * * *" {
		t.Errorf("NATS.RescheduleCron = %q, want override applied", cfg.NATS.RescheduleCron)
	}
}

func TestLoaderEnvOverridesLeaveUnsetFieldsAlone(t *testing.T) {
	l := NewLoader(nil)
	cfg := DefaultConfig()
	want := cfg.NATS.URL

	l.applyEnvOverrides(cfg)

	if cfg.NATS.URL != want {
		t.Errorf("NATS.URL changed with no environment variable set: got %q, want %q", cfg.NATS.URL, want)
	}
}
