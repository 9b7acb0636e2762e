// Package config provides configuration loading and management for the
// entity analyzer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the entity analyzer's configuration surface.
type Config struct {
	NER      NERConfig      `yaml:"ner"`
	Resolve  ResolveConfig  `yaml:"resolve"`
	Chunk    ChunkConfig    `yaml:"chunk"`
	Output   OutputConfig   `yaml:"output"`
	Services ServicesConfig `yaml:"services"`
	NATS     NATSConfig     `yaml:"nats"`
}

// ServicesConfig points JudithaLookupStage/JudithaClassifierStage/
// JudithaValidatorStage and GeonamesStage at their external backends.
// Empty URLs mean "use the in-memory Fake" — the default for anyone
// running the analyzer without those services deployed.
type ServicesConfig struct {
	NameDBURL   string        `yaml:"namedb_url"`
	GeonamesURL string        `yaml:"geonames_url"`
	Timeout     time.Duration `yaml:"timeout"`
}

// NERConfig selects and tunes the extraction stage.
type NERConfig struct {
	// Engine names the nermodel.Backend to resolve by name (e.g.
	// "statistical", "sequence-tagger", "transformer", "zero-shot").
	Engine string `yaml:"engine"`
	// DefaultLang is the fallback language code when no language is
	// detected above the confidence floor.
	DefaultLang string `yaml:"default_lang"`
	// MaxLanguages bounds how many language guesses Feed records.
	MaxLanguages int `yaml:"max_languages"`
	// UseConfidence enables aggregator confidence filtering for NER groups.
	UseConfidence bool `yaml:"use_confidence"`
	// TypeModelConfidence is the aggregator confidence threshold.
	TypeModelConfidence float64 `yaml:"ner_type_model_confidence"`
}

// ResolveConfig toggles the resolution pipeline's stages.
type ResolveConfig struct {
	UseRigour               bool    `yaml:"use_rigour"`
	UseJudithaClassifier    bool    `yaml:"use_juditha_classifier"`
	UseJudithaValidator     bool    `yaml:"use_juditha_validator"`
	UseJudithaLookup        bool    `yaml:"use_juditha_lookup"`
	UseGeonames             bool    `yaml:"use_geonames"`
	GeonamesRejectUnmatched bool    `yaml:"reject_unmatched"`
	LookupThreshold         float64 `yaml:"lookup_threshold"`
}

// ChunkConfig bounds chunk sizes.
type ChunkConfig struct {
	MaxChars int `yaml:"max_chars"`
	MinChars int `yaml:"min_chars"`
}

// OutputConfig toggles the annotation/tracing surface.
type OutputConfig struct {
	Annotate      bool `yaml:"annotate"`
	EnableTracing bool `yaml:"enable_tracing"`
}

// NATSConfig configures the processor component's JetStream wiring.
type NATSConfig struct {
	URL          string `yaml:"url"`
	StreamName   string `yaml:"stream_name"`
	ConsumerName string `yaml:"consumer_name"`
	// RescheduleCron is a cron expression that, when set, periodically
	// purges every resolution stage's memoization cache so a name whose
	// NameDB/GeoDB lookup previously missed is retried the next time it
	// recurs, rather than serving the stale cached miss. Empty disables it.
	RescheduleCron string `yaml:"reschedule_cron"`
}

// DefaultConfig returns a Config with every resolution stage enabled,
// confidence filtering on, and the dependency-free statistical NER
// backend selected.
func DefaultConfig() *Config {
	return &Config{
		NER: NERConfig{
			Engine:              "statistical",
			DefaultLang:         "eng",
			MaxLanguages:        3,
			UseConfidence:       true,
			TypeModelConfidence: 0.5,
		},
		Resolve: ResolveConfig{
			UseRigour:            true,
			UseJudithaClassifier: true,
			UseJudithaValidator:  true,
			UseJudithaLookup:     true,
			UseGeonames:          true,
			LookupThreshold:      0.8,
		},
		Chunk: ChunkConfig{
			MaxChars: 4000,
			MinChars: 400,
		},
		Output: OutputConfig{
			Annotate: true,
		},
		Services: ServicesConfig{
			Timeout: 2 * time.Second,
		},
		NATS: NATSConfig{
			StreamName:   "SOURCES",
			ConsumerName: "entity-analyzer",
		},
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.NER.Engine == "" {
		return fmt.Errorf("ner.engine is required")
	}
	if c.NER.TypeModelConfidence < 0 || c.NER.TypeModelConfidence > 1 {
		return fmt.Errorf("ner.ner_type_model_confidence must be between 0 and 1")
	}
	if c.Resolve.LookupThreshold < 0 || c.Resolve.LookupThreshold > 1 {
		return fmt.Errorf("resolve.lookup_threshold must be between 0 and 1")
	}
	if c.Chunk.MinChars > 0 && c.Chunk.MaxChars > 0 && c.Chunk.MinChars >= c.Chunk.MaxChars {
		return fmt.Errorf("chunk.min_chars (%d) must be less than chunk.max_chars (%d)", c.Chunk.MinChars, c.Chunk.MaxChars)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, starting from
// DefaultConfig so unset fields keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges other into c. Strings and numbers from other take
// precedence only when non-zero; the boolean toggles (NER.UseConfidence,
// the Resolve stage switches and GeonamesRejectUnmatched, Output.Annotate,
// Output.EnableTracing) are always copied from other, false included.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.NER.Engine != "" {
		c.NER.Engine = other.NER.Engine
	}
	if other.NER.DefaultLang != "" {
		c.NER.DefaultLang = other.NER.DefaultLang
	}
	if other.NER.MaxLanguages != 0 {
		c.NER.MaxLanguages = other.NER.MaxLanguages
	}
	if other.NER.TypeModelConfidence != 0 {
		c.NER.TypeModelConfidence = other.NER.TypeModelConfidence
	}
	c.NER.UseConfidence = other.NER.UseConfidence

	c.Resolve.UseRigour = other.Resolve.UseRigour
	c.Resolve.UseJudithaClassifier = other.Resolve.UseJudithaClassifier
	c.Resolve.UseJudithaValidator = other.Resolve.UseJudithaValidator
	c.Resolve.UseJudithaLookup = other.Resolve.UseJudithaLookup
	c.Resolve.UseGeonames = other.Resolve.UseGeonames
	c.Resolve.GeonamesRejectUnmatched = other.Resolve.GeonamesRejectUnmatched
	if other.Resolve.LookupThreshold != 0 {
		c.Resolve.LookupThreshold = other.Resolve.LookupThreshold
	}

	if other.Chunk.MaxChars != 0 {
		c.Chunk.MaxChars = other.Chunk.MaxChars
	}
	if other.Chunk.MinChars != 0 {
		c.Chunk.MinChars = other.Chunk.MinChars
	}

	c.Output.Annotate = other.Output.Annotate
	c.Output.EnableTracing = other.Output.EnableTracing

	if other.Services.NameDBURL != "" {
		c.Services.NameDBURL = other.Services.NameDBURL
	}
	if other.Services.GeonamesURL != "" {
		c.Services.GeonamesURL = other.Services.GeonamesURL
	}
	if other.Services.Timeout != 0 {
		c.Services.Timeout = other.Services.Timeout
	}

	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.StreamName != "" {
		c.NATS.StreamName = other.NATS.StreamName
	}
	if other.NATS.ConsumerName != "" {
		c.NATS.ConsumerName = other.NATS.ConsumerName
	}
	if other.NATS.RescheduleCron != "" {
		c.NATS.RescheduleCron = other.NATS.RescheduleCron
	}
}
