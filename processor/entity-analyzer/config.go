package entityanalyzerproc

import (
	"fmt"

	"github.com/c360studio/entity-analyzer/config"
	"github.com/c360studio/semstreams/component"
)

// Config holds configuration for the entity-analyzer processor component.
type Config struct {
	Ports *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`

	// Analyzer carries the shared NER/resolution/chunk/output/services
	// surface, the same Config the CLI loads from
	// entity-analyzer.yaml.
	Analyzer config.Config `json:"analyzer"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Analyzer.NATS.StreamName == "" {
		return fmt.Errorf("analyzer.nats.stream_name is required")
	}
	if c.Analyzer.NATS.ConsumerName == "" {
		return fmt.Errorf("analyzer.nats.consumer_name is required")
	}
	return c.Analyzer.Validate()
}

// DefaultConfig returns default configuration for the entity-analyzer
// processor component, grounded on repo-ingester's port layout.
func DefaultConfig() Config {
	inputDefs := []component.PortDefinition{
		{
			Name:        "source.in",
			Type:        "jetstream",
			Subject:     "entity.analyze.>",
			StreamName:  "SOURCES",
			Required:    true,
			Description: "Source entities submitted for analysis",
		},
	}

	outputDefs := []component.PortDefinition{
		{
			Name:        "graph.out",
			Type:        "jetstream",
			Subject:     "graph.ingest.entity",
			StreamName:  "GRAPH",
			Required:    true,
			Description: "Mutated source entity plus derived entities",
		},
	}

	analyzerCfg := config.DefaultConfig()

	return Config{
		Ports: &component.PortConfig{
			Inputs:  inputDefs,
			Outputs: outputDefs,
		},
		Analyzer: *analyzerCfg,
	}
}
