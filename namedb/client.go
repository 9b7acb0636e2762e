// Package namedb provides a client for the external NameDB
// entity-linking service: schema prediction, name validation, and
// lookup. The production client is an *http.Client with a fixed timeout
// and JSON request/response bodies; NameDB is a knowledge base this
// repository only ever calls, never hosts.
package namedb

import (
	"context"

	"github.com/c360studio/entity-analyzer/ontology"
)

// LookupResult is a NameDB.lookup hit.
type LookupResult struct {
	EntityID  string
	Caption   string
	Score     float64
	Names     []string
	Schemata  []ontology.Schema
	Countries []string
}

// SchemaPrediction is one entry of NameDB.predict_schema's result
// sequence.
type SchemaPrediction struct {
	NERTag ontology.Tag
	Score  float64
}

// Client is the NameDB capability the resolution pipeline depends on.
// Every method is non-fatal on failure from the caller's point of view:
// resolve.Stage implementations treat a returned error as a non-match.
// The error itself is not logged.
type Client interface {
	// Lookup resolves name to a known external entity, or returns
	// (nil, nil) when nothing scores above threshold.
	Lookup(ctx context.Context, name string, threshold float64) (*LookupResult, error)

	// ValidateName reports whether name is an acceptable value for tag
	// (used for PER validation only, per JudithaValidatorStage).
	ValidateName(ctx context.Context, name string, tag ontology.Tag) (bool, error)

	// PredictSchema returns ranked {ner_tag, score} predictions for name.
	PredictSchema(ctx context.Context, name string) ([]SchemaPrediction, error)
}
