package namedb

import (
	"context"
	"strings"

	"github.com/c360studio/entity-analyzer/ontology"
)

// Fixture is one canned NameDB entry keyed by the exact lookup name (case
// insensitive) a test registers.
type Fixture struct {
	EntityID  string
	Caption   string
	Score     float64
	Names     []string
	Schemata  []ontology.Schema
	Countries []string
	Predicted []SchemaPrediction
	Valid     *bool // nil means ValidateName defaults to true
}

// Fake is an in-memory, fixture-backed Client used by resolve and
// analyze package tests, and as the default when no NameDB URL is
// configured.
type Fake struct {
	byName map[string]Fixture
}

// NewFake returns an empty Fake. Register fixtures with Set.
func NewFake() *Fake {
	return &Fake{byName: make(map[string]Fixture)}
}

// Set registers (or replaces) the fixture NameDB returns for name.
func (f *Fake) Set(name string, fx Fixture) {
	f.byName[strings.ToLower(name)] = fx
}

func (f *Fake) Lookup(_ context.Context, name string, threshold float64) (*LookupResult, error) {
	fx, ok := f.byName[strings.ToLower(name)]
	if !ok || fx.Score < threshold {
		return nil, nil
	}
	return &LookupResult{
		EntityID:  fx.EntityID,
		Caption:   fx.Caption,
		Score:     fx.Score,
		Names:     fx.Names,
		Schemata:  fx.Schemata,
		Countries: fx.Countries,
	}, nil
}

func (f *Fake) ValidateName(_ context.Context, name string, _ ontology.Tag) (bool, error) {
	fx, ok := f.byName[strings.ToLower(name)]
	if !ok || fx.Valid == nil {
		return true, nil
	}
	return *fx.Valid, nil
}

func (f *Fake) PredictSchema(_ context.Context, name string) ([]SchemaPrediction, error) {
	fx, ok := f.byName[strings.ToLower(name)]
	if !ok {
		return nil, nil
	}
	return fx.Predicted, nil
}
