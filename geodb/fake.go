package geodb

import (
	"context"
	"strings"
)

// Fake is an in-memory Client for resolve and analyze package tests.
type Fake struct {
	byName map[string][]LocationMatch
}

// NewFake returns an empty Fake. Register fixtures with Set.
func NewFake() *Fake {
	return &Fake{byName: make(map[string][]LocationMatch)}
}

// Set registers the matches GeoDB returns for name.
func (f *Fake) Set(name string, matches []LocationMatch) {
	f.byName[strings.ToLower(name)] = matches
}

func (f *Fake) TagLocations(_ context.Context, name string) ([]LocationMatch, error) {
	return f.byName[strings.ToLower(name)], nil
}
