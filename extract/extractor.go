// Package extract turns chunked text into ExtractionResult candidates:
// one NER extractor plus the pattern extractor.
package extract

import (
	"context"

	"github.com/c360studio/entity-analyzer/ontology"
)

// Result is one candidate produced by one extractor. OTHER is a
// sentinel tag and must never be returned — extractors drop
// OTHER-labeled candidates themselves.
type Result struct {
	Value       string
	Tag         ontology.Tag
	SourceLabel string // extractor name, used as provenance
	Confidence  float64
	HasConf     bool
	Meta        map[string]string
}

// Context carries what an Extractor needs: the output entity being built
// (read-only from the extractor's point of view), the chunk text, and the
// languages detected for it.
type Context struct {
	Entity *ontology.Entity
	Text   string
	Langs  []string
}

// Extractor is the capability every recognizer satisfies: given a
// Context, produce zero or more ExtractionResults. Implementations
// must be safe to call repeatedly and independently on disjoint chunks.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, ec Context) ([]Result, error)
}
