// Package ontology provides the minimal entity/property model and type
// cleaning rules the analyzer depends on. It stands in for the external
// Ontology schema library: the analyzer never reimplements a full
// ontology, it only needs a typed property bag, a closed tag set, a
// handful of per-tag cleaning rules, and fingerprinting for index
// queries.
package ontology

import (
	"fmt"
	"sort"
	"time"

	"github.com/c360studio/semstreams/message"
)

// Tag is the closed extraction tag set shared by extractors, the
// aggregator, mentions, and the resolution pipeline.
type Tag string

const (
	TagPerson  Tag = "PER"
	TagOrg     Tag = "ORG"
	TagLoc     Tag = "LOC"
	TagEmail   Tag = "EMAIL"
	TagPhone   Tag = "PHONE"
	TagIBAN    Tag = "IBAN"
	TagCountry Tag = "COUNTRY"
	TagOther   Tag = "OTHER"
)

// Valid reports whether t is a member of the closed tag set, including the
// OTHER sentinel (which must never reach the aggregator, see IsAggregable).
func (t Tag) Valid() bool {
	switch t {
	case TagPerson, TagOrg, TagLoc, TagEmail, TagPhone, TagIBAN, TagCountry, TagOther:
		return true
	}
	return false
}

// IsAggregable reports whether t may reach the aggregator. OTHER is a
// sentinel used internally by extractors and must never be aggregated.
func (t Tag) IsAggregable() bool {
	return t.Valid() && t != TagOther
}

// IsNER reports whether t is one of the three NER-produced tags.
func (t Tag) IsNER() bool {
	return t == TagPerson || t == TagOrg || t == TagLoc
}

// Entity is the property bag shared by the source entity (input), the
// parallel output entity the core mutates, and any derived entity the
// factory emits. Properties are multi-valued slots, matching how ontology
// property values are modeled as repeated triples; Add appends to a slot
// and Set replaces it.
type Entity struct {
	ID         string
	Schema     string
	Properties map[string][]any
}

// NewEntity creates an empty entity of the given schema.
func NewEntity(id, schema string) *Entity {
	return &Entity{ID: id, Schema: schema, Properties: make(map[string][]any)}
}

// Get returns the values stored under predicate, or nil.
func (e *Entity) Get(predicate string) []any {
	if e == nil {
		return nil
	}
	return e.Properties[predicate]
}

// Has reports whether predicate has at least one value.
func (e *Entity) Has(predicate string) bool {
	return len(e.Get(predicate)) > 0
}

// Add appends value to predicate, skipping exact duplicates.
func (e *Entity) Add(predicate string, value any) {
	if e.Properties == nil {
		e.Properties = make(map[string][]any)
	}
	for _, existing := range e.Properties[predicate] {
		if fmt.Sprint(existing) == fmt.Sprint(value) {
			return
		}
	}
	e.Properties[predicate] = append(e.Properties[predicate], value)
}

// AddAll appends every value in values to predicate.
func (e *Entity) AddAll(predicate string, values []any) {
	for _, v := range values {
		e.Add(predicate, v)
	}
}

// Set overwrites predicate with values.
func (e *Entity) Set(predicate string, values []any) {
	if e.Properties == nil {
		e.Properties = make(map[string][]any)
	}
	e.Properties[predicate] = values
}

// Clone returns a deep-enough copy suitable for building the parallel
// output entity from an immutable source entity.
func (e *Entity) Clone() *Entity {
	out := NewEntity(e.ID, e.Schema)
	for k, vs := range e.Properties {
		cp := make([]any, len(vs))
		copy(cp, vs)
		out.Properties[k] = cp
	}
	return out
}

// Triples renders the entity's current property set as semstreams triples,
// keeping the Ontology dependency at the publishing boundary rather than
// inside the core resolution pipeline.
func (e *Entity) Triples(source string) []message.Triple {
	now := time.Now()
	predicates := make([]string, 0, len(e.Properties))
	for p := range e.Properties {
		predicates = append(predicates, p)
	}
	sort.Strings(predicates)

	var out []message.Triple
	for _, p := range predicates {
		for _, v := range e.Properties[p] {
			out = append(out, message.Triple{
				Subject:    e.ID,
				Predicate:  p,
				Object:     v,
				Source:     source,
				Timestamp:  now,
				Confidence: 1.0,
			})
		}
	}
	return out
}

// analyzableSchemas lists schemas whose instances carry text worth
// extracting from.
var analyzableSchemas = map[string]bool{
	"PlainText": true,
	"Document":  true,
	"Webpage":   true,
	"Email":     true,
	"Message":   true,
	"Article":   true,
	"Note":      true,
}

// IsAnalyzable reports whether schema is eligible for entity analysis.
func IsAnalyzable(schema string) bool {
	return analyzableSchemas[schema]
}

// RegisterAnalyzableSchema adds schema to the set of analyzable schemas.
// Exposed so the outer configuration layer can extend the set without the
// core package needing to know every ontology extension up front.
func RegisterAnalyzableSchema(schema string) {
	analyzableSchemas[schema] = true
}
