// Package nermodel provides capability-based NER backend selection: a
// registry maps a capability to a preference chain of named backends,
// resolved to an in-process nermodel.Backend.
package nermodel

// Capability represents a semantic capability a Backend satisfies. The
// entity-analyzer has exactly one today (tagging spans of text with
// PER/ORG/LOC labels) but the type stays open so a future capability
// (e.g. relation extraction) slots into the same registry.
type Capability string

// CapabilityNER is the only capability resolved today: NER tagging.
const CapabilityNER Capability = "ner"

// CapabilityConfig lists backend names in order of preference for a
// capability, mirroring model.CapabilityConfig.
type CapabilityConfig struct {
	Description string
	Preferred   []string
	Fallback    []string
}
