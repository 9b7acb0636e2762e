package nermodel

import (
	"fmt"
	"sync"
)

// ErrBackendUnavailable is returned when none of a capability's preferred
// or fallback backend names resolve to a registered Backend.
var ErrBackendUnavailable = fmt.Errorf("nermodel: no backend available")

// Registry maps capabilities to backend preference chains and backend
// names to registered instances, mirroring model.Registry.
type Registry struct {
	mu           sync.RWMutex
	capabilities map[Capability]*CapabilityConfig
	backends     map[string]Backend
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		capabilities: make(map[Capability]*CapabilityConfig),
		backends:     make(map[string]Backend),
	}
}

// NewDefaultRegistry returns a registry with all four backend variants
// registered, and CapabilityNER preferring
// "statistical" — the only variant with no external model dependency.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterBackend(NewStatisticalBackend())
	r.RegisterBackend(NewSequenceTaggerBackend(nil))
	r.RegisterBackend(NewTransformerBackend(nil))
	r.RegisterBackend(NewZeroShotBackend(nil, 0))
	r.SetCapability(CapabilityNER, &CapabilityConfig{
		Description: "Named-entity tagging over a text chunk",
		Preferred:   []string{"statistical"},
		Fallback:    []string{"sequence-tagger"},
	})
	return r
}

// RegisterBackend adds or replaces a backend by its Name().
func (r *Registry) RegisterBackend(b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[b.Name()] = b
}

// SetCapability sets the preference chain for a capability.
func (r *Registry) SetCapability(cap Capability, cfg *CapabilityConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilities[cap] = cfg
}

// Resolve returns the first registered backend among a capability's
// preferred names, then its fallback names. Returns ErrBackendUnavailable
// if none are registered.
func (r *Registry) Resolve(cap Capability) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.capabilities[cap]
	if !ok {
		return nil, fmt.Errorf("nermodel: capability %q not configured", cap)
	}
	for _, name := range cfg.Preferred {
		if b, ok := r.backends[name]; ok {
			return b, nil
		}
	}
	for _, name := range cfg.Fallback {
		if b, ok := r.backends[name]; ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w for capability %q", ErrBackendUnavailable, cap)
}

// ResolveNamed returns a specific registered backend by name, bypassing
// capability preference — used when config pins an exact ner_engine.
func (r *Registry) ResolveNamed(name string) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.backends[name]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: backend %q not registered", ErrBackendUnavailable, name)
}
