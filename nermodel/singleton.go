package nermodel

import "sync"

var (
	globalRegistry *Registry
	globalOnce     sync.Once
)

// Global returns the process-wide registry, building the default one on
// first call. A single sync.Once guard means model backends are
// constructed at most once per process.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewDefaultRegistry()
	})
	return globalRegistry
}

// InitGlobal installs a custom registry, but only if Global() hasn't run
// yet. Call this during startup before any extractor resolves a backend.
func InitGlobal(r *Registry) {
	globalOnce.Do(func() {
		globalRegistry = r
	})
}

// ResetGlobal clears the singleton. Test-only; not safe for concurrent use.
func ResetGlobal() {
	globalOnce = sync.Once{}
	globalRegistry = nil
}
