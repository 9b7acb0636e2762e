package resolve

import (
	"context"

	"github.com/c360studio/entity-analyzer/mention"
)

// Stage is one step of the resolution pipeline. Process mutates m
// in place (setting NERTag, ResolvedValues, CanonicalValue, or
// rejecting it) and never returns an error: external-service failures
// are non-fatal and are absorbed by the stage itself, which handles the
// failed call as a non-match.
type Stage interface {
	Name() string
	Process(ctx context.Context, m *mention.Mention, rc *mention.Context)
}

// Pipeline runs Stages in order over a mention, short-circuiting once
// the mention is rejected.
type Pipeline struct {
	stages []Stage
}

// NewPipeline builds a Pipeline from stages in the order they run.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Resolve runs every stage over m until the pipeline completes or m is
// rejected.
func (p *Pipeline) Resolve(ctx context.Context, m *mention.Mention, rc *mention.Context) {
	for _, s := range p.stages {
		if m.Rejected {
			return
		}
		s.Process(ctx, m, rc)
	}
}

// StageNames returns the configured stage names in run order, mostly
// useful for diagnostics and tests.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// MemoPurger is implemented by stages that memoize an external lookup.
// Purging forces the next mention for any given key back out to the
// backing client instead of serving a cached (possibly stale or missed)
// result.
type MemoPurger interface {
	PurgeMemo()
}

// PurgeMemos purges every stage in p that memoizes a lookup. Stages with
// no external dependency (RigourStage) simply don't implement MemoPurger
// and are skipped.
func (p *Pipeline) PurgeMemos() {
	for _, s := range p.stages {
		if mp, ok := s.(MemoPurger); ok {
			mp.PurgeMemo()
		}
	}
}
