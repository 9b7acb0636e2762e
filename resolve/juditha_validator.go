package resolve

import (
	"context"

	"github.com/c360studio/entity-analyzer/mention"
	"github.com/c360studio/entity-analyzer/namedb"
	"github.com/c360studio/entity-analyzer/ontology"
)

// JudithaValidatorStage validates PER mentions against NameDB; it is a
// no-op for every other tag.
type JudithaValidatorStage struct {
	client namedb.Client
	memo   *Memo[bool]
}

// NewJudithaValidatorStage builds a stage backed by client.
func NewJudithaValidatorStage(client namedb.Client) *JudithaValidatorStage {
	return &JudithaValidatorStage{client: client, memo: NewMemo[bool](0)}
}

func (s *JudithaValidatorStage) Name() string { return "JudithaValidatorStage" }

// PurgeMemo evicts cached validation results, forcing the next mention for
// any given name back out to NameDB.
func (s *JudithaValidatorStage) PurgeMemo() { s.memo.Purge() }

func (s *JudithaValidatorStage) Process(ctx context.Context, m *mention.Mention, _ *mention.Context) {
	if m.NERTag != ontology.TagPerson {
		return
	}

	name := m.FirstValue()
	if valid, ok := s.memo.Get(name); ok {
		if !valid {
			m.Reject("name validation failed", s.Name())
		}
		return
	}

	valid, err := s.client.ValidateName(ctx, name, ontology.TagPerson)
	if err != nil {
		// ExternalServiceError: non-fatal, leaves the mention as-is.
		return
	}
	s.memo.Put(name, valid)
	if !valid {
		m.Reject("name validation failed", s.Name())
	}
}
