package emit

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/c360studio/entity-analyzer/mention"
	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/c360studio/entity-analyzer/vocabulary/entityanalyzer"
)

// ErrEmissionInvalid reports that the factory cannot construct an
// entity because a required field is missing.
var ErrEmissionInvalid = errors.New("emit: cannot construct entity")

// hashKey derives a short, deterministic, opaque identifier from key —
// used wherever an entity needs a stable id but no external one exists.
func hashKey(key string) string {
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:])[:16]
}

// NewResolvedEntity builds the Resolved entity for a mention whose
// resolution linked it to a known external schema. m must
// have ResolvedSchema set.
func NewResolvedEntity(m *mention.Mention, rc *mention.Context) (*ontology.Entity, error) {
	if m.ResolvedSchema == "" {
		return nil, fmt.Errorf("%w: resolved entity requires resolved_schema (key=%s)", ErrEmissionInvalid, m.Key)
	}

	id := m.ResolvedEntityID
	if id == "" {
		id = "resolved-" + hashKey(m.Key)
	}

	e := ontology.MakeEntity(id, m.ResolvedSchema)
	for _, n := range CleanNamesForTag(m.NERTag, m.AllNames()) {
		e.Add(entityanalyzer.Name, n)
	}
	e.Set(entityanalyzer.Proof, []any{m.EntityID})

	if m.ResolvedSchema != ontology.SchemaAddress {
		for _, c := range rc.Countries() {
			e.Add(entityanalyzer.Country, c)
		}
	}

	return e, nil
}

// NewMentionEntity builds the Mention entity for a surviving, unlinked
// PER/ORG mention. Returns nil, nil when m.NERTag isn't
// PER or ORG — this is the "LOC mentions don't produce mention entities"
// rule expressed as a no-op rather than an error.
func NewMentionEntity(m *mention.Mention, rc *mention.Context) (*ontology.Entity, error) {
	schema := ontology.SchemaForNERTag(m.NERTag)
	if schema == "" {
		return nil, nil
	}
	if m.EntityID == "" {
		return nil, fmt.Errorf("%w: mention entity requires a source entity id (key=%s)", ErrEmissionInvalid, m.Key)
	}

	predicate := entityanalyzer.PredicateForTag(string(m.NERTag))
	id := "mention-" + hashKey(fmt.Sprintf("%s|%s|%s", m.EntityID, predicate, ontology.NormalizeName(m.Key)))

	e := ontology.MakeEntity(id, ontology.SchemaMention)
	e.Set(entityanalyzer.Resolved, []any{hashKey(m.Key)})
	e.Set(entityanalyzer.Document, []any{m.EntityID})
	for _, n := range CleanNamesForTag(m.NERTag, m.AllNames()) {
		e.Add(entityanalyzer.Name, n)
	}
	e.Set(entityanalyzer.DetectedSchema, []any{string(schema)})
	for _, c := range rc.Countries() {
		e.Add(entityanalyzer.ContextCountry, c)
	}

	return e, nil
}

// NewBankAccountEntity builds the BankAccount entity for one IBAN,
// validating raw through ontology.TypeClean itself.
func NewBankAccountEntity(raw, sourceEntityID string) (*ontology.Entity, error) {
	iban, ok := ontology.TypeClean(ontology.TagIBAN, raw)
	if !ok {
		return nil, fmt.Errorf("%w: bank account requires a valid IBAN, got %q", ErrEmissionInvalid, raw)
	}
	country := ontology.IBANCountry(iban)

	// ontology.Slug lowercases, so "iban CH..." becomes "iban-ch...".
	id := ontology.Slug("iban " + iban)
	e := ontology.MakeEntity(id, ontology.SchemaBankAccount)
	e.Set(entityanalyzer.AccountNumber, []any{iban})
	e.Set(entityanalyzer.IBAN, []any{iban})
	e.Set(entityanalyzer.Country, []any{country})
	e.Set(entityanalyzer.Proof, []any{sourceEntityID})
	return e, nil
}
