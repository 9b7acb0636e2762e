package resolve

import (
	"context"
	"sort"

	"github.com/c360studio/entity-analyzer/mention"
	"github.com/c360studio/entity-analyzer/namedb"
)

// defaultLookupThreshold is JudithaLookupStage's default match
// threshold.
const defaultLookupThreshold = 0.8

// JudithaLookupStage is the final stage: external entity linking via
// NameDB.lookup. Network/lookup errors are caught and non-fatal — the
// mention simply stays unresolved.
type JudithaLookupStage struct {
	client    namedb.Client
	memo      *Memo[*namedb.LookupResult]
	threshold float64
}

// NewJudithaLookupStage builds a stage backed by client. threshold <= 0
// uses defaultLookupThreshold.
func NewJudithaLookupStage(client namedb.Client, threshold float64) *JudithaLookupStage {
	if threshold <= 0 {
		threshold = defaultLookupThreshold
	}
	return &JudithaLookupStage{client: client, memo: NewMemo[*namedb.LookupResult](0), threshold: threshold}
}

func (s *JudithaLookupStage) Name() string { return "JudithaLookupStage" }

// PurgeMemo evicts cached lookup results, forcing the next mention for any
// given name back out to NameDB. This is how a previously-missed lookup
// gets retried: the mention itself isn't replayed, but the next occurrence
// of that name skips the stale cache entry.
func (s *JudithaLookupStage) PurgeMemo() { s.memo.Purge() }

func (s *JudithaLookupStage) Process(ctx context.Context, m *mention.Mention, rc *mention.Context) {
	name := m.FirstValue()

	hit, ok := s.memo.Get(name)
	if !ok {
		h, err := s.client.Lookup(ctx, name, s.threshold)
		if err != nil {
			return
		}
		hit = h
		s.memo.Put(name, hit)
	}
	if hit == nil {
		return
	}

	m.CanonicalValue = hit.Caption
	m.ResolvedValues = mergeUnique(m.ResolvedValues, hit.Names)
	if len(hit.Schemata) > 0 {
		m.ResolvedSchema = hit.Schemata[0]
	}
	if hit.EntityID != "" {
		m.ResolvedEntityID = hit.EntityID
	}
	for _, c := range hit.Countries {
		rc.AddCountry(c)
	}
}

func mergeUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := append([]string(nil), base...)
	for _, v := range base {
		seen[v] = true
	}
	for _, v := range extra {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
