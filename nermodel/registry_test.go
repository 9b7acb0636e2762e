package nermodel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryResolvesStatistical(t *testing.T) {
	r := NewDefaultRegistry()
	b, err := r.Resolve(CapabilityNER)
	require.NoError(t, err)
	assert.Equal(t, "statistical", b.Name())
}

func TestRegistryResolveUnknownCapability(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve(Capability("unknown"))
	assert.Error(t, err)
}

func TestRegistryFallsBackWhenPreferredMissing(t *testing.T) {
	r := NewRegistry()
	r.RegisterBackend(NewSequenceTaggerBackend(nil))
	r.SetCapability(CapabilityNER, &CapabilityConfig{
		Preferred: []string{"transformer"},
		Fallback:  []string{"sequence-tagger"},
	})
	b, err := r.Resolve(CapabilityNER)
	require.NoError(t, err)
	assert.Equal(t, "sequence-tagger", b.Name())
}

func TestRegistryResolveUnavailable(t *testing.T) {
	r := NewRegistry()
	r.SetCapability(CapabilityNER, &CapabilityConfig{Preferred: []string{"ghost"}})
	_, err := r.Resolve(CapabilityNER)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestGlobalSingletonReturnsSameInstance(t *testing.T) {
	ResetGlobal()
	defer ResetGlobal()
	a := Global()
	b := Global()
	assert.Same(t, a, b)
}

func TestStatisticalBackendClassifiesPersonAndLocation(t *testing.T) {
	b := NewStatisticalBackend()
	cands, err := b.Tag(context.Background(), "Jane Doe lives in New York City", nil)
	require.NoError(t, err)

	var gotPerson, gotLocation bool
	for _, c := range cands {
		if c.Value == "Jane Doe" && c.Label == "PER" {
			gotPerson = true
		}
		if c.Value == "New York City" && c.Label == "LOC" {
			gotLocation = true
		}
	}
	assert.True(t, gotPerson)
	assert.True(t, gotLocation)
}

func TestTransformerBackendFailsFastWithoutCaller(t *testing.T) {
	b := NewTransformerBackend(nil)
	_, err := b.Tag(context.Background(), "anything", nil)
	assert.ErrorIs(t, err, ErrModelLoad)
}

func TestZeroShotBackendFiltersBelowThreshold(t *testing.T) {
	b := NewZeroShotBackend(func(_ context.Context, _ string, _ []string) ([]Candidate, error) {
		return []Candidate{
			{Value: "Acme Corp", Label: "organization", Confidence: 0.9},
			{Value: "Maybe", Label: "person", Confidence: 0.2},
		}, nil
	}, 0.5)
	cands, err := b.Tag(context.Background(), "text", nil)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "Acme Corp", cands[0].Value)
}
