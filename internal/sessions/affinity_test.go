package sessions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAffinity_StartsUnestablished(t *testing.T) {
	affinity := NewAffinity()

	assert.False(t, affinity.Established())
	assert.Empty(t, affinity.Credential())
	assert.NotEmpty(t, affinity.ContextID())
	assert.False(t, affinity.CreatedAt().IsZero())
}

func TestAffinity_EstablishStoresCredentialVerbatim(t *testing.T) {
	affinity := NewAffinity()

	credential := []*http.Cookie{
		{Name: "session", Value: "opaque-token-value"},
	}
	affinity.Establish(credential)

	assert.True(t, affinity.Established())

	stored := affinity.Credential()
	assert.Len(t, stored, 1)
	assert.Equal(t, "session", stored[0].Name)
	assert.Equal(t, "opaque-token-value", stored[0].Value)
}

func TestAffinity_CredentialReturnsCopy(t *testing.T) {
	affinity := NewAffinity()
	affinity.Establish([]*http.Cookie{{Name: "session", Value: "abc"}})

	first := affinity.Credential()
	first[0] = &http.Cookie{Name: "tampered", Value: "x"}

	second := affinity.Credential()
	assert.Equal(t, "session", second[0].Name, "mutating a returned slice must not affect stored state")
}

func TestAffinity_InvalidateClearsState(t *testing.T) {
	affinity := NewAffinity()
	affinity.Establish([]*http.Cookie{{Name: "session", Value: "abc"}})

	affinity.Invalidate()

	assert.False(t, affinity.Established())
	assert.Empty(t, affinity.Credential())
}

func TestAffinity_IsolatedPerContext(t *testing.T) {
	first := NewAffinity()
	second := NewAffinity()

	first.Establish([]*http.Cookie{{Name: "session", Value: "first"}})

	assert.NotEqual(t, first.ContextID(), second.ContextID())
	assert.False(t, second.Established(), "one context's credential must never leak to another")
	assert.Empty(t, second.Credential())
}
