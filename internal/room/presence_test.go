package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimAndRelease(t *testing.T) {
	r := NewRegistry()
	a := &Session{}
	b := &Session{}

	require.NoError(t, r.Claim("alice", a))
	require.ErrorIs(t, r.Claim("alice", b), ErrIdentityConflict)
	assert.Equal(t, 1, r.Count())

	// Names are case-sensitive: "Alice" is a different identity.
	require.NoError(t, r.Claim("Alice", b))
	assert.Equal(t, 2, r.Count())

	// A released name may be claimed again.
	r.Release("alice")
	assert.Equal(t, 1, r.Count())
	require.NoError(t, r.Claim("alice", b))
}

func TestListActiveKeepsJoinOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Claim("carol", &Session{}))
	require.NoError(t, r.Claim("alice", &Session{}))
	require.NoError(t, r.Claim("bob", &Session{}))

	assert.Equal(t, []string{"carol", "alice", "bob"}, r.ListActive())

	r.Release("alice")
	assert.Equal(t, []string{"carol", "bob"}, r.ListActive())
}

func TestReleaseUnknownIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Release("ghost")
	assert.Equal(t, 0, r.Count())
}
