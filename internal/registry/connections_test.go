package registry

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnections_Register(t *testing.T) {
	t.Run("Register and lookup both directions", func(t *testing.T) {
		// Given: a registered connection
		conns := NewConnections()
		conns.Register("c1", "alice")

		// Then: the name resolves to the connection
		connID, ok := conns.Lookup("alice")
		require.True(t, ok)
		require.Equal(t, "c1", connID)
	})

	t.Run("Re-registration replaces the prior record", func(t *testing.T) {
		// Given: c1 registered as alice
		conns := NewConnections()
		conns.Register("c1", "alice")

		// When: c1 re-registers as bob
		conns.Register("c1", "bob")

		// Then: alice no longer resolves, bob does
		_, ok := conns.Lookup("alice")
		require.False(t, ok)

		connID, ok := conns.Lookup("bob")
		require.True(t, ok)
		require.Equal(t, "c1", connID)

		// Then: there is still a single user record
		require.Len(t, conns.Users(), 1)
	})

	t.Run("Last registration for a name wins", func(t *testing.T) {
		conns := NewConnections()
		conns.Register("c1", "alice")
		conns.Register("c2", "alice")

		connID, ok := conns.Lookup("alice")
		require.True(t, ok)
		assert.Equal(t, "c2", connID)
	})
}

func TestConnections_Unregister(t *testing.T) {
	t.Run("Removes both directions", func(t *testing.T) {
		// Given: a registered connection
		conns := NewConnections()
		conns.Register("c1", "alice")

		// When: it is unregistered
		name, ok := conns.Unregister("c1")

		// Then: the stored name is returned and lookups fail
		require.True(t, ok)
		require.Equal(t, "alice", name)

		_, ok = conns.Lookup("alice")
		require.False(t, ok)
		require.Empty(t, conns.Users())
	})

	t.Run("Unknown connection is a no-op", func(t *testing.T) {
		conns := NewConnections()

		_, ok := conns.Unregister("nope")

		assert.False(t, ok)
	})

	t.Run("Stale reverse mapping is preserved for the new holder", func(t *testing.T) {
		// Given: alice moved from c1 to c2
		conns := NewConnections()
		conns.Register("c1", "alice")
		conns.Register("c2", "alice")

		// When: the old connection goes away
		_, ok := conns.Unregister("c1")
		require.True(t, ok)

		// Then: alice still resolves to the live connection
		connID, ok := conns.Lookup("alice")
		require.True(t, ok)
		require.Equal(t, "c2", connID)
	})
}

func TestConnections_Users(t *testing.T) {
	conns := NewConnections()
	conns.Register("c1", "alice")
	conns.Register("c2", "bob")

	require.Equal(t, []entity.User{
		{ID: "c1", Name: "alice"},
		{ID: "c2", Name: "bob"},
	}, conns.Users())
}
