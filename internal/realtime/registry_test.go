package realtime

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryRegisterLookup(t *testing.T) {
	reg := NewRegistry()

	replaced := reg.Register("alice", "conn1")
	assert.Equal(t, "", replaced)

	connID, ok := reg.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "conn1", connID)

	_, ok = reg.Lookup("bob")
	assert.False(t, ok)
}

func TestRegistrySecondConnectionReplacesFirst(t *testing.T) {
	reg := NewRegistry()

	reg.Register("alice", "conn1")
	replaced := reg.Register("alice", "conn2")
	assert.Equal(t, "conn1", replaced)

	connID, ok := reg.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "conn2", connID)

	// Unregistering the displaced handle is a no-op
	assert.Equal(t, "", reg.Unregister("conn1"))
	_, ok = reg.Lookup("alice")
	assert.True(t, ok)
}

func TestRegistryUnregister(t *testing.T) {
	reg := NewRegistry()

	reg.Register("alice", "conn1")
	assert.Equal(t, "alice", reg.Unregister("conn1"))

	_, ok := reg.Lookup("alice")
	assert.False(t, ok)

	assert.Equal(t, "", reg.Unregister("conn1"))
}

func TestRegistryOnlineSnapshot(t *testing.T) {
	reg := NewRegistry()

	reg.Register("alice", "conn1")
	reg.Register("bob", "conn2")
	reg.Register("alice", "conn3") // replacement, still one entry

	online := reg.Online()
	sort.Strings(online)
	assert.Equal(t, []string{"alice", "bob"}, online)
}
