package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	payloads []interface{}
	closed   bool
	writeErr error
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.payloads = append(f.payloads, v)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeConn) sent() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]interface{}, len(f.payloads))
	copy(out, f.payloads)
	return out
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewConnectionRegistry()
	conn := &fakeConn{}

	registry.Register(7, conn)

	got, ok := registry.Lookup(7)
	require.True(t, ok)
	assert.Same(t, conn, got.(*fakeConn))
	assert.Equal(t, 1, registry.Len())

	_, ok = registry.Lookup(8)
	assert.False(t, ok)
}

func TestRegistryLastRegisteredWins(t *testing.T) {
	registry := NewConnectionRegistry()
	first := &fakeConn{}
	second := &fakeConn{}

	registry.Register(7, first)
	registry.Register(7, second)

	got, ok := registry.Lookup(7)
	require.True(t, ok)
	assert.Same(t, second, got.(*fakeConn))
	assert.True(t, first.Closed(), "displaced connection should be closed")
	assert.False(t, second.Closed())
	assert.Equal(t, 1, registry.Len())
}

func TestRegistryUnregisterConnOnlyRemovesOwnEntry(t *testing.T) {
	registry := NewConnectionRegistry()
	first := &fakeConn{}
	second := &fakeConn{}

	registry.Register(7, first)
	registry.Register(7, second)

	// the displaced connection's shutdown must not evict its replacement
	registry.UnregisterConn(7, first)
	_, ok := registry.Lookup(7)
	assert.True(t, ok)

	registry.UnregisterConn(7, second)
	_, ok = registry.Lookup(7)
	assert.False(t, ok)
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewConnectionRegistry()
	registry.Register(7, &fakeConn{})

	registry.Unregister(7)
	_, ok := registry.Lookup(7)
	assert.False(t, ok)

	// unregistering an absent user is a no-op
	registry.Unregister(99)
}

func TestRegistrySweepEvictsClosedConnections(t *testing.T) {
	registry := NewConnectionRegistry()
	alive := &fakeConn{}
	dead := &fakeConn{}
	dead.Close()

	registry.Register(1, alive)
	registry.Register(2, dead)

	registry.Sweep()

	_, ok := registry.Lookup(1)
	assert.True(t, ok)
	_, ok = registry.Lookup(2)
	assert.False(t, ok)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistryClearClosesEverything(t *testing.T) {
	registry := NewConnectionRegistry()
	first := &fakeConn{}
	second := &fakeConn{}
	registry.Register(1, first)
	registry.Register(2, second)

	registry.Clear()

	assert.Equal(t, 0, registry.Len())
	assert.True(t, first.Closed())
	assert.True(t, second.Closed())
}

func TestRegistryStopIsIdempotent(t *testing.T) {
	registry := NewConnectionRegistry()
	registry.StartSweeper(SweepInterval)
	registry.Stop()
	registry.Stop()
}
