package workspace

import (
	"strings"
	"sync"
	"testing"

	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGet(t *testing.T) {
	r := NewRegistry(newFakeAssistant(), logging.NewNopLogger(), nil)

	first := r.Get("")
	require.NotNil(t, first)
	assert.NotEmpty(t, first.ID())
	assert.Len(t, first.Clients(), 3)

	assert.Same(t, first, r.Get(first.ID()))

	other := r.Get("expired-session")
	assert.NotEqual(t, "expired-session", other.ID())
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryWorkspacesAreIndependent(t *testing.T) {
	r := NewRegistry(newFakeAssistant(), logging.NewNopLogger(), nil)
	a, b := r.Get(""), r.Get("")

	a.Clear()
	assert.Empty(t, a.Clients())
	assert.Len(t, b.Clients(), 3)
}

func TestRegistryLookupAndEphemeral(t *testing.T) {
	r := NewRegistry(newFakeAssistant(), logging.NewNopLogger(), nil)

	_, ok := r.Lookup("")
	assert.False(t, ok)

	ws := r.Get("")
	found, ok := r.Lookup(ws.ID())
	assert.True(t, ok)
	assert.Same(t, ws, found)

	eph := r.Ephemeral()
	assert.Len(t, eph.Clients(), 3)
	_, ok = r.Lookup(eph.ID())
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryPendingIsRegisteredOnAdopt(t *testing.T) {
	r := NewRegistry(newFakeAssistant(), logging.NewNopLogger(), nil)

	ws := r.Pending()
	assert.NotEmpty(t, ws.ID())
	_, ok := r.Lookup(ws.ID())
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	assert.Same(t, ws, r.Adopt(ws))
	assert.Same(t, ws, r.Adopt(ws))
	found, ok := r.Lookup(ws.ID())
	assert.True(t, ok)
	assert.Same(t, ws, found)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryGauges(t *testing.T) {
	m := metrics.New()
	r := NewRegistry(newFakeAssistant(), logging.NewNopLogger(), m)

	for i := 0; i < 50; i++ {
		r.Ephemeral()
		r.Pending()
	}
	assert.Equal(t, 0, r.ClientCount())

	a, b := r.Get(""), r.Get("")
	a.Clear()
	assert.True(t, b.Delete("slater-1"))
	assert.Equal(t, 2, r.ClientCount())

	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP strategy_mapper_clients Clients held across all workspaces.
# TYPE strategy_mapper_clients gauge
strategy_mapper_clients 2
# HELP strategy_mapper_workspaces Workspaces bound to a session.
# TYPE strategy_mapper_workspaces gauge
strategy_mapper_workspaces 2
`), "strategy_mapper_workspaces", "strategy_mapper_clients")
	assert.NoError(t, err)

	// A second registry on the same metrics keeps working without gauges.
	other := NewRegistry(newFakeAssistant(), logging.NewNopLogger(), m)
	assert.NotNil(t, other.Get(""))
}

func TestRegistryConcurrentGet(t *testing.T) {
	r := NewRegistry(newFakeAssistant(), logging.NewNopLogger(), nil)
	seed := r.Get("")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Same(t, seed, r.Get(seed.ID()))
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, r.Len())
}
