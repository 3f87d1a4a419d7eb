package workspace

import (
	"sync"

	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/metrics"
	"github.com/google/uuid"
)

// Registry maps session workspace ids to their workspaces. A workspace is
// only registered once a session is bound to it, and then lives for as long
// as the process runs.
type Registry struct {
	assistant Assistant
	logger    logging.Logger

	mu         sync.RWMutex
	workspaces map[string]*Workspace
}

func NewRegistry(assistant Assistant, logger logging.Logger, m *metrics.Metrics) *Registry {
	r := &Registry{
		assistant:  assistant,
		logger:     logger.Named("workspace"),
		workspaces: make(map[string]*Workspace),
	}
	if err := m.TrackWorkspaces(r.Len, r.ClientCount); err != nil {
		r.logger.Warn("workspace gauges not registered", logging.Err(err))
	}
	return r
}

// Get returns the workspace for id, registering a demo-seeded one under a
// new id when id is empty or unknown. Callers must persist the returned
// workspace's ID.
func (r *Registry) Get(id string) *Workspace {
	if ws, ok := r.Lookup(id); ok {
		return ws
	}
	return r.Adopt(r.Pending())
}

func (r *Registry) Lookup(id string) (*Workspace, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ws, ok := r.workspaces[id]
	return ws, ok
}

// Pending returns a demo-seeded workspace with a fresh id that is not yet
// registered. Adopt it once the id has been handed to the caller.
func (r *Registry) Pending() *Workspace {
	return New(uuid.NewString(), r.assistant, r.logger)
}

// Adopt registers ws and returns the workspace now held under its id.
func (r *Registry) Adopt(ws *Workspace) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.workspaces[ws.ID()]; ok {
		return existing
	}
	r.workspaces[ws.ID()] = ws
	r.logger.Info("workspace created", logging.String("workspace_id", ws.ID()), logging.Int("sessions", len(r.workspaces)))
	return ws
}

// Ephemeral returns a demo-seeded workspace that is never registered.
func (r *Registry) Ephemeral() *Workspace {
	return New("ephemeral-"+uuid.NewString(), r.assistant, r.logger)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workspaces)
}

// ClientCount sums the list sizes of every registered workspace.
func (r *Registry) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, ws := range r.workspaces {
		n += ws.Len()
	}
	return n
}
