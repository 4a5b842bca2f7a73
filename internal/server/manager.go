package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/fairroute/intake-cli/internal/catalog"
	"github.com/fairroute/intake-cli/internal/intake"
	"github.com/fairroute/intake-cli/pkg/benefits"
)

// Manager owns the live workspaces, one per session id. State lives only in
// memory: a restart forgets every session, matching the one-browser-session
// lifetime of the engine.
type Manager struct {
	mu         sync.Mutex
	cat        *catalog.Catalog
	client     benefits.Client
	workspaces map[string]*intake.Workspace
}

// NewManager creates an empty session manager.
func NewManager(cat *catalog.Catalog, client benefits.Client) *Manager {
	return &Manager{
		cat:        cat,
		client:     client,
		workspaces: map[string]*intake.Workspace{},
	}
}

// Create registers a new workspace and returns its id.
func (m *Manager) Create() (string, *intake.Workspace) {
	id := uuid.NewString()
	w := intake.NewWorkspace(m.cat, m.client)

	m.mu.Lock()
	m.workspaces[id] = w
	m.mu.Unlock()
	return id, w
}

// Get returns the workspace for the given session id.
func (m *Manager) Get(id string) (*intake.Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.workspaces[id]
	return w, ok
}

// Delete removes a workspace.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.workspaces, id)
}

// Len reports how many sessions are live.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}
