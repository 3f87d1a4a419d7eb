// Package workspace holds the per-session client list and drives every
// operation that changes it: manual entry, bulk import, edits, deletes,
// strategic analysis and the assistant query.
//
// External calls run without holding the workspace lock. A busy flag per
// call family rejects a second submission while one is in flight, and
// results are committed under the lock once the call returns.
package workspace

import (
	"context"
	"sync"

	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/models"
)

// Assistant is the AI backend. *gemini.GeminiClient satisfies it.
type Assistant interface {
	Geocode(ctx context.Context, address string) (*models.GeocodeResult, error)
	ExtractEntities(ctx context.Context, rawText string) ([]models.ExtractedEntity, error)
	StrategicAnalysis(ctx context.Context, clients []models.Client) (*models.StrategicInsight, error)
	Ask(ctx context.Context, query string, visible []models.Client) (string, error)
}

// Task names a family of external calls sharing one loading flag.
type Task string

const (
	TaskEntry     Task = "entry"
	TaskAnalysis  Task = "analysis"
	TaskAssistant Task = "assistant"
)

type Workspace struct {
	id        string
	assistant Assistant
	importer  *Importer
	logger    logging.Logger

	mu          sync.Mutex
	clients     []models.Client
	version     uint64
	search      string
	insight     *models.StrategicInsight
	showInsight bool
	answer      string
	panel       PanelMode
	editingID   string
	busy        map[Task]bool
	progress    string
}

// New returns a workspace seeded with the demo dataset.
func New(id string, assistant Assistant, logger logging.Logger) *Workspace {
	logger = logger.With(logging.String("workspace_id", id))
	return &Workspace{
		id:        id,
		assistant: assistant,
		importer:  NewImporter(assistant, logger),
		logger:    logger,
		clients:   models.DemoClients(),
		panel:     PanelNone,
		busy:      make(map[Task]bool),
	}
}

func (w *Workspace) ID() string { return w.id }

// Len is the size of the full list.
func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.clients)
}

// Clients returns a copy of the full list.
func (w *Workspace) Clients() []models.Client {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clientsLocked()
}

// Visible returns the filtered view that feeds the list, the map and the
// assistant.
func (w *Workspace) Visible() []models.Client {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Filter(w.clientsLocked(), w.search)
}

func (w *Workspace) Client(id string) (models.Client, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.indexLocked(id)
	if i < 0 {
		return models.Client{}, false
	}
	return w.clients[i], true
}

func (w *Workspace) SetSearch(term string) {
	w.mu.Lock()
	w.search = term
	w.mu.Unlock()
}

func (w *Workspace) Search() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.search
}

// Insight returns the stored analysis, or nil once it has been invalidated.
func (w *Workspace) Insight() *models.StrategicInsight {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.insight
}

// Add prepends one client.
func (w *Workspace) Add(c models.Client) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients = append([]models.Client{c}, w.clients...)
	w.mutatedLocked()
}

// AddMany prepends a batch, keeping the batch order.
func (w *Workspace) AddMany(batch []models.Client) {
	if len(batch) == 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	next := make([]models.Client, 0, len(batch)+len(w.clients))
	next = append(next, batch...)
	w.clients = append(next, w.clients...)
	w.mutatedLocked()
}

// Update replaces the client with the same id in place. It reports false
// when no such client exists.
func (w *Workspace) Update(c models.Client) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.indexLocked(c.ID)
	if i < 0 {
		return false
	}
	w.clients[i] = c
	w.mutatedLocked()
	return true
}

// Delete removes id. Deleting an absent id is a no-op that reports false.
func (w *Workspace) Delete(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.indexLocked(id)
	if i < 0 {
		return false
	}
	w.clients = append(w.clients[:i:i], w.clients[i+1:]...)
	if w.editingID == id {
		w.setPanelLocked(PanelNone)
	}
	w.mutatedLocked()
	return true
}

func (w *Workspace) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients = nil
	if w.panel == PanelEdit {
		w.setPanelLocked(PanelNone)
	}
	w.mutatedLocked()
}

// Restore puts the demo dataset back and clears the search term.
func (w *Workspace) Restore() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients = models.DemoClients()
	w.search = ""
	if w.panel == PanelEdit {
		w.setPanelLocked(PanelNone)
	}
	w.mutatedLocked()
}

func (w *Workspace) DismissInsight() {
	w.mu.Lock()
	w.showInsight = false
	w.mu.Unlock()
}

func (w *Workspace) DismissAnswer() {
	w.mu.Lock()
	w.answer = ""
	w.mu.Unlock()
}

// Progress is the bulk import status line, empty when idle.
func (w *Workspace) Progress() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.progress
}

// mutatedLocked invalidates the insight; it no longer matches the list.
func (w *Workspace) mutatedLocked() {
	w.version++
	w.insight = nil
	w.showInsight = false
}

func (w *Workspace) clientsLocked() []models.Client {
	out := make([]models.Client, len(w.clients))
	copy(out, w.clients)
	return out
}

func (w *Workspace) indexLocked(id string) int {
	for i := range w.clients {
		if w.clients[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) begin(t Task) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy[t] {
		return ErrBusy
	}
	w.busy[t] = true
	return nil
}

func (w *Workspace) end(t Task) {
	w.mu.Lock()
	delete(w.busy, t)
	if t == TaskEntry {
		w.progress = ""
	}
	w.mu.Unlock()
}

func (w *Workspace) setProgress(msg string) {
	w.mu.Lock()
	w.progress = msg
	w.mu.Unlock()
}
