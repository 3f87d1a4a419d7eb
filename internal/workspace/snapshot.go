package workspace

import "github.com/BerylCAtieno/strategy-mapper/internal/models"

type Busy struct {
	Entry     bool `json:"entry"`
	Analysis  bool `json:"analysis"`
	Assistant bool `json:"assistant"`
}

// Snapshot is everything the page renders, computed from one consistent
// read of the workspace.
type Snapshot struct {
	ID           string                   `json:"id"`
	Total        int                      `json:"total"`
	VisibleCount int                      `json:"visibleCount"`
	Visible      []models.Client          `json:"visible"`
	Search       string                   `json:"search"`
	Panel        PanelMode                `json:"panel"`
	Editing      *models.Client           `json:"editing,omitempty"`
	Insight      *models.StrategicInsight `json:"insight"`
	Answer       string                   `json:"answer,omitempty"`
	Busy         Busy                     `json:"busy"`
	Progress     string                   `json:"progress,omitempty"`
	Industries   []string                 `json:"industries"`
}

func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	visible := Filter(w.clientsLocked(), w.search)
	s := Snapshot{
		ID:           w.id,
		Total:        len(w.clients),
		VisibleCount: len(visible),
		Visible:      visible,
		Search:       w.search,
		Panel:        w.panel,
		Answer:       w.answer,
		Progress:     w.progress,
		Industries:   models.Industries,
		Busy: Busy{
			Entry:     w.busy[TaskEntry],
			Analysis:  w.busy[TaskAnalysis],
			Assistant: w.busy[TaskAssistant],
		},
	}
	if w.showInsight && w.insight != nil {
		insight := *w.insight
		s.Insight = &insight
	}
	if w.panel == PanelEdit {
		if i := w.indexLocked(w.editingID); i >= 0 {
			c := w.clients[i]
			s.Editing = &c
		}
	}
	return s
}
