package workspace

import "fmt"

// PanelMode is the side panel form currently open. Modes are exclusive.
type PanelMode string

const (
	PanelNone   PanelMode = "none"
	PanelSingle PanelMode = "single"
	PanelBulk   PanelMode = "bulk"
	PanelEdit   PanelMode = "edit"
)

func ParsePanelMode(s string) (PanelMode, error) {
	switch m := PanelMode(s); m {
	case PanelNone, PanelSingle, PanelBulk, PanelEdit:
		return m, nil
	}
	return PanelNone, fmt.Errorf("unknown panel mode %q", s)
}

// TogglePanel opens mode, or closes the panel when mode is already open.
// Edit mode needs a client and is entered through BeginEdit.
func (w *Workspace) TogglePanel(mode PanelMode) PanelMode {
	w.mu.Lock()
	defer w.mu.Unlock()

	if mode == PanelEdit {
		return w.panel
	}
	if w.panel == mode {
		w.setPanelLocked(PanelNone)
	} else {
		w.setPanelLocked(mode)
	}
	return w.panel
}

// BeginEdit opens the edit form for id. Calling it again for the client
// already being edited closes the form.
func (w *Workspace) BeginEdit(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.indexLocked(id) < 0 {
		return ErrClientNotFound
	}
	if w.panel == PanelEdit && w.editingID == id {
		w.setPanelLocked(PanelNone)
		return nil
	}
	w.setPanelLocked(PanelEdit)
	w.editingID = id
	return nil
}

func (w *Workspace) ClosePanel() {
	w.mu.Lock()
	w.setPanelLocked(PanelNone)
	w.mu.Unlock()
}

func (w *Workspace) Panel() PanelMode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.panel
}

func (w *Workspace) setPanelLocked(mode PanelMode) {
	w.panel = mode
	if mode != PanelEdit {
		w.editingID = ""
	}
}
