package workspace

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/models"
	"github.com/google/uuid"
)

const (
	assistantErrorAnswer = "I encountered an error while processing your request."
	assistantEmptyAnswer = "I'm sorry, I couldn't process that query."
)

// EntryForm is the single-entry and edit form as submitted.
type EntryForm struct {
	Name     string `json:"name" form:"name"`
	Address  string `json:"address" form:"address"`
	Industry string `json:"industry" form:"industry"`
	Revenue  string `json:"revenue" form:"revenue"`
	Notes    string `json:"notes" form:"notes"`
}

func (f EntryForm) normalized() (EntryForm, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Address = strings.TrimSpace(f.Address)
	f.Industry = models.NormalizeIndustry(f.Industry)
	f.Notes = strings.TrimSpace(f.Notes)
	if f.Name == "" || f.Address == "" {
		return f, ErrInvalidEntry
	}
	return f, nil
}

// parseRevenue reads a leading number, falling back to 0. A number too large
// for a float64 is also 0.
func parseRevenue(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && strings.ContainsRune("+-.0123456789eE", rune(s[end])) {
		end++
	}
	for ; end > 0; end-- {
		v, err := strconv.ParseFloat(s[:end], 64)
		if errors.Is(err, strconv.ErrRange) {
			return 0
		}
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	}
	return 0
}

// SubmitSingle geocodes the form address and prepends the new client. On
// failure the workspace is left unchanged.
func (w *Workspace) SubmitSingle(ctx context.Context, form EntryForm) (models.Client, error) {
	form, err := form.normalized()
	if err != nil {
		return models.Client{}, err
	}
	if err := w.begin(TaskEntry); err != nil {
		return models.Client{}, err
	}
	defer w.end(TaskEntry)

	res, err := geocode(ctx, w.assistant, form.Address)
	if err != nil {
		w.logger.Info("single entry not located", logging.String("address", form.Address), logging.Err(err))
		return models.Client{}, err
	}

	industry := form.Industry
	if industry == "" {
		industry = models.DefaultIndustry
	}
	c := models.Client{
		ID:        uuid.NewString(),
		Name:      form.Name,
		Address:   res.FormattedAddress,
		Industry:  industry,
		Revenue:   parseRevenue(form.Revenue),
		Latitude:  res.Latitude,
		Longitude: res.Longitude,
		Notes:     form.Notes,
	}
	w.Add(c)
	w.ClosePanel()
	return c, nil
}

// SubmitEdit applies form to client id. The address is re-geocoded only when
// its text changed; if that fails the other changes still apply and the
// client keeps its previous coordinates.
func (w *Workspace) SubmitEdit(ctx context.Context, id string, form EntryForm) (models.Client, error) {
	form, err := form.normalized()
	if err != nil {
		return models.Client{}, err
	}
	current, ok := w.Client(id)
	if !ok {
		return models.Client{}, ErrClientNotFound
	}
	if err := w.begin(TaskEntry); err != nil {
		return models.Client{}, err
	}
	defer w.end(TaskEntry)

	var located *models.GeocodeResult
	if form.Address != current.Address {
		located, err = geocode(ctx, w.assistant, form.Address)
		if err != nil {
			w.logger.Warn("re-geocode failed, keeping previous coordinates",
				logging.String("client_id", id),
				logging.String("address", form.Address),
				logging.Err(err),
			)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.indexLocked(id)
	if i < 0 {
		return models.Client{}, ErrClientNotFound
	}
	c := w.clients[i]
	c.Name = form.Name
	if form.Industry != "" {
		c.Industry = form.Industry
	}
	c.Revenue = parseRevenue(form.Revenue)
	c.Notes = form.Notes
	c.Address = form.Address
	if located != nil {
		c.Address = located.FormattedAddress
		c.Latitude = located.Latitude
		c.Longitude = located.Longitude
	}
	w.clients[i] = c
	w.mutatedLocked()
	w.setPanelLocked(PanelNone)
	return c, nil
}

// SubmitBulk runs a bulk import and prepends whatever was geocoded. On error
// the list and insight are untouched.
func (w *Workspace) SubmitBulk(ctx context.Context, rawText string) ([]models.Client, error) {
	if err := w.begin(TaskEntry); err != nil {
		return nil, err
	}
	defer w.end(TaskEntry)

	added, err := w.importer.Run(ctx, rawText, w.setProgress)
	if err != nil {
		return nil, err
	}
	w.AddMany(added)
	w.ClosePanel()
	return added, nil
}

// RequestDelete removes id once the user has confirmed. Confirmed deletes of
// ids that are already gone do nothing.
func (w *Workspace) RequestDelete(id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if !w.Delete(id) {
		w.logger.Debug("delete of absent client ignored", logging.String("client_id", id))
	}
	return nil
}

// Analyze requests a strategic insight over the full list. Failures are
// logged and leave no insight; the only error returned is ErrBusy.
func (w *Workspace) Analyze(ctx context.Context) (*models.StrategicInsight, error) {
	w.mu.Lock()
	clients := w.clientsLocked()
	version := w.version
	w.mu.Unlock()

	if len(clients) == 0 {
		return nil, nil
	}
	if err := w.begin(TaskAnalysis); err != nil {
		return nil, err
	}
	defer w.end(TaskAnalysis)

	insight, err := w.assistant.StrategicAnalysis(ctx, clients)
	if err != nil || insight == nil {
		w.logger.Warn("strategic analysis failed", logging.Err(err))
		return nil, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.version != version {
		w.logger.Info("discarding analysis of a list that has since changed")
		return nil, nil
	}
	w.insight = insight
	w.showInsight = true
	return insight, nil
}

// Ask sends the current search term to the assistant with the visible
// clients as context and stores the answer. A blank term is a no-op.
func (w *Workspace) Ask(ctx context.Context) (string, error) {
	w.mu.Lock()
	query := w.search
	w.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		return "", nil
	}
	if err := w.begin(TaskAssistant); err != nil {
		return "", err
	}
	defer w.end(TaskAssistant)

	answer := w.Query(ctx, query)

	w.mu.Lock()
	w.answer = answer
	w.mu.Unlock()
	return answer, nil
}

// Query answers query against the visible clients without touching stored
// state. Failures become a placeholder answer.
func (w *Workspace) Query(ctx context.Context, query string) string {
	answer, err := w.assistant.Ask(ctx, query, w.Visible())
	if err != nil {
		w.logger.Warn("assistant query failed", logging.Err(err))
		return assistantErrorAnswer
	}
	if strings.TrimSpace(answer) == "" {
		return assistantEmptyAnswer
	}
	return answer
}
