package workspace

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/models"
)

var errUnknownAddress = errors.New("unknown address")

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// fakeAssistant answers from fixed tables and records what it was asked.
type fakeAssistant struct {
	mu sync.Mutex

	places     map[string]models.GeocodeResult
	entities   []models.ExtractedEntity
	extractErr error
	insight    *models.StrategicInsight
	analyzeErr error
	answer     string
	askErr     error

	geocoded  []string
	askedWith []models.Client
	// block, when set, is waited on inside StrategicAnalysis and Geocode.
	block chan struct{}
}

func newFakeAssistant() *fakeAssistant {
	return &fakeAssistant{places: map[string]models.GeocodeResult{}}
}

func (f *fakeAssistant) place(address string, lat, lng float64) *fakeAssistant {
	f.places[address] = models.GeocodeResult{
		Latitude:         lat,
		Longitude:        lng,
		Confidence:       0.9,
		FormattedAddress: address + ", FL",
	}
	return f
}

func (f *fakeAssistant) Geocode(_ context.Context, address string) (*models.GeocodeResult, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.geocoded = append(f.geocoded, address)
	res, ok := f.places[address]
	if !ok {
		return nil, errUnknownAddress
	}
	return &res, nil
}

func (f *fakeAssistant) ExtractEntities(context.Context, string) ([]models.ExtractedEntity, error) {
	return f.entities, f.extractErr
}

func (f *fakeAssistant) StrategicAnalysis(context.Context, []models.Client) (*models.StrategicInsight, error) {
	if f.block != nil {
		<-f.block
	}
	return f.insight, f.analyzeErr
}

func (f *fakeAssistant) Ask(_ context.Context, _ string, visible []models.Client) (string, error) {
	f.mu.Lock()
	f.askedWith = visible
	f.mu.Unlock()
	return f.answer, f.askErr
}

func newTestWorkspace(a Assistant) *Workspace {
	return New("test", a, logging.NewNopLogger())
}

func sampleInsight() *models.StrategicInsight {
	return &models.StrategicInsight{
		Summary:         "Charter schools cluster west of US-1.",
		Recommendations: []string{"Visit Oakwood"},
		Hotspots:        []string{"Port St. Lucie West"},
		RiskAreas:       []string{"No public schools mapped"},
	}
}

func ids(clients []models.Client) []string {
	out := make([]string, len(clients))
	for i, c := range clients {
		out[i] = c.ID
	}
	return out
}
