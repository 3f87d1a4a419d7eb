package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/models"
	"github.com/google/uuid"
)

// ProgressFunc receives human-readable status lines during a bulk import.
type ProgressFunc func(msg string)

// Importer turns free text into geocoded clients. Entries are geocoded one
// at a time in input order.
type Importer struct {
	assistant Assistant
	logger    logging.Logger
	newID     func() string
}

func NewImporter(assistant Assistant, logger logging.Logger) *Importer {
	return &Importer{
		assistant: assistant,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// Run extracts entities from rawText and geocodes each of them. Entries
// that fail to geocode are dropped; an error is returned only when nothing
// was extracted or nothing could be geocoded.
func (im *Importer) Run(ctx context.Context, rawText string, progress ProgressFunc) ([]models.Client, error) {
	if progress == nil {
		progress = func(string) {}
	}
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyInput
	}

	progress("AI is identifying schools and services...")
	entities, err := im.assistant.ExtractEntities(ctx, rawText)
	if err != nil {
		im.logger.Warn("entity extraction failed", logging.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrNothingExtracted, err)
	}
	if len(entities) == 0 {
		return nil, ErrNothingExtracted
	}

	clients := make([]models.Client, 0, len(entities))
	for i, e := range entities {
		progress(fmt.Sprintf("Locating %d/%d: %s...", i+1, len(entities), e.Name))

		res, err := geocode(ctx, im.assistant, e.Address)
		if err != nil {
			im.logger.Warn("dropping entry that failed to geocode",
				logging.String("name", e.Name),
				logging.String("address", e.Address),
				logging.Err(err),
			)
			continue
		}
		clients = append(clients, models.Client{
			ID:        im.newID(),
			Name:      e.Name,
			Address:   res.FormattedAddress,
			Industry:  models.NormalizeIndustry(e.Industry),
			Latitude:  res.Latitude,
			Longitude: res.Longitude,
		})
	}

	if len(clients) == 0 {
		return nil, ErrNoneGeocoded
	}
	im.logger.Info("bulk import geocoded",
		logging.Int("extracted", len(entities)),
		logging.Int("added", len(clients)),
	)
	return clients, nil
}

// geocode wraps the assistant call and enforces that only plottable
// coordinates come back.
func geocode(ctx context.Context, a Assistant, address string) (*models.GeocodeResult, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrLocationNotFound
	}
	res, err := a.Geocode(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLocationNotFound, err)
	}
	if res == nil {
		return nil, ErrLocationNotFound
	}
	if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLocationNotFound, err)
	}
	if res.FormattedAddress == "" {
		res.FormattedAddress = strings.TrimSpace(address)
	}
	return res, nil
}
