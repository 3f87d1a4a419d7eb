package workspace

import (
	"context"
	"testing"

	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImporterReportsProgressInOrder(t *testing.T) {
	fake := newFakeAssistant().
		place("1 A St", 1, 1).
		place("2 B St", 2, 2)
	fake.entities = []models.ExtractedEntity{
		{Name: "Alpha", Address: "1 A St", Industry: "Roofing"},
		{Name: "Beta", Address: "2 B St", Industry: "Daycare"},
	}

	im := NewImporter(fake, logging.NewNopLogger())
	n := 0
	im.newID = func() string {
		n++
		return []string{"id-1", "id-2"}[n-1]
	}

	var lines []string
	got, err := im.Run(context.Background(), "Alpha: 1 A St\nBeta: 2 B St", func(msg string) {
		lines = append(lines, msg)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"AI is identifying schools and services...",
		"Locating 1/2: Alpha...",
		"Locating 2/2: Beta...",
	}, lines)
	assert.Equal(t, []string{"1 A St", "2 B St"}, fake.geocoded)

	require.Len(t, got, 2)
	assert.Equal(t, models.Client{
		ID:        "id-1",
		Name:      "Alpha",
		Address:   "1 A St, FL",
		Industry:  models.IndustryRoofing,
		Latitude:  1,
		Longitude: 1,
	}, got[0])
	// Unknown categories are kept as the extractor guessed them.
	assert.Equal(t, "Daycare", got[1].Industry)
	assert.Equal(t, 0.0, got[1].Revenue)
}

func TestImporterNilProgress(t *testing.T) {
	fake := newFakeAssistant().place("1 A St", 1, 1)
	fake.entities = []models.ExtractedEntity{{Name: "Alpha", Address: "1 A St"}}

	got, err := NewImporter(fake, logging.NewNopLogger()).Run(context.Background(), "Alpha", nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestImporterSkipsBlankAddressWithoutCalling(t *testing.T) {
	fake := newFakeAssistant().place("1 A St", 1, 1)
	fake.entities = []models.ExtractedEntity{{Name: "NoAddr", Address: ""}, {Name: "Alpha", Address: "1 A St"}}

	got, err := NewImporter(fake, logging.NewNopLogger()).Run(context.Background(), "x", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 A St"}, fake.geocoded)
	require.Len(t, got, 1)
	assert.Equal(t, "Alpha", got[0].Name)
}
