package workspace

import (
	"testing"

	"github.com/BerylCAtieno/strategy-mapper/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFilterBlankTermKeepsListAndOrder(t *testing.T) {
	demo := models.DemoClients()
	for _, term := range []string{"", "   ", "\t"} {
		if diff := cmp.Diff(demo, Filter(demo, term)); diff != "" {
			t.Errorf("Filter(%q) mismatch (-want +got):\n%s", term, diff)
		}
	}
}

func TestFilterCharterScenario(t *testing.T) {
	got := Filter(models.DemoClients(), "charter")
	assert.Equal(t, []string{"white-pines-1"}, ids(got))
}

func TestFilterIsCaseInsensitiveOnNameOrIndustry(t *testing.T) {
	demo := models.DemoClients()

	for _, term := range []string{"CHARTER", "Charter", "cHaRtEr"} {
		assert.Equal(t, []string{"white-pines-1"}, ids(Filter(demo, term)), term)
	}

	// "oak" hits a name, "school" hits an industry.
	assert.Equal(t, []string{"oakwood-1"}, ids(Filter(demo, "OAK")))
	assert.Equal(t, []string{"oakwood-1"}, ids(Filter(demo, "school")))

	// Both fields can match across clients; order follows the input.
	assert.Equal(t, []string{"slater-1", "white-pines-1"}, ids(Filter(demo, "s")[:2]))
}

func TestFilterNoMatch(t *testing.T) {
	got := Filter(models.DemoClients(), "roofing")
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFilterUnicodeFolding(t *testing.T) {
	clients := []models.Client{{ID: "a", Name: "ÉCOLE Saint-Lucie", Industry: models.IndustryCatholicSchool}}
	assert.Len(t, Filter(clients, "école"), 1)
}
