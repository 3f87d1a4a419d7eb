package gemini

import (
	"errors"
	"strings"
	"testing"

	"github.com/BerylCAtieno/strategy-mapper/internal/models"
	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGeocode(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		res, err := decodeGeocode(`{"latitude": 27.28, "longitude": -80.39, "confidence": 0.9, "formattedAddress": " 774 SW Sail Ter, Port St. Lucie, FL "}`)
		require.NoError(t, err)
		assert.InDelta(t, 27.28, res.Latitude, 1e-9)
		assert.InDelta(t, -80.39, res.Longitude, 1e-9)
		assert.Equal(t, "774 SW Sail Ter, Port St. Lucie, FL", res.FormattedAddress)
	})

	t.Run("fenced", func(t *testing.T) {
		res, err := decodeGeocode("```json\n{\"latitude\": 1, \"longitude\": 2, \"confidence\": 1, \"formattedAddress\": \"x\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, 2.0, res.Longitude)
	})

	t.Run("zero coordinates are still coordinates", func(t *testing.T) {
		res, err := decodeGeocode(`{"latitude": 0, "longitude": 0, "confidence": 0.1, "formattedAddress": "Null Island"}`)
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.Latitude)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		_, err := decodeGeocode(`{"confidence": 0, "formattedAddress": "unknown"}`)
		assert.Error(t, err)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := decodeGeocode(`{"latitude": 120, "longitude": 0, "confidence": 1, "formattedAddress": "x"}`)
		assert.ErrorIs(t, err, models.ErrInvalidCoordinates)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := decodeGeocode("I could not find that place.")
		assert.Error(t, err)
	})
}

func TestDecodeEntities(t *testing.T) {
	got, err := decodeEntities(`[{"name":" St. Mary's ","address":"123 Church Rd","industry":"Catholic School"},{"name":"Lincoln High","address":"456 Education Ln","industry":"Public School"}]`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "St. Mary's", got[0].Name)
	assert.Equal(t, "Public School", got[1].Industry)

	empty, err := decodeEntities(`[]`)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDecodeInsightFillsNilLists(t *testing.T) {
	insight, err := decodeInsight(`{"summary":"Dense charter coverage in the west."}`)
	require.NoError(t, err)
	assert.Equal(t, "Dense charter coverage in the west.", insight.Summary)
	assert.NotNil(t, insight.Recommendations)
	assert.NotNil(t, insight.Hotspots)
	assert.NotNil(t, insight.RiskAreas)
}

func TestResponseText(t *testing.T) {
	_, err := responseText(nil)
	assert.ErrorIs(t, err, ErrNoContent)

	_, err = responseText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrNoContent)

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}},
		}},
	}
	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)
}

func TestBlankOnNoContent(t *testing.T) {
	empty := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{}}}},
	}
	text, err := blankOnNoContent(responseText(empty))
	require.NoError(t, err)
	assert.Equal(t, "", text)

	text, err = blankOnNoContent(responseText(nil))
	require.NoError(t, err)
	assert.Equal(t, "", text)

	quota := errors.New("quota exceeded")
	_, err = blankOnNoContent("", quota)
	assert.ErrorIs(t, err, quota)

	text, err = blankOnNoContent("Two charter schools.", nil)
	require.NoError(t, err)
	assert.Equal(t, "Two charter schools.", text)
}

func TestPrompts(t *testing.T) {
	assert.Contains(t, buildGeocodePrompt("774 SW Sail Ter"), `"774 SW Sail Ter"`)

	extraction := buildExtractionPrompt("Lincoln High: 456 Education Ln")
	for _, ind := range extractableIndustries {
		assert.Contains(t, extraction, "'"+ind+"'")
	}
	assert.NotContains(t, extraction, models.IndustryBusinessServices)

	analysis, err := buildAnalysisPrompt(models.DemoClients())
	require.NoError(t, err)
	assert.Contains(t, analysis, `"name":"White Pines Learning","loc":[27.285,-80.35],"cat":"Charter"`)

	assert.Contains(t, buildAssistantPrompt("which schools?", nil), emptyMapContext)
	withCtx := buildAssistantPrompt("which schools?", models.DemoClients()[:2])
	assert.Contains(t, withCtx, "Slater Strategies (Business Services) at 774 SW Sail Ter, Port St. Lucie, FL 34953, White Pines Learning (Charter) at Port St. Lucie, FL")
}

func TestSchemasRequireEveryField(t *testing.T) {
	for name, s := range map[string]*genai.Schema{"geocode": geocodeSchema, "insight": insightSchema, "entity": entityListSchema.Items} {
		require.Len(t, s.Required, len(s.Properties), name)
		for _, key := range s.Required {
			_, ok := s.Properties[key]
			assert.True(t, ok, "%s: %s", name, key)
		}
	}
	assert.Equal(t, genai.TypeArray, entityListSchema.Type)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"x":1}`, stripCodeFence("```json\n{\"x\":1}\n```"))
	assert.Equal(t, `{"x":1}`, stripCodeFence(`  {"x":1} `))
	assert.False(t, strings.HasPrefix(stripCodeFence("```\n[]\n```"), "`"))
}
