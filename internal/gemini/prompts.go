package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/strategy-mapper/internal/models"
)

// extractableIndustries are the categories the extractor may assign.
var extractableIndustries = []string{
	models.IndustryChristianSchool,
	models.IndustryPublicSchool,
	models.IndustryCatholicSchool,
	models.IndustryCharter,
	models.IndustryRoofing,
}

func buildGeocodePrompt(address string) string {
	return fmt.Sprintf(`Geocode this address into latitude and longitude coordinates: %q.
Return JSON with latitude and longitude in decimal degrees, a confidence score between 0 and 1, and the normalized formatted address.`, address)
}

func buildExtractionPrompt(rawText string) string {
	quoted := make([]string, len(extractableIndustries))
	for i, ind := range extractableIndustries {
		quoted[i] = "'" + ind + "'"
	}
	return fmt.Sprintf(`Extract every entity (schools or service businesses) and its full street address from the text below.
Categorize each as exactly one of: %s.

Text: %q`, strings.Join(quoted, ", "), rawText)
}

type analysisRow struct {
	Name string     `json:"name"`
	Loc  [2]float64 `json:"loc"`
	Cat  string     `json:"cat"`
}

func buildAnalysisPrompt(clients []models.Client) (string, error) {
	rows := make([]analysisRow, len(clients))
	for i, c := range clients {
		rows[i] = analysisRow{Name: c.Name, Loc: [2]float64{c.Latitude, c.Longitude}, Cat: c.Industry}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis data: %w", err)
	}

	return fmt.Sprintf(`Analyze this geographic distribution of institutions (Christian, Public, Catholic and Charter schools) and roofing services.
Identify coverage gaps where certain types of schools are missing, and where roofing services are concentrated relative to schools.

Data: %s

Provide strategic community insights: a summary, recommended opportunities, regional clusters (hotspots) and underserved or risky areas.`, data), nil
}

const emptyMapContext = "No schools currently on the map."

func assistantContext(visible []models.Client) string {
	if len(visible) == 0 {
		return emptyMapContext
	}
	parts := make([]string, len(visible))
	for i, c := range visible {
		parts[i] = fmt.Sprintf("%s (%s) at %s", c.Name, c.Industry, c.Address)
	}
	return strings.Join(parts, ", ")
}

func buildAssistantPrompt(query string, visible []models.Client) string {
	return fmt.Sprintf(`You are a helpful education and community assistant.
A user is asking: %q.

Entries currently visible on the map: %s

Give a concise, professional answer. Use the entries above when the question is about specific schools; otherwise answer from general expertise.`, query, assistantContext(visible))
}
