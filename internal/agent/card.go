// Package agent describes the assistant as an A2A agent card.
package agent

import (
	"encoding/json"
	"strings"
)

const (
	Name         = "Strategy Map Assistant"
	Version      = "1.0.0"
	AssistantRPC = "/a2a/assistant"
)

type Card struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	URL                string       `json:"url"`
	Version            string       `json:"version"`
	Capabilities       Capabilities `json:"capabilities"`
	DefaultInputModes  []string     `json:"defaultInputModes"`
	DefaultOutputModes []string     `json:"defaultOutputModes"`
	Skills             []Skill      `json:"skills"`
}

type Capabilities struct {
	Streaming         bool `json:"streaming"`
	PushNotifications bool `json:"pushNotifications"`
}

type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
}

// NewCard builds the card advertised at /.well-known/agent.json. baseURL is
// the public origin of the server, without a trailing slash.
func NewCard(baseURL string) Card {
	return Card{
		Name:        Name,
		Description: "Answers questions about the schools and service businesses plotted on a strategy map.",
		URL:         strings.TrimRight(baseURL, "/") + AssistantRPC,
		Version:     Version,
		Capabilities: Capabilities{
			Streaming:         false,
			PushNotifications: false,
		},
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain"},
		Skills: []Skill{{
			ID:          "map-assistant",
			Name:        "Map assistant",
			Description: "Answers a question using the entries currently visible on the map as context.",
			Tags:        []string{"schools", "strategy", "geography"},
			Examples: []string{
				"Which charter schools are on the map?",
				"Where are we missing Catholic school coverage?",
			},
		}},
	}
}

// LoadAgentCard renders the card for baseURL as JSON.
func LoadAgentCard(baseURL string) ([]byte, error) {
	return json.MarshalIndent(NewCard(baseURL), "", "  ")
}
