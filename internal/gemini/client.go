// Package gemini talks to the Gemini API for geocoding, entity extraction,
// strategic analysis and free-text questions about the mapped clients.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/strategy-mapper/internal/config"
	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/metrics"
	"github.com/BerylCAtieno/strategy-mapper/internal/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const jsonMIMEType = "application/json"

// ErrNoContent is returned when a response carries no text parts.
var ErrNoContent = errors.New("no content generated")

type GeminiClient struct {
	client *genai.Client

	geocoder  *genai.GenerativeModel
	extractor *genai.GenerativeModel
	analyst   *genai.GenerativeModel
	assistant *genai.GenerativeModel

	logger  logging.Logger
	metrics *metrics.Metrics
}

func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, logger logging.Logger, m *metrics.Metrics) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	geocoder := client.GenerativeModel(cfg.FastModel)
	geocoder.ResponseMIMEType = jsonMIMEType
	geocoder.ResponseSchema = geocodeSchema
	geocoder.SetTemperature(0)

	extractor := client.GenerativeModel(cfg.FastModel)
	extractor.ResponseMIMEType = jsonMIMEType
	extractor.ResponseSchema = entityListSchema
	extractor.SetTemperature(0)

	analyst := client.GenerativeModel(cfg.ProModel)
	analyst.ResponseMIMEType = jsonMIMEType
	analyst.ResponseSchema = insightSchema

	assistant := client.GenerativeModel(cfg.FastModel)
	assistant.SetTemperature(cfg.Temperature)
	assistant.SetTopP(cfg.TopP)
	assistant.SetMaxOutputTokens(cfg.MaxOutputTokens)

	return &GeminiClient{
		client:    client,
		geocoder:  geocoder,
		extractor: extractor,
		analyst:   analyst,
		assistant: assistant,
		logger:    logger.Named("gemini"),
		metrics:   m,
	}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Geocode resolves one address. Results with unusable coordinates are
// reported as errors.
func (g *GeminiClient) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	text, err := g.generate(ctx, "geocode", g.geocoder, buildGeocodePrompt(address))
	if err != nil {
		return nil, err
	}
	res, err := decodeGeocode(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geocode for %q: %w", address, err)
	}
	return res, nil
}

// ExtractEntities pulls (name, address, industry) rows out of free text.
func (g *GeminiClient) ExtractEntities(ctx context.Context, rawText string) ([]models.ExtractedEntity, error) {
	text, err := g.generate(ctx, "extract", g.extractor, buildExtractionPrompt(rawText))
	if err != nil {
		return nil, err
	}
	entities, err := decodeEntities(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse entity list: %w", err)
	}
	return entities, nil
}

func (g *GeminiClient) StrategicAnalysis(ctx context.Context, clients []models.Client) (*models.StrategicInsight, error) {
	prompt, err := buildAnalysisPrompt(clients)
	if err != nil {
		return nil, err
	}
	text, err := g.generate(ctx, "analysis", g.analyst, prompt)
	if err != nil {
		return nil, err
	}
	insight, err := decodeInsight(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return insight, nil
}

// Ask answers a free-text question using the visible clients as context.
// A reply with no text is a blank answer rather than an error.
func (g *GeminiClient) Ask(ctx context.Context, query string, visible []models.Client) (string, error) {
	return blankOnNoContent(g.generate(ctx, "assistant", g.assistant, buildAssistantPrompt(query, visible)))
}

func blankOnNoContent(text string, err error) (string, error) {
	if errors.Is(err, ErrNoContent) {
		return "", nil
	}
	return text, err
}

func (g *GeminiClient) generate(ctx context.Context, op string, model *genai.GenerativeModel, prompt string) (string, error) {
	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		err = fmt.Errorf("failed to generate content: %w", err)
	} else {
		var text string
		text, err = responseText(resp)
		if err == nil {
			g.metrics.ObserveAICall(op, nil, time.Since(start))
			g.logger.Debug("gemini call finished", logging.String("operation", op), logging.Duration("took", time.Since(start)))
			return text, nil
		}
	}
	g.metrics.ObserveAICall(op, err, time.Since(start))
	g.logger.Warn("gemini call failed", logging.String("operation", op), logging.Err(err))
	return "", err
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoContent
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", ErrNoContent
	}
	return b.String(), nil
}
