package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BerylCAtieno/strategy-mapper/internal/agent"
	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/models"
	"github.com/BerylCAtieno/strategy-mapper/internal/workspace"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssistant struct {
	answer  string
	err     error
	query   string
	visible []models.Client
}

func (s *stubAssistant) Geocode(context.Context, string) (*models.GeocodeResult, error) {
	return nil, errors.New("not used")
}

func (s *stubAssistant) ExtractEntities(context.Context, string) ([]models.ExtractedEntity, error) {
	return nil, errors.New("not used")
}

func (s *stubAssistant) StrategicAnalysis(context.Context, []models.Client) (*models.StrategicInsight, error) {
	return nil, errors.New("not used")
}

func (s *stubAssistant) Ask(_ context.Context, query string, visible []models.Client) (string, error) {
	s.query = query
	s.visible = visible
	return s.answer, s.err
}

func setupRouter(a workspace.Assistant) (*gin.Engine, *workspace.Registry) {
	gin.SetMode(gin.TestMode)
	registry := workspace.NewRegistry(a, logging.NewNopLogger(), nil)
	h := NewA2AHandler(registry, "", logging.NewNopLogger())

	r := gin.New()
	r.POST(agent.AssistantRPC, h.HandleAssistant)
	r.GET("/.well-known/agent.json", h.ServeAgentCard)
	return r, registry
}

func post(t *testing.T, r http.Handler, body string) JSONRPCResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, agent.AssistantRPC, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp JSONRPCResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func resultOf(t *testing.T, resp JSONRPCResponse) TaskResult {
	t.Helper()
	require.Nil(t, resp.Error)
	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result TaskResult
	require.NoError(t, json.Unmarshal(raw, &result))
	return result
}

func TestHandleAssistantMessageSend(t *testing.T) {
	a := &stubAssistant{answer: "Three schools are plotted."}
	r, _ := setupRouter(a)

	resp := post(t, r, `{
		"jsonrpc": "2.0",
		"id": "req-1",
		"method": "message/send",
		"params": {"message": {"kind": "message", "role": "user", "parts": [{"kind": "text", "text": "<p>How many schools?</p>"}]}}
	}`)

	assert.Equal(t, "req-1", resp.ID)
	result := resultOf(t, resp)
	assert.Equal(t, StateCompleted, result.Status.State)
	require.NotNil(t, result.Status.Message)
	assert.Equal(t, "Three schools are plotted.", result.Status.Message.Parts[0].Text)
	require.Len(t, result.Artifacts, 1)
	assert.Equal(t, "Three schools are plotted.", result.Artifacts[0].Parts[0].Text)

	assert.Equal(t, "How many schools?", a.query)
	assert.Len(t, a.visible, len(models.DemoClients()))
}

func TestHandleAssistantUsesContextWorkspace(t *testing.T) {
	a := &stubAssistant{answer: "Only one charter school."}
	r, registry := setupRouter(a)

	ws := registry.Get("")
	ws.SetSearch("charter")

	post(t, r, `{
		"jsonrpc": "2.0",
		"id": "req-2",
		"method": "agent/task",
		"params": {"message": {"kind": "message", "role": "user", "contextId": "`+ws.ID()+`", "parts": [{"kind": "text", "text": "Which ones?"}]}}
	}`)

	require.Len(t, a.visible, 1)
	assert.Equal(t, models.IndustryCharter, a.visible[0].Industry)
}

func TestHandleAssistantDataHistory(t *testing.T) {
	a := &stubAssistant{answer: "ok"}
	r, _ := setupRouter(a)

	post(t, r, `{
		"jsonrpc": "2.0",
		"id": "req-3",
		"method": "message/send",
		"params": {"message": {"kind": "message", "role": "user", "parts": [
			{"kind": "data", "data": [
				{"kind": "text", "text": "first question"},
				{"kind": "text", "text": "latest question"},
				{"kind": "text", "text": "  "}
			]}
		]}}
	}`)

	assert.Equal(t, "latest question", a.query)
}

func TestHandleAssistantEmptyQuery(t *testing.T) {
	a := &stubAssistant{answer: "unused"}
	r, _ := setupRouter(a)

	resp := post(t, r, `{"jsonrpc": "2.0", "id": "req-4", "method": "message/send", "params": {"message": {"parts": []}}}`)

	result := resultOf(t, resp)
	assert.Equal(t, StateInputRequired, result.Status.State)
	assert.Empty(t, a.query)
}

func TestHandleAssistantFailureFallsBack(t *testing.T) {
	a := &stubAssistant{err: errors.New("quota exceeded")}
	r, _ := setupRouter(a)

	resp := post(t, r, `{"jsonrpc": "2.0", "id": "req-5", "method": "message/send", "params": {"message": {"parts": [{"kind": "text", "text": "hi"}]}}}`)

	result := resultOf(t, resp)
	assert.Equal(t, StateCompleted, result.Status.State)
	assert.Equal(t, "I encountered an error while processing your request.", result.Status.Message.Parts[0].Text)
}

func TestHandleAssistantDirectMessage(t *testing.T) {
	a := &stubAssistant{answer: "direct"}
	r, _ := setupRouter(a)

	resp := post(t, r, `{"message": {"parts": [{"kind": "text", "text": "hello"}]}}`)

	assert.Equal(t, "direct-message", resp.ID)
	assert.Equal(t, "direct", resultOf(t, resp).Status.Message.Parts[0].Text)
}

func TestHandleAssistantRPCErrors(t *testing.T) {
	r, _ := setupRouter(&stubAssistant{})

	tests := []struct {
		name string
		body string
		code int
	}{
		{"bad version", `{"jsonrpc": "1.0", "id": "x", "method": "message/send"}`, CodeInvalidRequest},
		{"unknown method", `{"jsonrpc": "2.0", "id": "x", "method": "tasks/cancel"}`, CodeMethodNotFound},
		{"bad params", `{"jsonrpc": "2.0", "id": "x", "method": "message/send", "params": "nope"}`, CodeInvalidParams},
		{"not json", `not json at all`, CodeParseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, r, tt.body)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestServeAgentCard(t *testing.T) {
	r, _ := setupRouter(&stubAssistant{})

	req := httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil)
	req.Host = "maps.local:8080"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"))

	var card agent.Card
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.Equal(t, "http://maps.local:8080/a2a/assistant", card.URL)
}
