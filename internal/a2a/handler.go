package a2a

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/strategy-mapper/internal/agent"
	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/workspace"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type A2AHandler struct {
	registry  *workspace.Registry
	publicURL string
	logger    logging.Logger
}

// NewA2AHandler serves assistant queries over A2A. publicURL may be empty,
// in which case the agent card points at the request's host.
func NewA2AHandler(registry *workspace.Registry, publicURL string, logger logging.Logger) *A2AHandler {
	return &A2AHandler{
		registry:  registry,
		publicURL: publicURL,
		logger:    logger.Named("a2a"),
	}
}

// HandleAssistant processes A2A messages
func (h *A2AHandler) HandleAssistant(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("failed to read request body", logging.Err(err))
		h.sendErrorResponse(c, "", "Failed to read request body", CodeParseError)
		return
	}

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil || rpcReq.Method == "" {
		h.logger.Debug("request is not JSON-RPC, trying direct message", logging.Err(err))
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("invalid JSON-RPC version", logging.String("jsonrpc", rpcReq.JSONRPC))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq)
	default:
		h.logger.Warn("unknown method", logging.String("method", rpcReq.Method))
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// handleDirectMessage handles a message posted without the JSON-RPC wrapper
func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil {
		h.logger.Warn("failed to parse direct message", logging.Err(err))
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}
	h.respond(c, "direct-message", msgParams.Message)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if err := json.Unmarshal(rpcReq.Params, &msgParams); err != nil {
		h.logger.Warn("failed to unmarshal params", logging.Err(err))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}
	h.respond(c, rpcReq.ID, msgParams.Message)
}

func (h *A2AHandler) respond(c *gin.Context, id string, msg A2AMessage) {
	query := extractQuery(msg)
	if query == "" {
		result := h.createInputRequiredResult(id, msg.ContextID,
			"Please ask a question about the schools and services on the map.")
		h.sendSuccessResponse(c, id, result)
		return
	}

	ws, ok := h.registry.Lookup(msg.ContextID)
	if !ok {
		ws = h.registry.Ephemeral()
	}

	h.logger.Info("answering assistant query",
		logging.String("workspace_id", ws.ID()),
		logging.Int("query_len", len(query)),
	)
	answer := ws.Query(c.Request.Context(), query)
	h.sendSuccessResponse(c, id, h.createSuccessTaskResult(id, msg.ContextID, answer))
}

// ServeAgentCard serves the agent card using Gin
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	base := h.publicURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}

	data, err := agent.LoadAgentCard(base)
	if err != nil {
		h.logger.Error("error loading agent card", logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// extractQuery joins the text parts of msg. Data parts carrying a history
// array contribute their most recent non-empty text entry.
func extractQuery(msg A2AMessage) string {
	var texts []string

	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if t := cleanText(part.Text); t != "" {
				texts = append(texts, t)
			}
		case "data":
			var history []MessagePart
			if err := json.Unmarshal(part.Data, &history); err != nil {
				continue
			}
			for i := len(history) - 1; i >= 0; i-- {
				if history[i].Kind != "text" {
					continue
				}
				if t := cleanText(history[i].Text); t != "" {
					texts = append(texts, t)
					break
				}
			}
		}
	}

	return strings.TrimSpace(strings.Join(texts, " "))
}

func cleanText(text string) string {
	text = strings.ReplaceAll(text, "<p>", "")
	text = strings.ReplaceAll(text, "</p>", "")
	return strings.TrimSpace(text)
}

func (h *A2AHandler) createSuccessTaskResult(taskID, contextID, answer string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(answer)},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       "Assistant Answer",
				Parts:      []MessagePart{TextPart(answer)},
			},
		},
	}
}

func (h *A2AHandler) createInputRequiredResult(taskID, contextID, prompt string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateInputRequired,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:  "message",
				Role:  RoleAgent,
				Parts: []MessagePart{TextPart(prompt)},
			},
		},
	}
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id string, result TaskResult) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *A2AHandler) sendErrorResponse(c *gin.Context, id string, message string, code int) {
	h.logger.Debug("sending rpc error", logging.Int("code", code), logging.String("message", message))
	// JSON-RPC errors are sent with 200 OK
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	})
}
