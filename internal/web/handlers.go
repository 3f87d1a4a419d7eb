package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/BerylCAtieno/strategy-mapper/internal/export"
	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/mapview"
	"github.com/BerylCAtieno/strategy-mapper/internal/workspace"
	"github.com/gin-gonic/gin"
)

type searchRequest struct {
	Term string `json:"term" form:"term"`
}

type bulkRequest struct {
	Text string `json:"text" form:"text"`
}

type askRequest struct {
	Query *string `json:"query" form:"query"`
}

// statusFor maps workspace errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, workspace.ErrBusy), errors.Is(err, workspace.ErrConfirmationRequired):
		return http.StatusConflict
	case errors.Is(err, workspace.ErrClientNotFound):
		return http.StatusNotFound
	case errors.Is(err, workspace.ErrInvalidEntry), errors.Is(err, workspace.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, workspace.ErrLocationNotFound),
		errors.Is(err, workspace.ErrNothingExtracted),
		errors.Is(err, workspace.ErrNoneGeocoded):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", logging.String("path", c.FullPath()), logging.Err(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": workspace.UserMessage(err)})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
}

func (s *Server) state(c *gin.Context) {
	c.JSON(http.StatusOK, currentWorkspace(c).Snapshot())
}

func (s *Server) markers(c *gin.Context) {
	view, err := mapview.Build(currentWorkspace(c).Visible(), s.defaults)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) setSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	ws := currentWorkspace(c)
	ws.SetSearch(req.Term)
	c.JSON(http.StatusOK, ws.Snapshot())
}

// togglePanel switches the side panel. Edit mode takes the client id as the
// "id" query parameter.
func (s *Server) togglePanel(c *gin.Context) {
	mode, err := workspace.ParsePanelMode(c.Param("mode"))
	if err != nil {
		badRequest(c, err)
		return
	}

	ws := currentWorkspace(c)
	switch mode {
	case workspace.PanelEdit:
		if err := ws.BeginEdit(c.Query("id")); err != nil {
			s.fail(c, err)
			return
		}
	case workspace.PanelNone:
		ws.ClosePanel()
	default:
		ws.TogglePanel(mode)
	}
	c.JSON(http.StatusOK, ws.Snapshot())
}

func (s *Server) createClient(c *gin.Context) {
	var form workspace.EntryForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	client, err := currentWorkspace(c).SubmitSingle(c.Request.Context(), form)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (s *Server) updateClient(c *gin.Context) {
	var form workspace.EntryForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	client, err := currentWorkspace(c).SubmitEdit(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (s *Server) deleteClient(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := currentWorkspace(c).RequestDelete(c.Param("id"), confirmed); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) bulkImport(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	added, err := currentWorkspace(c).SubmitBulk(c.Request.Context(), req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"added": added, "count": len(added)})
}

func (s *Server) progress(c *gin.Context) {
	snap := currentWorkspace(c).Snapshot()
	c.JSON(http.StatusOK, gin.H{"progress": snap.Progress, "busy": snap.Busy.Entry})
}

func (s *Server) clearClients(c *gin.Context) {
	ws := currentWorkspace(c)
	ws.Clear()
	c.JSON(http.StatusOK, ws.Snapshot())
}

func (s *Server) restoreClients(c *gin.Context) {
	ws := currentWorkspace(c)
	ws.Restore()
	c.JSON(http.StatusOK, ws.Snapshot())
}

// analyze answers 200 with a null insight when the analysis fails.
func (s *Server) analyze(c *gin.Context) {
	insight, err := currentWorkspace(c).Analyze(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": insight})
}

func (s *Server) dismissInsight(c *gin.Context) {
	currentWorkspace(c).DismissInsight()
	c.Status(http.StatusNoContent)
}

// ask answers the current search term. A "query" in the body replaces the
// search term first.
func (s *Server) ask(c *gin.Context) {
	var req askRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	ws := currentWorkspace(c)
	if req.Query != nil {
		ws.SetSearch(*req.Query)
	}
	answer, err := ws.Ask(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (s *Server) dismissAnswer(c *gin.Context) {
	currentWorkspace(c).DismissAnswer()
	c.Status(http.StatusNoContent)
}

func (s *Server) export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws := currentWorkspace(c)
	now := s.now()
	data := export.Data{
		GeneratedAt: now.UTC(),
		Clients:     ws.Clients(),
		Insight:     ws.Insight(),
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, data); err != nil {
		s.fail(c, fmt.Errorf("failed to export %s: %w", format, err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.FileName(now)))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
