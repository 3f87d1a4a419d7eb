package web

import (
	"net/http"
	"time"

	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/workspace"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionWorkspaceKey = "workspace_id"
	contextWorkspaceKey = "workspace"
)

// RequestLoggingMiddleware logs every request once it has been served.
func RequestLoggingMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("latency", time.Since(start)),
			logging.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// workspaceMiddleware resolves the session's workspace and stores it on the
// gin context. Reads without a session see an unregistered demo workspace;
// the first write binds a new one to the session cookie.
func (s *Server) workspaceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, _ := session.Get(sessionWorkspaceKey).(string)

		ws, ok := s.registry.Lookup(id)
		switch {
		case ok:
		case readOnly(c.Request.Method):
			ws = s.registry.Ephemeral()
		default:
			ws = s.registry.Pending()
			session.Set(sessionWorkspaceKey, ws.ID())
			if err := session.Save(); err != nil {
				s.logger.Error("failed to save session", logging.Err(err))
			} else {
				ws = s.registry.Adopt(ws)
			}
		}

		c.Set(contextWorkspaceKey, ws)
		c.Next()
	}
}

func readOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func currentWorkspace(c *gin.Context) *workspace.Workspace {
	return c.MustGet(contextWorkspaceKey).(*workspace.Workspace)
}
