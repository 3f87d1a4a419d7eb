// Package web serves the strategy map page and its JSON API over gin.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/BerylCAtieno/strategy-mapper/internal/a2a"
	"github.com/BerylCAtieno/strategy-mapper/internal/agent"
	"github.com/BerylCAtieno/strategy-mapper/internal/config"
	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/mapview"
	"github.com/BerylCAtieno/strategy-mapper/internal/metrics"
	"github.com/BerylCAtieno/strategy-mapper/internal/workspace"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	cfg      config.ServerConfig
	defaults mapview.Defaults
	registry *workspace.Registry
	a2a      *a2a.A2AHandler
	metrics  *metrics.Metrics
	logger   logging.Logger
	now      func() time.Time
}

func NewServer(cfg *config.Config, registry *workspace.Registry, m *metrics.Metrics, logger logging.Logger) *Server {
	return &Server{
		cfg: cfg.Server,
		defaults: mapview.Defaults{
			Center: mapview.LatLng{Lat: cfg.Map.CenterLat, Lng: cfg.Map.CenterLng},
			Zoom:   cfg.Map.Zoom,
		},
		registry: registry,
		a2a:      a2a.NewA2AHandler(registry, cfg.Server.PublicURL, logger),
		metrics:  m,
		logger:   logger.Named("web"),
		now:      time.Now,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() (*gin.Engine, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	store := cookie.NewStore([]byte(s.cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(s.logger))
	r.Use(s.metrics.Middleware())
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	// Endpoints
	r.GET("/.well-known/agent.json", s.a2a.ServeAgentCard)
	r.POST(agent.AssistantRPC, s.a2a.HandleAssistant)

	page := r.Group("/")
	page.Use(sessions.Sessions(s.cfg.SessionName, store), s.workspaceMiddleware())
	{
		page.GET("/", s.index)

		api := page.Group("/api")
		api.GET("/state", s.state)
		api.GET("/markers", s.markers)
		api.PUT("/search", s.setSearch)
		api.POST("/panel/:mode", s.togglePanel)

		api.POST("/clients", s.createClient)
		api.PUT("/clients/:id", s.updateClient)
		api.DELETE("/clients/:id", s.deleteClient)
		api.POST("/clients/bulk", s.bulkImport)
		api.GET("/progress", s.progress)
		api.POST("/clients/clear", s.clearClients)
		api.POST("/clients/restore", s.restoreClients)

		api.POST("/insight", s.analyze)
		api.DELETE("/insight", s.dismissInsight)
		api.POST("/ask", s.ask)
		api.DELETE("/ask", s.dismissAnswer)

		api.GET("/export", s.export)
	}

	return r, nil
}
