package web

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/strategy-mapper/internal/export"
	"github.com/BerylCAtieno/strategy-mapper/internal/mapview"
	"github.com/BerylCAtieno/strategy-mapper/internal/workspace"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var templateFuncs = template.FuncMap{
	"revenue":  formatRevenue,
	"slug":     slug,
	"isActive": func(a, b workspace.PanelMode) bool { return a == b },
}

type pageData struct {
	State   workspace.Snapshot
	View    mapview.View
	Formats []export.Format
}

func (s *Server) index(c *gin.Context) {
	ws := currentWorkspace(c)
	snap := ws.Snapshot()
	view, err := mapview.Build(snap.Visible, s.defaults)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", pageData{
		State:   snap,
		View:    view,
		Formats: export.Formats,
	})
}

var revenuePrinter = message.NewPrinter(language.AmericanEnglish)

// formatRevenue renders whole dollars with thousands separators.
func formatRevenue(v float64) string {
	if v == 0 {
		return ""
	}
	if v < 0 {
		return "-" + revenuePrinter.Sprintf("$%.0f", -v)
	}
	return revenuePrinter.Sprintf("$%.0f", v)
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
