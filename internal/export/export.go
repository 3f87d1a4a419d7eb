// Package export writes the current client list, and the insight when one
// is available, in the formats offered by the "export current data" action.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BerylCAtieno/strategy-mapper/internal/models"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatXLSX, FormatMarkdown}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// Data is one export: the list as it stood at GeneratedAt.
type Data struct {
	GeneratedAt time.Time                `json:"generatedAt" yaml:"generatedAt"`
	Clients     []models.Client          `json:"clients" yaml:"clients"`
	Insight     *models.StrategicInsight `json:"insight,omitempty" yaml:"insight,omitempty"`
}

func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/json"
	}
}

// FileName is the attachment name for an export taken at t.
func (f Format) FileName(t time.Time) string {
	return fmt.Sprintf("strategy-map-%s.%s", t.Format("20060102-150405"), f)
}

// Write encodes data to w in format f.
func Write(w io.Writer, f Format, data Data) error {
	if data.Clients == nil {
		data.Clients = []models.Client{}
	}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	case FormatXLSX:
		return writeXLSX(w, data)
	case FormatMarkdown:
		return writeMarkdown(w, data)
	}
	return fmt.Errorf("unsupported export format %q", string(f))
}
