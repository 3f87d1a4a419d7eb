package workspace

import (
	"strings"

	"github.com/BerylCAtieno/strategy-mapper/internal/models"
	"golang.org/x/text/cases"
)

// Filter keeps the clients whose name or industry contains term, ignoring
// case. A blank term returns clients unchanged.
func Filter(clients []models.Client, term string) []models.Client {
	if strings.TrimSpace(term) == "" {
		return clients
	}

	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(fold.String(c.Name), needle) || strings.Contains(fold.String(c.Industry), needle) {
			out = append(out, c)
		}
	}
	return out
}
