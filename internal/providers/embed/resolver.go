// Package embed builds playback addresses for the external video provider.
package embed

import (
	"fmt"
	"strings"

	"github.com/justchokingaround/vidstream/internal/playback"
)

// Resolver turns a selection into an embeddable player address
type Resolver struct {
	BaseURL string
}

// NewResolver creates a resolver for the given provider base
func NewResolver(baseURL string) Resolver {
	return Resolver{BaseURL: strings.TrimRight(baseURL, "/")}
}

// URL returns the embed address for sel. Series addresses always carry the
// season and episode of the selection.
func (r Resolver) URL(sel playback.Selection) string {
	base := strings.TrimRight(r.BaseURL, "/")
	if sel.Kind.Episodic() {
		return fmt.Sprintf("%s/tv?tmdb=%d&season=%d&episode=%d", base, sel.ItemID, sel.Season, sel.Episode)
	}
	return fmt.Sprintf("%s/movie?tmdb=%d", base, sel.ItemID)
}
