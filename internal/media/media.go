// Package media holds the catalog items shown in the results list and the
// pure projection of those items into display cards.
package media

import (
	"fmt"
	"strconv"
)

// Kind is the kind of a playable catalog entry
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// ParseKind maps a catalog media_type to a Kind.
// Only "movie" and "tv" are playable.
func ParseKind(mediaType string) (Kind, bool) {
	switch mediaType {
	case "movie":
		return KindMovie, true
	case "tv":
		return KindSeries, true
	default:
		return "", false
	}
}

// ParseKindFlag accepts the user facing spellings of a Kind
func ParseKindFlag(s string) (Kind, error) {
	switch s {
	case "movie", "movies":
		return KindMovie, nil
	case "series", "tv", "show", "shows":
		return KindSeries, nil
	default:
		return "", fmt.Errorf("unknown kind %q (want movie or series)", s)
	}
}

// Episodic reports whether the kind has seasons and episodes
func (k Kind) Episodic() bool {
	return k == KindSeries
}

// Label is the human readable kind shown on cards
func (k Kind) Label() string {
	if k == KindMovie {
		return "Movie"
	}
	return "TV Show"
}

// Item is a playable search result
type Item struct {
	ID          int
	Kind        Kind
	Title       string
	ReleaseDate string
	Rating      float64
	PosterPath  string
	Overview    string
}

// YearLabel is the first four characters of the release date, or ""
func (i Item) YearLabel() string {
	if len(i.ReleaseDate) < 4 {
		return i.ReleaseDate
	}
	return i.ReleaseDate[:4]
}

// RatingLabel is the rating with one decimal place, or NotAvailable
func (i Item) RatingLabel() string {
	if i.Rating == 0 {
		return NotAvailable
	}
	return strconv.FormatFloat(i.Rating, 'f', 1, 64)
}

// NotAvailable is shown when an item has no rating
const NotAvailable = "N/A"

// NoOverview is shown when an item has no description
const NoOverview = "No description available."

// OverviewText is the overview or NoOverview
func (i Item) OverviewText() string {
	if i.Overview == "" {
		return NoOverview
	}
	return i.Overview
}
