package media

// PosterPlaceholder is an inline SVG used when an item has no poster
const PosterPlaceholder = `data:image/svg+xml,%3Csvg xmlns="http://www.w3.org/2000/svg" width="300" height="450"%3E%3Crect fill="%231a1a24" width="300" height="450"/%3E%3Ctext fill="%236e6e8f" font-family="Arial" font-size="20" x="50%25" y="50%25" text-anchor="middle" dominant-baseline="middle"%3ENo Poster%3C/text%3E%3C/svg%3E`

// Card is the display projection of an Item.
// Index is the position of the item in the result list and doubles as its
// selection index.
type Card struct {
	Index     int
	Title     string
	Year      string
	Rating    string
	KindLabel string
	PosterURL string
}

// HasRating reports whether the card shows a rating
func (c Card) HasRating() bool {
	return c.Rating != NotAvailable
}

// RenderCards projects items into cards, preserving order.
// An empty input yields an empty (nil) slice.
func RenderCards(items []Item, imageBase string) []Card {
	if len(items) == 0 {
		return nil
	}

	cards := make([]Card, len(items))
	for i, item := range items {
		cards[i] = Card{
			Index:     i,
			Title:     item.Title,
			Year:      item.YearLabel(),
			Rating:    item.RatingLabel(),
			KindLabel: item.Kind.Label(),
			PosterURL: PosterURL(imageBase, item.PosterPath),
		}
	}
	return cards
}

// PosterURL joins the image host and path, or returns the placeholder
func PosterURL(imageBase, posterPath string) string {
	if posterPath == "" {
		return PosterPlaceholder
	}
	return imageBase + posterPath
}
