package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/justchokingaround/vidstream/internal/credential"
	"github.com/justchokingaround/vidstream/internal/media"
	"github.com/justchokingaround/vidstream/internal/providers/tmdb"
)

// searchCmd runs a single catalog search and prints the playable results
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for movies and TV shows",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("query must not be empty")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.TMDB.Timeout)
		defer cancel()

		key, _ := cmd.Flags().GetString("api-key")
		if key == "" {
			var err error
			key, err = credential.NewSettingsStore(db).Get(ctx)
			if err != nil {
				return err
			}
		}

		items, err := newCatalog().SearchMulti(ctx, key, query)
		if errors.Is(err, tmdb.ErrMissingCredential) {
			return fmt.Errorf("%w: run 'vidstream settings set-key <key>' first", err)
		}
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		printCards(media.RenderCards(items, cfg.TMDB.ImageBase), items)
		return nil
	},
}

func printCards(cards []media.Card, items []media.Item) {
	if len(cards) == 0 {
		fmt.Println("No results found")
		return
	}

	for i, card := range cards {
		title := runewidth.Truncate(card.Title, 40, "...")
		line := fmt.Sprintf("%3d. %s %-4s  %-7s  id=%d",
			card.Index+1,
			runewidth.FillRight(title, 40),
			card.Year,
			card.KindLabel,
			items[i].ID,
		)
		if card.HasRating() {
			line += "  ★ " + card.Rating
		}
		fmt.Println(line)
	}
}

func init() {
	searchCmd.Flags().String("api-key", "", "API key to use instead of the stored one")
}
