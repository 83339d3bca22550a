package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/justchokingaround/vidstream/internal/database"
	"github.com/justchokingaround/vidstream/internal/history"
	"github.com/justchokingaround/vidstream/internal/media"
)

// historyCmd lists recently played titles
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently played titles",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := history.NewService(db)

		if clearFlag, _ := cmd.Flags().GetBool("clear"); clearFlag {
			if err := svc.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Println("History cleared")
			return nil
		}

		if days, _ := cmd.Flags().GetInt("prune"); days > 0 {
			deleted, err := svc.Cleanup(time.Duration(days) * 24 * time.Hour)
			if err != nil {
				return fmt.Errorf("failed to prune history: %w", err)
			}
			fmt.Printf("Removed %d entries older than %d days\n", deleted, days)
			return nil
		}

		if stats, _ := cmd.Flags().GetBool("stats"); stats {
			return printHistoryStats(svc)
		}

		sortFlag, _ := cmd.Flags().GetString("sort")
		order, err := history.ParseSortOrder(sortFlag)
		if err != nil {
			return err
		}
		var kind media.Kind
		if kindFlag, _ := cmd.Flags().GetString("kind"); kindFlag != "" {
			if kind, err = media.ParseKindFlag(kindFlag); err != nil {
				return err
			}
		}
		limit, _ := cmd.Flags().GetInt("limit")
		filter, _ := cmd.Flags().GetString("filter")

		entries, err := svc.GetHistory(history.FilterOptions{
			MediaType:   string(kind),
			SearchQuery: filter,
			Limit:       limit,
			SortBy:      order,
		})
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("Nothing played yet")
			return nil
		}

		for _, e := range entries {
			fmt.Println(historyLine(e))
		}
		return nil
	},
}

func historyLine(e database.History) string {
	title := runewidth.Truncate(e.Title, 40, "...")
	if media.Kind(e.MediaType).Episodic() {
		title = runewidth.Truncate(e.Title, 32, "...") + fmt.Sprintf(" S%02dE%02d", e.Season, e.Episode)
	}
	return fmt.Sprintf("%s  %-14s  %s", runewidth.FillRight(title, 40), humanize.Time(e.WatchedAt), e.EmbedURL)
}

func printHistoryStats(svc *history.Service) error {
	stats, err := svc.GetStats()
	if err != nil {
		return fmt.Errorf("failed to load history stats: %w", err)
	}
	fmt.Printf("Entries:  %s\n", humanize.Comma(stats.TotalItems))
	fmt.Printf("Movies:   %s\n", humanize.Comma(stats.MovieCount))
	fmt.Printf("Series:   %s\n", humanize.Comma(stats.SeriesCount))
	if !stats.LastWatched.IsZero() {
		fmt.Printf("Last:     %s\n", humanize.Time(stats.LastWatched))
	}
	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of entries to show (0 for all)")
	historyCmd.Flags().StringP("kind", "k", "", "only show movie or series entries")
	historyCmd.Flags().StringP("filter", "f", "", "only show titles containing this text")
	historyCmd.Flags().String("sort", "recent", "sort order: recent, oldest, title, title_desc")
	historyCmd.Flags().Bool("stats", false, "print a summary instead of the list")
	historyCmd.Flags().Int("prune", 0, "delete entries older than this many days")
	historyCmd.Flags().Bool("clear", false, "delete the whole history")
}
