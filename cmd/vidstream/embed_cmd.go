package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/justchokingaround/vidstream/internal/clipboard"
	"github.com/justchokingaround/vidstream/internal/media"
	"github.com/justchokingaround/vidstream/internal/playback"
	"github.com/justchokingaround/vidstream/internal/providers/embed"
	providerhttp "github.com/justchokingaround/vidstream/internal/providers/http"
)

// embedCmd prints the player address for a catalog id
var embedCmd = &cobra.Command{
	Use:   "embed <id>",
	Short: "Print the player address for a movie or episode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid id %q", args[0])
		}

		kindFlag, _ := cmd.Flags().GetString("kind")
		kind, err := media.ParseKindFlag(kindFlag)
		if err != nil {
			return err
		}
		season, _ := cmd.Flags().GetString("season")
		episode, _ := cmd.Flags().GetString("episode")

		sel := playback.Selection{
			ItemID:  id,
			Kind:    kind,
			Season:  playback.ParsePositive(season),
			Episode: playback.ParsePositive(episode),
		}
		url := embed.NewResolver(cfg.Embed.BaseURL).URL(sel)
		fmt.Println(url)

		if checkFlag, _ := cmd.Flags().GetBool("check"); checkFlag {
			if err := checkEmbed(cmd.Context(), url); err != nil {
				return err
			}
		}
		if copyFlag, _ := cmd.Flags().GetBool("copy"); copyFlag {
			svc := clipboard.NewService(cfg.Advanced.Clipboard, logger)
			if err := svc.Copy(cmd.Context(), url); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Println("Copied to clipboard")
		}
		if openFlag, _ := cmd.Flags().GetBool("open"); openFlag {
			if err := browser.OpenURL(url); err != nil {
				return fmt.Errorf("failed to open browser: %w", err)
			}
		}
		return nil
	},
}

func checkEmbed(ctx context.Context, url string) error {
	client := providerhttp.NewClient(providerhttp.ClientConfig{
		Timeout:   cfg.TMDB.Timeout,
		UserAgent: cfg.TMDB.UserAgent,
		Debug:     cfg.Advanced.Debug,
		Logger:    logger,
	})
	result, err := embed.NewProber(client).Probe(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to reach embed provider: %w", err)
	}
	if !result.OK() {
		return fmt.Errorf("embed provider answered %d", result.StatusCode)
	}

	title := result.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Printf("Reachable: %s, %d player source(s)\n", title, len(result.Sources))
	return nil
}

func init() {
	embedCmd.Flags().StringP("kind", "k", "movie", "media kind: movie or series")
	embedCmd.Flags().StringP("season", "s", "1", "season number (series only)")
	embedCmd.Flags().StringP("episode", "e", "1", "episode number (series only)")
	embedCmd.Flags().Bool("open", false, "open the address in the default browser")
	embedCmd.Flags().Bool("check", false, "fetch the provider page and report whether it serves a player")
	embedCmd.Flags().Bool("copy", false, "copy the address to the clipboard")
}
