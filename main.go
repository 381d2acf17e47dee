package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/Chandima-Prabhath/Aura/commons"
	"github.com/Chandima-Prabhath/Aura/downloads"
	"github.com/Chandima-Prabhath/Aura/engine"
	"github.com/Chandima-Prabhath/Aura/models"
)

func main() {
	printBanner()

	opts, err := commons.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		commons.PrintHelp()
		os.Exit(1)
	}
	if opts.Action == commons.Exit {
		commons.PrintHelp()
		return
	}

	cfg, err := commons.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load config: %v\n", err)
		os.Exit(1)
	}
	if opts.HasHead {
		cfg.Headless = false
	}

	log := commons.NewLogger(cfg.LogLevel)
	os.Exit(run(opts, cfg, log))
}

func run(opts *commons.Options, cfg *commons.Config, log zerolog.Logger) int {
	ctx := context.Background()

	eng := engine.New(engine.Config{
		Headless:          cfg.Headless,
		UserAgent:         cfg.UserAgent,
		NavigationTimeout: cfg.NavigationTimeoutDuration(),
		DebugDir:          cfg.DebugDir,
	}, log)

	if err := eng.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Could not start browser session")
		return 1
	}
	defer func() {
		if err := eng.Close(); err != nil {
			log.Warn().Err(err).Msg("Could not close browser session")
		}
	}()

	switch opts.Action {
	case commons.Search:
		return runSearch(ctx, eng, opts.Query, log)
	case commons.Resolve:
		return runResolve(ctx, eng, opts, cfg, log)
	}
	return 0
}

func runSearch(ctx context.Context, eng *engine.Engine, query string, log zerolog.Logger) int {
	results, err := eng.SearchAnime(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Search failed")
		return 1
	}

	if len(results) == 0 {
		fmt.Printf("No results for %q\n", query)
		return 0
	}

	fmt.Printf("Found %d result(s) for %q:\n", len(results), query)
	for i, res := range results {
		fmt.Printf("%3d. %s\n     %s\n", i+1, res.Title, res.URL)
	}
	return 0
}

func runResolve(ctx context.Context, eng *engine.Engine, opts *commons.Options, cfg *commons.Config, log zerolog.Logger) int {
	items, err := eng.ResolveEpisodeSelection(ctx, opts.ShowURL, opts.Selection)

	var resolveErr *engine.ResolveError
	switch {
	case err == nil:
	case errors.As(err, &resolveErr):
		for _, f := range resolveErr.Failures {
			log.Warn().Err(f.Err).Int("episode", f.EpisodeNumber).Msg("Episode failed to resolve")
		}
	default:
		log.Error().Err(err).Str("url", opts.ShowURL).Msg("Could not resolve episodes")
		return 1
	}

	if len(items) == 0 {
		fmt.Println("No episodes resolved.")
		return 1
	}

	fmt.Printf("Resolved %d episode(s):\n", len(items))
	for _, item := range items {
		fmt.Printf("Episode %d: %s\n", item.EpisodeNumber, item.DownloadURL)
	}

	if opts.Download {
		if code := runDownloads(ctx, items, opts.ShowURL, cfg, log); code != 0 {
			return code
		}
	}
	return 0
}

// runDownloads saves the resolved files one at a time. The show title for
// the folder name comes from the episode list dump the engine already
// produced; falling back to the URL-derived name keeps this step
// independent of a second page visit.
func runDownloads(ctx context.Context, items []models.DownloadItem, showURL string, cfg *commons.Config, log zerolog.Logger) int {
	dl := downloads.New(cfg.DownloadPath, cfg.UserAgent, log)

	title := showTitleFromURL(showURL)
	failed := 0
	for _, item := range items {
		if _, err := dl.Download(ctx, item, title); err != nil {
			failed++
		}
	}

	if failed > 0 {
		log.Error().Int("failed", failed).Msg("Some downloads failed")
		return 1
	}
	return 0
}

func showTitleFromURL(showURL string) string {
	// anime.php?naruto -> naruto
	for i := len(showURL) - 1; i >= 0; i-- {
		if showURL[i] == '?' || showURL[i] == '/' {
			if title := showURL[i+1:]; title != "" {
				return title
			}
			break
		}
	}
	return "show"
}
