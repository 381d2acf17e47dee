// Package engine drives the three-step AnimeHeaven workflow: search,
// episode listing, download-link resolution. One Engine owns one browser
// context; callers run Start, the operations they need, then Close.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Chandima-Prabhath/Aura/apperrors"
	"github.com/Chandima-Prabhath/Aura/debugdump"
	"github.com/Chandima-Prabhath/Aura/models"
	"github.com/Chandima-Prabhath/Aura/scrapers"
)

// renderTimeout bounds the wait for result/listing elements after a
// navigation already succeeded.
const renderTimeout = 10 * time.Second

// episodePageInterval paces visits to consecutive episode pages so the
// batch does not hammer the site.
const episodePageInterval = 1500 * time.Millisecond

// Config carries the engine's construction settings.
type Config struct {
	Headless          bool
	UserAgent         string
	NavigationTimeout time.Duration
	// DebugDir receives the search_results/episode_list/download_link
	// JSON dumps.
	DebugDir string
}

// Engine is the scraping session. Not safe for concurrent use: a single
// caller owns it between Start and Close.
type Engine struct {
	driver  Driver
	dumper  *debugdump.Dumper
	limiter *rate.Limiter
	log     zerolog.Logger
	started bool
}

// New builds an Engine backed by a Playwright driver.
func New(cfg Config, log zerolog.Logger) *Engine {
	driver := NewPlaywrightDriver(PlaywrightConfig{
		Headless:          cfg.Headless,
		UserAgent:         cfg.UserAgent,
		NavigationTimeout: cfg.NavigationTimeout,
	}, log)
	return NewWithDriver(driver, cfg.DebugDir, log)
}

// NewWithDriver builds an Engine over an explicit Driver. Tests use this
// with a fake driver; the GUI and CLI go through New.
func NewWithDriver(driver Driver, debugDir string, log zerolog.Logger) *Engine {
	return &Engine{
		driver:  driver,
		dumper:  debugdump.New(debugDir, log),
		limiter: rate.NewLimiter(rate.Every(episodePageInterval), 1),
		log:     log.With().Str("component", "engine").Logger(),
	}
}

// Start launches the browser session. A failure is fatal and the Engine
// must not be used afterwards.
func (e *Engine) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.log.Info().Msg("Initializing engine")
	if err := e.driver.Start(); err != nil {
		return err
	}
	e.started = true
	return nil
}

// Close releases the browser session. Safe to call after a failed Start
// and safe to call more than once.
func (e *Engine) Close() error {
	e.started = false
	return e.driver.Close()
}

// SearchAnime runs a search and returns the parsed result rows. Zero
// matches is a valid outcome, not an error.
func (e *Engine) SearchAnime(ctx context.Context, query string) ([]models.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.log.Info().Str("query", query).Msg("Searching")

	page, err := e.driver.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not open page: %w", err)
	}
	defer e.closePage(page)

	if err := page.Goto(scrapers.BaseURL); err != nil {
		return nil, err
	}
	if err := page.Fill(scrapers.SearchInputSelector, query); err != nil {
		return nil, fmt.Errorf("could not fill search box: %w", err)
	}
	if err := page.Press(scrapers.SearchInputSelector, "Enter"); err != nil {
		return nil, fmt.Errorf("could not submit search: %w", err)
	}

	if err := page.WaitFor(scrapers.SearchReadySelector, renderTimeout); err != nil {
		if !errors.Is(err, &apperrors.NavigationTimeoutError{}) {
			return nil, err
		}
		// No results container can simply mean zero matches.
		e.log.Warn().Str("query", query).Msg("Search results container did not render")
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("could not read search page: %w", err)
	}

	results, err := scrapers.ParseSearchResults(html, e.log)
	if err != nil {
		return nil, err
	}

	e.dumper.Dump("search_results", results)
	e.log.Info().Int("results", len(results)).Msg("Search finished")
	return results, nil
}

// GetEpisodeList fetches and parses a show page into its ordered episode
// listing. A missing listing is a NotFoundError: either the URL is wrong
// or the site layout changed.
func (e *Engine) GetEpisodeList(ctx context.Context, showURL string) (*models.Show, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.log.Info().Str("url", showURL).Msg("Fetching episode list")

	page, err := e.driver.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not open page: %w", err)
	}
	defer e.closePage(page)

	if err := page.Goto(showURL); err != nil {
		return nil, err
	}
	if err := page.WaitFor(scrapers.EpisodeLinkSelector, renderTimeout); err != nil {
		if errors.Is(err, &apperrors.NavigationTimeoutError{}) {
			return nil, apperrors.NewNotFoundError("episode listing", showURL)
		}
		return nil, err
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("could not read show page: %w", err)
	}

	show, err := scrapers.ParseShowPage(html, showURL, e.log)
	if err != nil {
		return nil, err
	}
	if len(show.Episodes) == 0 {
		return nil, apperrors.NewNotFoundError("episode listing", showURL)
	}

	e.dumper.Dump("episode_list", show)
	e.log.Info().Int("episodes", len(show.Episodes)).Str("title", show.Title).Msg("Episode list ready")
	return show, nil
}

// GetDownloadLink resolves one episode's direct download URL. The episode's
// gate token, when present, is replayed as the "key" cookie before
// navigating.
func (e *Engine) GetDownloadLink(ctx context.Context, ep models.Episode) (string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", err
	}

	if ep.GateID != "" {
		if err := e.driver.SetCookie("key", ep.GateID, scrapers.CookieDomain); err != nil {
			return "", fmt.Errorf("could not set gate cookie: %w", err)
		}
	} else {
		e.log.Warn().Str("episode", ep.Name).Msg("Episode has no gate token")
	}

	page, err := e.driver.NewPage()
	if err != nil {
		return "", fmt.Errorf("could not open page: %w", err)
	}
	defer e.closePage(page)

	if err := page.Goto(ep.URL); err != nil {
		return "", err
	}
	// The anchor may already be in the DOM; a timeout here is not yet a
	// failure, the parse below decides.
	if err := page.WaitFor(scrapers.DownloadAnchorSelector, renderTimeout); err != nil &&
		!errors.Is(err, &apperrors.NavigationTimeoutError{}) {
		return "", err
	}

	html, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("could not read episode page: %w", err)
	}

	link, err := scrapers.ParseDownloadLink(html)
	if err != nil {
		return "", err
	}
	if link == "" {
		return "", apperrors.NewNotFoundError("download link", ep.URL)
	}
	return link, nil
}

// ResolveError reports the episodes of a batch that failed to resolve.
// The successful items are still returned alongside it.
type ResolveError struct {
	Failures []models.ResolveFailure
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d episode(s) failed to resolve:", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, " episode %d (%v);", f.EpisodeNumber, f.Err)
	}
	return strings.TrimSuffix(b.String(), ";")
}

// Is allows for error checking with errors.Is().
func (e *ResolveError) Is(target error) bool {
	_, ok := target.(*ResolveError)
	return ok
}

// ResolveEpisodeSelection runs the full workflow for one show: episode
// list, selection expansion, then one link resolution per selected
// episode, in selection order.
//
// Partial-failure policy: an episode whose page yields no link does not
// abort the batch. The successful items are returned together with a
// *ResolveError naming the failures; the error is nil when every selected
// episode resolved.
func (e *Engine) ResolveEpisodeSelection(ctx context.Context, showURL, selection string) ([]models.DownloadItem, error) {
	show, err := e.GetEpisodeList(ctx, showURL)
	if err != nil {
		return nil, err
	}

	numbers, err := ParseSelection(selection, show.EpisodeNumbers())
	if err != nil {
		return nil, err
	}

	items := []models.DownloadItem{}
	var failures []models.ResolveFailure

	for _, n := range numbers {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		ep := show.Episode(n)
		e.log.Info().Int("episode", n).Str("name", ep.Name).Msg("Resolving download link")

		link, err := e.GetDownloadLink(ctx, *ep)
		if err != nil {
			e.log.Warn().Err(err).Int("episode", n).Msg("Episode failed to resolve")
			failures = append(failures, models.ResolveFailure{
				EpisodeNumber: n,
				EpisodeName:   ep.Name,
				Err:           err,
			})
			continue
		}

		items = append(items, models.DownloadItem{
			EpisodeNumber: n,
			EpisodeName:   ep.Name,
			DownloadURL:   link,
		})
	}

	e.dumper.Dump("download_link", items)

	if len(failures) > 0 {
		return items, &ResolveError{Failures: failures}
	}
	return items, nil
}

func (e *Engine) closePage(page Page) {
	if err := page.Close(); err != nil {
		e.log.Debug().Err(err).Msg("Could not close page")
	}
}
