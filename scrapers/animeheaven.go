// Package scrapers parses AnimeHeaven pages into structured records. The
// functions here are pure over page HTML; navigation and waiting belong to
// the engine.
package scrapers

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/Chandima-Prabhath/Aura/models"
)

const (
	// BaseURL is the site entry point, also used to resolve relative hrefs.
	BaseURL = "https://animeheaven.me/"
	// CookieDomain is where the per-episode gate token is replayed.
	CookieDomain = "animeheaven.me"

	// SearchInputSelector is the search box on the home page.
	SearchInputSelector = `input[name="s"]`
	// SearchReadySelector renders once search results are in.
	SearchReadySelector = ".info3"
	// EpisodeLinkSelector renders once the episode listing is in.
	EpisodeLinkSelector = ".linetitle2 a"
	// DownloadAnchorSelector renders once the episode page exposes its link.
	DownloadAnchorSelector = `a[href*="&d"]`
)

// gate("...") in an episode link's onclick carries the access token.
var gateRe = regexp.MustCompile(`gate\("([^"]+)"\)`)

// ParseSearchResults extracts search rows from the results page. Malformed
// rows are skipped, not fatal: one broken card must not lose the rest.
func ParseSearchResults(html string, log zerolog.Logger) ([]models.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search page: %w", err)
	}

	results := []models.SearchResult{}
	doc.Find(".similarimg").Each(func(i int, item *goquery.Selection) {
		link := item.Find(`a[href*="anime.php"]`).First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			log.Debug().Int("row", i).Msg("Search row has no show link, skipping")
			return
		}

		title := strings.TrimSpace(item.Find(".similarname a.c").First().Text())
		img := item.Find("img.coverimg").First()
		if title == "" {
			// Fall back to the cover image's alt text.
			if alt, ok := img.Attr("alt"); ok {
				title = strings.TrimSpace(alt)
			}
		}
		if title == "" {
			title = "Unknown"
		}

		result := models.SearchResult{
			Title: title,
			URL:   resolveURL(href),
		}
		if src, ok := img.Attr("src"); ok && src != "" {
			result.Image = resolveURL(src)
		}
		results = append(results, result)
	})

	return results, nil
}

// ParseShowPage extracts the show title, the ordered episode listing and
// the related shows from a show page. The site lists episodes newest-first;
// the returned slice is ascending with 1-based numbers assigned.
func ParseShowPage(html, showURL string, log zerolog.Logger) (*models.Show, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse show page: %w", err)
	}

	show := &models.Show{
		URL:   showURL,
		Title: strings.TrimSpace(doc.Find(".infotitle").First().Text()),
	}

	doc.Find(EpisodeLinkSelector).Each(func(i int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || href == "" {
			log.Debug().Int("row", i).Msg("Episode link has no href, skipping")
			return
		}

		raw := strings.TrimSpace(link.Text())
		ep := models.Episode{
			Name:    CleanEpisodeName(raw),
			RawName: raw,
			URL:     resolveURL(href),
		}
		if onclick, ok := link.Attr("onclick"); ok {
			if m := gateRe.FindStringSubmatch(onclick); m != nil {
				ep.GateID = m[1]
			}
		}
		show.Episodes = append(show.Episodes, ep)
	})

	// Newest first on the site, ascending for callers.
	for i, j := 0, len(show.Episodes)-1; i < j; i, j = i+1, j-1 {
		show.Episodes[i], show.Episodes[j] = show.Episodes[j], show.Episodes[i]
	}
	for i := range show.Episodes {
		show.Episodes[i].Number = i + 1
	}

	doc.Find(".similarimg").Each(func(i int, item *goquery.Selection) {
		link := item.Find("a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}
		related := models.SearchResult{
			Title: strings.TrimSpace(link.Text()),
			URL:   resolveURL(href),
		}
		if src, ok := item.Find("img").First().Attr("src"); ok && src != "" {
			related.Image = resolveURL(src)
		}
		show.Related = append(show.Related, related)
	})

	return show, nil
}

// ParseDownloadLink extracts the direct download URL from an episode page.
// It prefers an anchor labelled "Download" and falls back to the site's
// "&d" href marker. Returns "" when neither is present.
func ParseDownloadLink(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse episode page: %w", err)
	}

	var found string
	doc.Find("a").EachWithBreak(func(i int, link *goquery.Selection) bool {
		if !strings.Contains(link.Text(), "Download") {
			return true
		}
		if href, ok := link.Attr("href"); ok && href != "" {
			found = href
			return false
		}
		return true
	})

	if found == "" {
		if href, ok := doc.Find(DownloadAnchorSelector).First().Attr("href"); ok && href != "" {
			found = href
		}
	}
	if found == "" {
		return "", nil
	}
	return resolveURL(found), nil
}

// CleanEpisodeName collapses a multi-line episode label into one line,
// keeping the first two non-empty segments ("Episode 12", "Title").
func CleanEpisodeName(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return strings.TrimSpace(text)
	}

	var parts []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) >= 2 {
		return parts[0] + " " + parts[1]
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return ""
}

func resolveURL(href string) string {
	base, err := url.Parse(BaseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
