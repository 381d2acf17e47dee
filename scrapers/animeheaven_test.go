// Fixture-based tests for the AnimeHeaven page parsers: search rows,
// episode listings (ordering, gate tokens, name cleaning) and download
// anchors, including the partial-failure tolerance on malformed rows.
package scrapers

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const searchFixture = `
<html><body>
<div class="info3">Results</div>
<div class="similarimg">
  <a href="anime.php?naruto"><img class="coverimg" src="/cover/naruto.jpg" alt="Naruto"></a>
  <div class="similarname"><a class="c" href="anime.php?naruto">Naruto</a></div>
</div>
<div class="similarimg">
  <a href="anime.php?bleach"><img class="coverimg" src="/cover/bleach.jpg" alt="Bleach Alt"></a>
  <div class="similarname"></div>
</div>
<div class="similarimg">
  <span>broken card without a link</span>
</div>
</body></html>`

func TestParseSearchResults(t *testing.T) {
	t.Parallel()
	results, err := ParseSearchResults(searchFixture, zerolog.Nop())
	if err != nil {
		t.Fatalf("ParseSearchResults: %v", err)
	}

	// The broken third card is skipped, not fatal.
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	first := results[0]
	if first.Title != "Naruto" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.URL != "https://animeheaven.me/anime.php?naruto" {
		t.Errorf("URL not resolved to absolute: %q", first.URL)
	}
	if first.Image != "https://animeheaven.me/cover/naruto.jpg" {
		t.Errorf("Image = %q", first.Image)
	}

	// Missing name falls back to the image alt text.
	if results[1].Title != "Bleach Alt" {
		t.Errorf("fallback title = %q, want %q", results[1].Title, "Bleach Alt")
	}
}

func TestParseSearchResultsEmpty(t *testing.T) {
	t.Parallel()
	results, err := ParseSearchResults(`<html><body><div class="info3"></div></body></html>`, zerolog.Nop())
	if err != nil {
		t.Fatalf("ParseSearchResults: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("zero matches must yield an empty slice, got %#v", results)
	}
}

const showFixture = `
<html><body>
<div class="infotitle">Naruto</div>
<div class="linetitle2">
  <a href="episode.php?naruto-3" onclick='gate("tok-3")'>Episode 3
  Homecoming</a>
  <a href="episode.php?naruto-2" onclick='gate("tok-2")'>Episode 2</a>
  <a href="episode.php?naruto-1">Episode 1</a>
</div>
<div class="similarimg">
  <a href="anime.php?boruto">Boruto<img src="/cover/boruto.jpg"></a>
</div>
</body></html>`

func TestParseShowPage(t *testing.T) {
	t.Parallel()
	show, err := ParseShowPage(showFixture, "https://animeheaven.me/anime.php?naruto", zerolog.Nop())
	if err != nil {
		t.Fatalf("ParseShowPage: %v", err)
	}

	if show.Title != "Naruto" {
		t.Errorf("Title = %q", show.Title)
	}
	if len(show.Episodes) != 3 {
		t.Fatalf("got %d episodes, want 3", len(show.Episodes))
	}

	// Site order is newest first; parsed order must be ascending with
	// 1-based numbers.
	for i, ep := range show.Episodes {
		if ep.Number != i+1 {
			t.Errorf("episode %d has Number %d", i, ep.Number)
		}
	}
	if show.Episodes[0].URL != "https://animeheaven.me/episode.php?naruto-1" {
		t.Errorf("episode 1 URL = %q", show.Episodes[0].URL)
	}
	if show.Episodes[0].GateID != "" {
		t.Errorf("episode 1 should have no gate token, got %q", show.Episodes[0].GateID)
	}
	if show.Episodes[1].GateID != "tok-2" {
		t.Errorf("episode 2 GateID = %q", show.Episodes[1].GateID)
	}

	// Multi-line label collapses into one name.
	if got := show.Episodes[2].Name; got != "Episode 3 Homecoming" {
		t.Errorf("cleaned name = %q", got)
	}
	if !strings.Contains(show.Episodes[2].RawName, "\n") {
		t.Error("RawName should keep the original label")
	}

	if len(show.Related) != 1 || show.Related[0].Title != "Boruto" {
		t.Errorf("Related = %+v", show.Related)
	}
}

func TestParseShowPageNoEpisodes(t *testing.T) {
	t.Parallel()
	show, err := ParseShowPage(`<html><body><p>404</p></body></html>`, "https://animeheaven.me/anime.php?gone", zerolog.Nop())
	if err != nil {
		t.Fatalf("ParseShowPage: %v", err)
	}
	if len(show.Episodes) != 0 {
		t.Errorf("got %d episodes, want 0", len(show.Episodes))
	}
}

func TestParseDownloadLink(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "download anchor",
			html: `<a href="/files/ep1.mp4?token=abc">Download Episode</a>`,
			want: "https://animeheaven.me/files/ep1.mp4?token=abc",
		},
		{
			name: "d marker fallback",
			html: `<a href="other.php">Watch</a><a href="dl.php?id=1&d">HD</a>`,
			want: "https://animeheaven.me/dl.php?id=1&d",
		},
		{
			name: "download label wins over marker",
			html: `<a href="dl.php?id=1&d">HD</a><a href="/direct.mp4">Download</a>`,
			want: "https://animeheaven.me/direct.mp4",
		},
		{
			name: "absent",
			html: `<a href="other.php">Watch</a>`,
			want: "",
		},
		{
			name: "download label without href is skipped",
			html: `<a>Download</a><a href="dl.php?id=2&d">HD</a>`,
			want: "https://animeheaven.me/dl.php?id=2&d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDownloadLink("<html><body>" + tt.html + "</body></html>")
			if err != nil {
				t.Fatalf("ParseDownloadLink: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanEpisodeName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"Episode 1", "Episode 1"},
		{"Episode 2\nThe Title", "Episode 2 The Title"},
		{"  Episode 3  \n\n  Other  \n  Third  ", "Episode 3 Other"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanEpisodeName(tt.in); got != tt.want {
			t.Errorf("CleanEpisodeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
