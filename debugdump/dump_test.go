package debugdump

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Chandima-Prabhath/Aura/models"
)

func TestDumpRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	d := New(dir, zerolog.Nop())

	in := []models.SearchResult{
		{Title: "Naruto", URL: "https://animeheaven.me/anime.php?naruto", Image: "https://animeheaven.me/cover/naruto.jpg"},
		{Title: "Bleach", URL: "https://animeheaven.me/anime.php?bleach"},
	}
	d.Dump("search_results", in)

	raw, err := os.ReadFile(filepath.Join(dir, "search_results.json"))
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var out []models.SearchResult
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d results, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("result %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestDumpOverwrites(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	d := New(dir, zerolog.Nop())

	d.Dump("episode_list", map[string]int{"episodes": 12})
	d.Dump("episode_list", map[string]int{"episodes": 3})

	raw, err := os.ReadFile(filepath.Join(dir, "episode_list.json"))
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}
	var out map[string]int
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["episodes"] != 3 {
		t.Errorf("episodes = %d, want 3 (last write wins)", out["episodes"])
	}
}

func TestDumpFailureIsNonFatal(t *testing.T) {
	t.Parallel()
	// A file where the directory should be makes MkdirAll fail.
	base := t.TempDir()
	blocked := filepath.Join(base, "occupied")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := New(blocked, zerolog.Nop())
	d.Dump("download_link", []models.DownloadItem{{EpisodeNumber: 1, DownloadURL: "u"}})
	// Reaching this point without a panic or error return is the contract.
}

func TestDumpUnmarshalableData(t *testing.T) {
	t.Parallel()
	d := New(t.TempDir(), zerolog.Nop())
	d.Dump("bad", func() {}) // functions cannot be marshalled; must not panic

	if _, err := os.Stat(filepath.Join(d.Dir(), "bad.json")); !os.IsNotExist(err) {
		t.Error("no file should be written for unmarshalable data")
	}
}
