// Package models holds the data records exchanged between the engine,
// the scrapers and the front-ends. All URLs are absolute.
package models

// SearchResult is one row of an AnimeHeaven search, immutable once returned.
type SearchResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Image string `json:"image,omitempty"`
}

// Episode is one entry of a show's episode listing.
//
// Number is 1-based and ascending. GateID is the per-episode token mined
// from the listing page; it has to be replayed as the "key" cookie before
// the episode page will expose its download anchor.
type Episode struct {
	Number  int    `json:"episode_number"`
	Name    string `json:"name"`
	RawName string `json:"raw_name"`
	URL     string `json:"url"`
	GateID  string `json:"gate_id,omitempty"`
}

// Show is the parsed show page: the ordered episode listing plus the
// related shows the site offers alongside it.
type Show struct {
	URL      string         `json:"url"`
	Title    string         `json:"title"`
	Episodes []Episode      `json:"episodes"`
	Related  []SearchResult `json:"related,omitempty"`
}

// Episode returns the episode with the given number, or nil.
func (s *Show) Episode(number int) *Episode {
	for i := range s.Episodes {
		if s.Episodes[i].Number == number {
			return &s.Episodes[i]
		}
	}
	return nil
}

// EpisodeNumbers returns the available episode numbers in listing order.
func (s *Show) EpisodeNumbers() []int {
	numbers := make([]int, len(s.Episodes))
	for i, ep := range s.Episodes {
		numbers[i] = ep.Number
	}
	return numbers
}

// DownloadItem pairs a resolved direct download URL with its episode.
// It is the final artifact of ResolveEpisodeSelection.
type DownloadItem struct {
	EpisodeNumber int    `json:"episode_number"`
	EpisodeName   string `json:"episode_name"`
	DownloadURL   string `json:"download_url"`
}

// ResolveFailure records one episode that could not be resolved during a
// batch. The rest of the batch still completes.
type ResolveFailure struct {
	EpisodeNumber int
	EpisodeName   string
	Err           error
}
