package engine

import "testing"

// The media-blocking rule is installed as a context route; the predicate
// behind it is verified here directly.
func TestBlockedRequest(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		resourceType string
		url          string
		blocked      bool
	}{
		{"video resource", "video", "https://cdn.animeheaven.me/stream/123", true},
		{"media resource", "media", "https://cdn.animeheaven.me/stream/123", true},
		{"audio resource", "audio", "https://cdn.animeheaven.me/a.ogg", true},
		{"font resource", "font", "https://animeheaven.me/f.woff2", true},
		{"mp4 by url regardless of type", "xhr", "https://cdn.animeheaven.me/ep1.mp4?t=1", true},
		{"document", "document", "https://animeheaven.me/anime.php?x", false},
		{"stylesheet", "stylesheet", "https://animeheaven.me/style.css", false},
		{"script", "script", "https://animeheaven.me/app.js", false},
		{"image", "image", "https://animeheaven.me/cover.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := BlockedRequest(tt.resourceType, tt.url); got != tt.blocked {
				t.Errorf("BlockedRequest(%q, %q) = %v, want %v", tt.resourceType, tt.url, got, tt.blocked)
			}
		})
	}
}
