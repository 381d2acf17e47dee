// Package downloads saves resolved episodes to disk. One file per call,
// sequential by design: there is no queue, no resume and no speed
// limiting here.
package downloads

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/Chandima-Prabhath/Aura/commons"
	"github.com/Chandima-Prabhath/Aura/models"
)

// Status of a finished download task.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusSkipped   Status = "Skipped" // already on disk with the full size
	StatusError     Status = "Error"
)

// Task is the record of one download attempt.
type Task struct {
	ID            string
	EpisodeNumber int
	URL           string
	OutputPath    string
	Status        Status
	Written       int64
	Err           error
}

// Downloader writes episode files under a base directory, one show
// subdirectory per title.
type Downloader struct {
	client    *http.Client
	dir       string
	userAgent string
	progress  bool
	log       zerolog.Logger
}

// New creates a Downloader rooted at dir. The user agent should match the
// browser session that resolved the links.
func New(dir, userAgent string, log zerolog.Logger) *Downloader {
	return &Downloader{
		client:    &http.Client{Timeout: 0}, // bounded by ctx, not wall clock
		dir:       dir,
		userAgent: userAgent,
		progress:  true,
		log:       log.With().Str("component", "downloads").Logger(),
	}
}

// SetProgress toggles the console progress bar.
func (d *Downloader) SetProgress(enabled bool) { d.progress = enabled }

// Download fetches one resolved episode into
// <dir>/<clean show title>/<clean episode name>.mp4. A file already
// present with the expected size is skipped. The returned Task is always
// non-nil; its Status and Err describe the outcome alongside the error.
func (d *Downloader) Download(ctx context.Context, item models.DownloadItem, showTitle string) (*Task, error) {
	task := &Task{
		ID:            uuid.NewString(),
		EpisodeNumber: item.EpisodeNumber,
		URL:           item.DownloadURL,
	}

	name := item.EpisodeName
	if name == "" {
		name = fmt.Sprintf("Episode %d", item.EpisodeNumber)
	}
	folder := filepath.Join(d.dir, commons.CleanFilename(showTitle))
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return d.fail(task, fmt.Errorf("could not create output directory: %w", err))
	}
	task.OutputPath = filepath.Join(folder, commons.CleanFilename(name)+".mp4")

	if done, size := d.alreadyComplete(ctx, task.OutputPath, item.DownloadURL); done {
		d.log.Info().Str("path", task.OutputPath).Msg("File already complete, skipping")
		task.Status = StatusSkipped
		task.Written = size
		return task, nil
	}

	written, err := d.fetch(ctx, item.DownloadURL, task.OutputPath)
	if err != nil {
		return d.fail(task, err)
	}

	task.Status = StatusCompleted
	task.Written = written
	d.log.Info().Str("path", task.OutputPath).Int64("bytes", written).Msg("Download completed")
	return task, nil
}

// alreadyComplete compares the on-disk size with the server's content
// length. When the HEAD request fails the file is downloaded again to be
// safe.
func (d *Downloader) alreadyComplete(ctx context.Context, path, url string) (bool, int64) {
	info, err := os.Stat(path)
	if err != nil {
		return false, 0
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, 0
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Warn().Err(err).Str("path", path).Msg("Could not check remote size, downloading again")
		return false, 0
	}
	defer resp.Body.Close()

	if resp.ContentLength > 0 && info.Size() >= resp.ContentLength {
		return true, info.Size()
	}
	return false, 0
}

func (d *Downloader) fetch(ctx context.Context, url, path string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("invalid download URL: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("could not create output file: %w", err)
	}
	defer out.Close()

	var dst io.Writer = out
	if d.progress {
		bar := progressbar.NewOptions64(
			resp.ContentLength,
			progressbar.OptionSetDescription(filepath.Base(path)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		dst = io.MultiWriter(out, bar)
	}

	written, err := io.Copy(dst, resp.Body)
	if err != nil {
		return written, fmt.Errorf("could not write to file: %w", err)
	}
	return written, nil
}

func (d *Downloader) fail(task *Task, err error) (*Task, error) {
	task.Status = StatusError
	task.Err = err
	d.log.Error().Err(err).Int("episode", task.EpisodeNumber).Msg("Download failed")
	return task, err
}
