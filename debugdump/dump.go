// Package debugdump writes intermediate scraping results to disk as
// pretty-printed JSON so a run can be inspected after the fact.
package debugdump

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Dumper serializes values into a fixed directory. The directory is
// explicit constructor state so isolated runs can use isolated dirs.
type Dumper struct {
	dir string
	log zerolog.Logger
}

// New creates a Dumper writing into dir.
func New(dir string, log zerolog.Logger) *Dumper {
	return &Dumper{
		dir: dir,
		log: log.With().Str("component", "debugdump").Logger(),
	}
}

// Dir returns the output directory.
func (d *Dumper) Dir() string { return d.dir }

// Dump writes data as <dir>/<name>.json, overwriting any prior file of the
// same name. Failures are logged and swallowed: debug output must never
// abort the scraping workflow.
func (d *Dumper) Dump(name string, data any) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		d.log.Warn().Err(err).Str("dir", d.dir).Msg("Could not create debug directory")
		return
	}

	payload, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		d.log.Warn().Err(err).Str("name", name).Msg("Could not marshal debug data")
		return
	}

	path := filepath.Join(d.dir, name+".json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		d.log.Warn().Err(err).Str("path", path).Msg("Could not write debug file")
		return
	}

	d.log.Debug().Str("path", path).Msg("Saved debug data")
}
