package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runnerr0/replay/internal/config"
	"github.com/runnerr0/replay/internal/ingest"
	"github.com/runnerr0/replay/internal/pipeline"
)

// noticeJSON is the JSON shape for user prompts that are not failures.
type noticeJSON struct {
	Notice string `json:"notice"`
}

// loadConfig resolves the effective configuration for a command: the
// --config file if given, otherwise the default path (created with defaults
// on first use), with the --zone flag applied on top.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if globals != nil && globals.Config != "" {
		cfg, err = config.Load(globals.Config)
	} else {
		cfg, err = config.LoadOrCreate()
	}
	if err != nil {
		return nil, err
	}

	if globals != nil && globals.Zone != "" {
		cfg.Timezone = globals.Zone
	}

	return cfg, nil
}

// readFiles reads the given paths into in-memory upload files. Names keep
// only the base name so classification matches however the user stored them.
func readFiles(paths []string) ([]ingest.File, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files given; pass your export's JSON files as arguments")
	}

	files := make([]ingest.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, ingest.File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}

// runWithConfig reads the argument files and runs the full pipeline. The
// no-primary-data case is reported as a user prompt on stdout (JSON-shaped
// when --json is set) and a nil result, not as an error.
func runWithConfig(cfg *config.Config, globals *GlobalFlags, args []string) (*pipeline.Result, error) {
	files, err := readFiles(args)
	if err != nil {
		return nil, err
	}

	res, err := pipeline.Run(files, cfg)
	if errors.Is(err, pipeline.ErrNoPrimaryData) {
		const prompt = "No StreamingHistory files found. Include at least one StreamingHistory JSON file to get started."
		if globals != nil && globals.JSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(noticeJSON{Notice: prompt}); err != nil {
				return nil, err
			}
		} else {
			fmt.Println(prompt)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return res, nil
}
