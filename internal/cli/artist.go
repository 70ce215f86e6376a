package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/replay/internal/config"
	"github.com/runnerr0/replay/internal/stats"
)

type artistJSON struct {
	ReportID  string     `json:"report_id"`
	Artist    string     `json:"artist"`
	Plays     int        `json:"plays"`
	TopTracks []rankJSON `json:"top_tracks"`
	Hourly    []hourJSON `json:"hourly"`
}

// Execute implements the go-flags Commander interface for ArtistCommand.
func (c *ArtistCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithConfig(cfg, args)
}

// executeWithConfig runs the drill-down against a provided config (for testing).
func (c *ArtistCommand) executeWithConfig(cfg *config.Config, args []string) error {
	res, err := runWithConfig(cfg, c.globals, args)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}

	// Default to the most played artist, matching the export's own
	// year-in-review framing.
	name := c.Name
	if name == "" {
		name, err = stats.TopArtist(res.Events)
		if err != nil {
			return err
		}
	}

	report, err := stats.ArtistDrilldown(res.Events, name)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		out := artistJSON{
			ReportID:  res.ReportID,
			Artist:    report.Artist,
			Plays:     len(report.Events),
			TopTracks: toRankJSON(report.TopTracks),
			Hourly:    toHourJSON(report.Hourly),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Artist Deep Dive: %s\n", report.Artist)
	fmt.Println("==================")
	fmt.Printf("Plays: %d\n", len(report.Events))

	fmt.Println()
	fmt.Printf("Top tracks by %s:\n", report.Artist)
	printRanking(report.TopTracks)

	fmt.Println()
	fmt.Printf("When you listen to %s:\n", report.Artist)
	for _, h := range report.Hourly {
		if h.Count == 0 {
			continue
		}
		fmt.Printf("  %02d:00  %d\n", h.Hour, h.Count)
	}

	return nil
}
