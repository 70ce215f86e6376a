package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/replay/internal/config"
	"github.com/runnerr0/replay/internal/stats"
)

type rankJSON struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type topJSON struct {
	ReportID string     `json:"report_id"`
	Limit    int        `json:"limit"`
	Tracks   []rankJSON `json:"tracks"`
	Artists  []rankJSON `json:"artists"`
}

// Execute implements the go-flags Commander interface for TopCommand.
func (c *TopCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithConfig(cfg, args)
}

// executeWithConfig runs the rankings against a provided config (for testing).
func (c *TopCommand) executeWithConfig(cfg *config.Config, args []string) error {
	res, err := runWithConfig(cfg, c.globals, args)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}

	limit := c.Limit
	if limit <= 0 {
		limit = cfg.Output.TopN
	}

	tracks, err := stats.TopN(res.Events, stats.FieldTrack, limit)
	if err != nil {
		return err
	}
	artists, err := stats.TopN(res.Events, stats.FieldArtist, limit)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		out := topJSON{
			ReportID: res.ReportID,
			Limit:    limit,
			Tracks:   toRankJSON(tracks),
			Artists:  toRankJSON(artists),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Top %d Tracks\n", limit)
	fmt.Println("============")
	printRanking(tracks)

	fmt.Println()
	fmt.Printf("Top %d Artists\n", limit)
	fmt.Println("=============")
	printRanking(artists)

	return nil
}

func printRanking(ranking []stats.RankEntry) {
	for i, r := range ranking {
		fmt.Printf("%2d. %-40s %d plays\n", i+1, r.Name, r.Count)
	}
}

func toRankJSON(ranking []stats.RankEntry) []rankJSON {
	out := make([]rankJSON, len(ranking))
	for i, r := range ranking {
		out[i] = rankJSON{Name: r.Name, Count: r.Count}
	}
	return out
}
