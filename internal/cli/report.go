package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/replay/internal/config"
	"github.com/runnerr0/replay/internal/pipeline"
	"github.com/runnerr0/replay/internal/stats"
)

// reportJSON is the JSON output structure for the report command.
type reportJSON struct {
	ReportID      string      `json:"report_id"`
	Hours         float64     `json:"hours"`
	UniqueTracks  int         `json:"unique_tracks"`
	UniqueArtists int         `json:"unique_artists"`
	Monthly       []monthJSON `json:"monthly"`
}

type monthJSON struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Execute implements the go-flags Commander interface for ReportCommand.
func (c *ReportCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithConfig(cfg, args)
}

// executeWithConfig runs the report against a provided config (for testing).
func (c *ReportCommand) executeWithConfig(cfg *config.Config, args []string) error {
	res, err := runWithConfig(cfg, c.globals, args)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}

	totals, err := stats.Total(res.Events)
	if err != nil {
		return err
	}
	monthly, err := stats.Monthly(res.Events)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(res, totals, monthly)
	}
	return c.printHuman(totals, monthly)
}

func (c *ReportCommand) printHuman(totals *stats.Totals, monthly []stats.MonthCount) error {
	fmt.Println("Listening Overview")
	fmt.Println("==================")
	fmt.Printf("Hours listened: %.2f\n", totals.Hours)
	fmt.Printf("Unique tracks:  %d\n", totals.UniqueTracks)
	fmt.Printf("Unique artists: %d\n", totals.UniqueArtists)

	fmt.Println()
	fmt.Println("Plays per month:")
	for _, m := range monthly {
		fmt.Printf("  %s  %d\n", m.Month, m.Count)
	}

	return nil
}

func (c *ReportCommand) printJSON(res *pipeline.Result, totals *stats.Totals, monthly []stats.MonthCount) error {
	out := reportJSON{
		ReportID:      res.ReportID,
		Hours:         totals.Hours,
		UniqueTracks:  totals.UniqueTracks,
		UniqueArtists: totals.UniqueArtists,
		Monthly:       make([]monthJSON, len(monthly)),
	}
	for i, m := range monthly {
		out.Monthly[i] = monthJSON{Month: m.Month, Count: m.Count}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
