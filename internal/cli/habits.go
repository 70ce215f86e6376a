package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/replay/internal/config"
	"github.com/runnerr0/replay/internal/stats"
)

type hourJSON struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type dayJSON struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type habitsJSON struct {
	ReportID string     `json:"report_id"`
	Hourly   []hourJSON `json:"hourly"`
	Weekly   []dayJSON  `json:"weekly"`
}

// Execute implements the go-flags Commander interface for HabitsCommand.
func (c *HabitsCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithConfig(cfg, args)
}

// executeWithConfig runs the histograms against a provided config (for testing).
func (c *HabitsCommand) executeWithConfig(cfg *config.Config, args []string) error {
	res, err := runWithConfig(cfg, c.globals, args)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}

	hourly, err := stats.Hourly(res.Events)
	if err != nil {
		return err
	}
	weekly, err := stats.Weekly(res.Events)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		out := habitsJSON{
			ReportID: res.ReportID,
			Hourly:   toHourJSON(hourly),
			Weekly:   toDayJSON(weekly),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println("Plays by Hour of Day")
	fmt.Println("====================")
	maxHour := 0
	for _, h := range hourly {
		if h.Count > maxHour {
			maxHour = h.Count
		}
	}
	for _, h := range hourly {
		fmt.Printf("%02d:00 %s %d\n", h.Hour, bar(h.Count, maxHour), h.Count)
	}

	fmt.Println()
	fmt.Println("Plays by Day of Week")
	fmt.Println("====================")
	maxDay := 0
	for _, d := range weekly {
		if d.Count > maxDay {
			maxDay = d.Count
		}
	}
	for _, d := range weekly {
		fmt.Printf("%-9s %s %d\n", d.Day, bar(d.Count, maxDay), d.Count)
	}

	return nil
}

// bar renders a count as a proportional text bar, 40 columns at most.
func bar(count, max int) string {
	if max == 0 {
		return ""
	}
	width := count * 40 / max
	return strings.Repeat("#", width)
}

func toHourJSON(hourly []stats.HourCount) []hourJSON {
	out := make([]hourJSON, len(hourly))
	for i, h := range hourly {
		out[i] = hourJSON{Hour: h.Hour, Count: h.Count}
	}
	return out
}

func toDayJSON(weekly []stats.DayCount) []dayJSON {
	out := make([]dayJSON, len(weekly))
	for i, d := range weekly {
		out[i] = dayJSON{Day: d.Day, Count: d.Count}
	}
	return out
}
