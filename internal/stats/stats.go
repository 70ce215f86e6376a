// Package stats computes rankings, histograms, and time series over the
// canonical event table. Every function is pure: input tables are never
// mutated, and an empty table is always an explicit NoDataError rather than
// an empty-but-successful result.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/runnerr0/replay/internal/normalize"
)

// Field selects which entity a ranking counts.
type Field string

const (
	FieldTrack  Field = "track"
	FieldArtist Field = "artist"
)

// NoDataError reports an aggregation with no rows to operate on. Artist is
// set when a drill-down asked for an entity absent from the table.
type NoDataError struct {
	Artist string
}

func (e *NoDataError) Error() string {
	if e.Artist != "" {
		return fmt.Sprintf("no plays found for artist %q", e.Artist)
	}
	return "no play data to aggregate"
}

// Totals summarizes the whole table.
type Totals struct {
	Hours         float64
	UniqueTracks  int
	UniqueArtists int
}

// MonthCount pairs a calendar month ("2006-01", local zone) with its play count.
type MonthCount struct {
	Month string
	Count int
}

// RankEntry pairs an entity name with its play count.
type RankEntry struct {
	Name  string
	Count int
}

// HourCount pairs an hour of day (0-23) with its play count.
type HourCount struct {
	Hour  int
	Count int
}

// DayCount pairs a day name with its play count.
type DayCount struct {
	Day   string
	Count int
}

// ArtistReport is the drill-down view for one artist: the filtered sub-table
// plus its own top tracks and hourly histogram.
type ArtistReport struct {
	Artist    string
	Events    []normalize.Event
	TopTracks []RankEntry
	Hourly    []HourCount
}

// weekdayOrder fixes the Monday-first rendering order for weekly histograms.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Total returns hours listened plus distinct track and artist counts.
func Total(events []normalize.Event) (*Totals, error) {
	if len(events) == 0 {
		return nil, &NoDataError{}
	}

	var ms int64
	tracks := make(map[string]struct{})
	artists := make(map[string]struct{})
	for _, e := range events {
		ms += e.MsPlayed
		tracks[e.Track] = struct{}{}
		artists[e.Artist] = struct{}{}
	}

	return &Totals{
		Hours:         float64(ms) / (1000 * 60 * 60),
		UniqueTracks:  len(tracks),
		UniqueArtists: len(artists),
	}, nil
}

// Monthly groups plays by calendar month of the localized timestamp and
// returns the series in chronological order. Months with zero plays are
// absent from the series; callers needing a dense series fill gaps
// themselves.
func Monthly(events []normalize.Event) ([]MonthCount, error) {
	if len(events) == 0 {
		return nil, &NoDataError{}
	}

	counts := make(map[string]int)
	for _, e := range events {
		counts[e.EndTime.Format("2006-01")]++
	}

	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	// Lexicographic order on "2006-01" labels is chronological.
	sort.Strings(months)

	series := make([]MonthCount, len(months))
	for i, m := range months {
		series[i] = MonthCount{Month: m, Count: counts[m]}
	}
	return series, nil
}

// TopN returns the n most frequent values of field, descending by count.
// Ties break by first-encountered row order. When n exceeds the number of
// distinct values, all of them are returned without padding.
func TopN(events []normalize.Event, field Field, n int) ([]RankEntry, error) {
	if len(events) == 0 {
		return nil, &NoDataError{}
	}
	if n <= 0 {
		return nil, fmt.Errorf("invalid ranking size %d", n)
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string
	for i, e := range events {
		var name string
		switch field {
		case FieldTrack:
			name = e.Track
		case FieldArtist:
			name = e.Artist
		default:
			return nil, fmt.Errorf("unknown ranking field %q", field)
		}
		if _, ok := counts[name]; !ok {
			firstSeen[name] = i
			order = append(order, name)
		}
		counts[name]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if n > len(order) {
		n = len(order)
	}
	ranking := make([]RankEntry, n)
	for i := 0; i < n; i++ {
		ranking[i] = RankEntry{Name: order[i], Count: counts[order[i]]}
	}
	return ranking, nil
}

// Hourly returns all 24 hour buckets in ascending order, zero-filled.
func Hourly(events []normalize.Event) ([]HourCount, error) {
	if len(events) == 0 {
		return nil, &NoDataError{}
	}

	var buckets [24]int
	for _, e := range events {
		buckets[e.Hour]++
	}

	histogram := make([]HourCount, 24)
	for h := 0; h < 24; h++ {
		histogram[h] = HourCount{Hour: h, Count: buckets[h]}
	}
	return histogram, nil
}

// Weekly returns all seven day buckets in fixed Monday-first order,
// zero-filled, regardless of which days appear in the data.
func Weekly(events []normalize.Event) ([]DayCount, error) {
	if len(events) == 0 {
		return nil, &NoDataError{}
	}

	counts := make(map[time.Weekday]int)
	for _, e := range events {
		counts[e.Weekday]++
	}

	histogram := make([]DayCount, 0, len(weekdayOrder))
	for _, d := range weekdayOrder {
		histogram = append(histogram, DayCount{Day: d.String(), Count: counts[d]})
	}
	return histogram, nil
}

// TopArtist returns the single most-played artist.
func TopArtist(events []normalize.Event) (string, error) {
	ranking, err := TopN(events, FieldArtist, 1)
	if err != nil {
		return "", err
	}
	return ranking[0].Name, nil
}

// ArtistDrilldown filters the table to one artist and computes that
// sub-table's top-5 tracks and hourly histogram.
func ArtistDrilldown(events []normalize.Event, artist string) (*ArtistReport, error) {
	var sub []normalize.Event
	for _, e := range events {
		if e.Artist == artist {
			sub = append(sub, e)
		}
	}
	if len(sub) == 0 {
		return nil, &NoDataError{Artist: artist}
	}

	topTracks, err := TopN(sub, FieldTrack, 5)
	if err != nil {
		return nil, err
	}
	hourly, err := Hourly(sub)
	if err != nil {
		return nil, err
	}

	return &ArtistReport{
		Artist:    artist,
		Events:    sub,
		TopTracks: topTracks,
		Hourly:    hourly,
	}, nil
}
