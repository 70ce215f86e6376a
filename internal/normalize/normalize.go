// Package normalize converts raw play records into canonical events:
// timestamps localized to a target civil timezone, calendar fields derived,
// and negligible plays filtered out.
package normalize

import (
	"fmt"
	"time"

	"github.com/runnerr0/replay/internal/ingest"
)

// DefaultTimezone is the target zone plays are localized to.
const DefaultTimezone = "US/Central"

// DefaultMinPlayMs is the play-duration threshold. Rows at or below it are
// dropped. Fixed policy here; other implementations may expose it as a knob.
const DefaultMinPlayMs = 30000

// Naive timestamp layouts seen across export versions. Older exports carry
// minute precision only.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
}

// Event is one canonical play: localized end time plus derived calendar
// fields. Hour and Weekday come from the localized timestamp, never UTC.
type Event struct {
	Track    string
	Artist   string
	EndTime  time.Time
	Hour     int
	Weekday  time.Weekday
	MsPlayed int64
}

// Options controls normalization. Zero values fall back to the defaults; a
// negative MinPlayMs disables duration filtering entirely.
type Options struct {
	Timezone  string
	MinPlayMs int64
}

// TimestampParseError reports a raw end-time string that matched none of
// the known layouts.
type TimestampParseError struct {
	Row   int
	Value string
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("record %d: cannot parse timestamp %q", e.Row, e.Value)
}

// ParseTimestamp parses a naive export timestamp. The result carries UTC
// wall-clock values but no meaningful zone yet; see DeclareUTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// DeclareUTC rebinds a naive instant's wall-clock fields to UTC without
// shifting them. The export is known to record UTC wall-clock time, so this
// only declares the zone; it never changes the displayed value.
func DeclareUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ConvertZone shifts a zoned instant into loc, applying the historical
// daylight-saving offset in effect at that instant.
func ConvertZone(t time.Time, loc *time.Location) time.Time {
	return t.In(loc)
}

// Normalize builds the canonical event table from raw records. Row order is
// preserved; rows at or below the play-duration threshold are dropped.
func Normalize(raw []ingest.RawEvent, opts Options) ([]Event, error) {
	zone := opts.Timezone
	if zone == "" {
		zone = DefaultTimezone
	}
	minPlay := opts.MinPlayMs
	if minPlay == 0 {
		minPlay = DefaultMinPlayMs
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", zone, err)
	}

	events := make([]Event, 0, len(raw))
	for i, r := range raw {
		naive, err := ParseTimestamp(r.EndTime)
		if err != nil {
			return nil, &TimestampParseError{Row: i, Value: r.EndTime}
		}

		local := ConvertZone(DeclareUTC(naive), loc)

		if r.MsPlayed <= minPlay {
			continue
		}

		events = append(events, Event{
			Track:    r.TrackName,
			Artist:   r.ArtistName,
			EndTime:  local,
			Hour:     local.Hour(),
			Weekday:  local.Weekday(),
			MsPlayed: r.MsPlayed,
		})
	}

	return events, nil
}
