package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/replay/internal/ingest"
)

func rawEvent(endTime string, ms int64) ingest.RawEvent {
	return ingest.RawEvent{
		EndTime:    endTime,
		ArtistName: "Artist",
		TrackName:  "Track",
		MsPlayed:   ms,
	}
}

// --- timestamp handling ---

func TestParseTimestamp_SecondPrecision(t *testing.T) {
	ts, err := ParseTimestamp("2024-01-01 06:30:15")
	require.NoError(t, err)
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, 15, ts.Second())
}

func TestParseTimestamp_MinutePrecision(t *testing.T) {
	ts, err := ParseTimestamp("2024-01-01 06:30")
	require.NoError(t, err)
	assert.Equal(t, 30, ts.Minute())
	assert.Equal(t, 0, ts.Second())
}

func TestParseTimestamp_Invalid(t *testing.T) {
	_, err := ParseTimestamp("01/01/2024 6:30pm")
	assert.Error(t, err)
}

func TestDeclareUTC_PreservesWallClock(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	in := time.Date(2024, 6, 1, 12, 0, 0, 0, loc)

	out := DeclareUTC(in)

	assert.Equal(t, time.UTC, out.Location())
	assert.Equal(t, 12, out.Hour())
	assert.Equal(t, in.Minute(), out.Minute())
}

func TestConvertZone_StandardTimeOffset(t *testing.T) {
	// January is outside US daylight saving: UTC-6 for US/Central.
	loc, err := time.LoadLocation("US/Central")
	require.NoError(t, err)
	utc := time.Date(2024, 1, 1, 6, 30, 0, 0, time.UTC)

	local := ConvertZone(utc, loc)

	assert.Equal(t, 0, local.Hour())
	assert.Equal(t, 30, local.Minute())
	_, offset := local.Zone()
	assert.Equal(t, -6*60*60, offset)
}

func TestConvertZone_DaylightSavingOffset(t *testing.T) {
	// July is inside US daylight saving: UTC-5, not the standard UTC-6.
	loc, err := time.LoadLocation("US/Central")
	require.NoError(t, err)
	utc := time.Date(2024, 7, 1, 6, 30, 0, 0, time.UTC)

	local := ConvertZone(utc, loc)

	assert.Equal(t, 1, local.Hour())
	_, offset := local.Zone()
	assert.Equal(t, -5*60*60, offset)
}

// --- Normalize ---

func TestNormalize_HourFromLocalizedTime(t *testing.T) {
	raw := []ingest.RawEvent{rawEvent("2024-01-01 06:30:00", 60000)}

	events, err := Normalize(raw, Options{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	// 06:30 UTC is 00:30 in US/Central; hour must come from local time.
	assert.Equal(t, 0, events[0].Hour)
}

func TestNormalize_WeekdayFromLocalizedTime(t *testing.T) {
	// 2024-03-02 01:00 UTC is still Friday evening in US/Central.
	raw := []ingest.RawEvent{rawEvent("2024-03-02 01:00:00", 60000)}

	events, err := Normalize(raw, Options{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, time.Friday, events[0].Weekday)
	assert.Equal(t, 19, events[0].Hour)
}

func TestNormalize_FiltersShortPlays(t *testing.T) {
	raw := []ingest.RawEvent{
		rawEvent("2024-01-01 10:00:00", 30001),
		rawEvent("2024-01-01 11:00:00", 30000),
		rawEvent("2024-01-01 12:00:00", 10000),
		rawEvent("2024-01-01 13:00:00", 0),
	}

	events, err := Normalize(raw, Options{})
	require.NoError(t, err)

	// Only the row strictly above the threshold survives.
	require.Len(t, events, 1)
	assert.Equal(t, int64(30001), events[0].MsPlayed)
}

func TestNormalize_CustomThreshold(t *testing.T) {
	raw := []ingest.RawEvent{
		rawEvent("2024-01-01 10:00:00", 5001),
		rawEvent("2024-01-01 11:00:00", 4999),
	}

	events, err := Normalize(raw, Options{MinPlayMs: 5000})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, int64(5001), events[0].MsPlayed)
}

func TestNormalize_ZeroThresholdUsesDefault(t *testing.T) {
	raw := []ingest.RawEvent{
		rawEvent("2024-01-01 10:00:00", 30001),
		rawEvent("2024-01-01 11:00:00", 30000),
	}

	events, err := Normalize(raw, Options{MinPlayMs: 0})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, int64(30001), events[0].MsPlayed)
}

func TestNormalize_NegativeThresholdDisablesFilter(t *testing.T) {
	raw := []ingest.RawEvent{
		rawEvent("2024-01-01 10:00:00", 30000),
		rawEvent("2024-01-01 11:00:00", 0),
	}

	events, err := Normalize(raw, Options{MinPlayMs: -1})
	require.NoError(t, err)

	assert.Len(t, events, 2)
}

func TestNormalize_PreservesRowOrder(t *testing.T) {
	raw := []ingest.RawEvent{
		{EndTime: "2024-02-01 10:00:00", ArtistName: "B", TrackName: "T2", MsPlayed: 60000},
		{EndTime: "2024-01-01 10:00:00", ArtistName: "A", TrackName: "T1", MsPlayed: 60000},
	}

	events, err := Normalize(raw, Options{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Not re-sorted chronologically.
	assert.Equal(t, "B", events[0].Artist)
	assert.Equal(t, "A", events[1].Artist)
}

func TestNormalize_TimestampParseError(t *testing.T) {
	raw := []ingest.RawEvent{
		rawEvent("2024-01-01 10:00:00", 60000),
		rawEvent("garbage", 60000),
	}

	_, err := Normalize(raw, Options{})
	require.Error(t, err)

	var tsErr *TimestampParseError
	require.True(t, errors.As(err, &tsErr))
	assert.Equal(t, 1, tsErr.Row)
	assert.Equal(t, "garbage", tsErr.Value)
}

func TestNormalize_CustomZone(t *testing.T) {
	raw := []ingest.RawEvent{rawEvent("2024-01-01 06:30:00", 60000)}

	events, err := Normalize(raw, Options{Timezone: "UTC"})
	require.NoError(t, err)

	assert.Equal(t, 6, events[0].Hour)
}

func TestNormalize_UnknownZone(t *testing.T) {
	raw := []ingest.RawEvent{rawEvent("2024-01-01 06:30:00", 60000)}

	_, err := Normalize(raw, Options{Timezone: "Mars/Olympus"})
	assert.Error(t, err)
}

func TestNormalize_EmptyInput(t *testing.T) {
	events, err := Normalize(nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, events)
}
