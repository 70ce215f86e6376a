package ingest

import "encoding/json"

// requiredFields are the keys every primary-log record must carry.
var requiredFields = []string{"endTime", "artistName", "trackName", "msPlayed"}

// LoadResult holds the parsed tables of one upload batch. HasPrimary is
// false when no primary files were supplied; callers should treat that as
// "prompt the user", not as a failure.
type LoadResult struct {
	Primary    []RawEvent
	HasPrimary bool
	Summary    Summary
	Searches   []SearchEntry
}

// Load parses each bucket's files into typed tables. All primary files are
// concatenated into one table in bucket order. Only the first summary and
// first search file are read; extras are ignored.
func Load(b Buckets) (*LoadResult, error) {
	res := &LoadResult{}

	for _, f := range b.Primary {
		events, err := loadPrimary(f)
		if err != nil {
			return nil, err
		}
		res.Primary = append(res.Primary, events...)
	}
	res.HasPrimary = len(b.Primary) > 0

	if len(b.Summary) > 0 {
		f := b.Summary[0]
		var doc Summary
		if err := json.Unmarshal(f.Data, &doc); err != nil {
			return nil, &MalformedInputError{File: f.Name, Err: err}
		}
		res.Summary = doc
	}

	if len(b.Search) > 0 {
		f := b.Search[0]
		var entries []SearchEntry
		if err := json.Unmarshal(f.Data, &entries); err != nil {
			return nil, &MalformedInputError{File: f.Name, Err: err}
		}
		res.Searches = entries
	}

	return res, nil
}

// loadPrimary parses one primary-log file. Required fields are checked per
// record before decoding so that a missing key surfaces here as a
// SchemaError instead of as a zero value during aggregation.
func loadPrimary(f File) ([]RawEvent, error) {
	var rawRecords []map[string]json.RawMessage
	if err := json.Unmarshal(f.Data, &rawRecords); err != nil {
		return nil, &MalformedInputError{File: f.Name, Err: err}
	}

	events := make([]RawEvent, 0, len(rawRecords))
	for i, rec := range rawRecords {
		var missing []string
		for _, field := range requiredFields {
			if _, ok := rec[field]; !ok {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			return nil, &SchemaError{File: f.Name, Row: i, MissingFields: missing}
		}

		var ev RawEvent
		if err := unmarshalRecord(rec, &ev); err != nil {
			return nil, &SchemaError{File: f.Name, Row: i, Reason: err.Error()}
		}
		if ev.MsPlayed < 0 {
			return nil, &SchemaError{File: f.Name, Row: i, Reason: "msPlayed is negative"}
		}
		events = append(events, ev)
	}

	return events, nil
}

func unmarshalRecord(rec map[string]json.RawMessage, ev *RawEvent) error {
	if err := json.Unmarshal(rec["endTime"], &ev.EndTime); err != nil {
		return err
	}
	if err := json.Unmarshal(rec["artistName"], &ev.ArtistName); err != nil {
		return err
	}
	if err := json.Unmarshal(rec["trackName"], &ev.TrackName); err != nil {
		return err
	}
	return json.Unmarshal(rec["msPlayed"], &ev.MsPlayed)
}
