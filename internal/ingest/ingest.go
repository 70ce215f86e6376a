// Package ingest classifies and parses the JSON files of a personal
// streaming-history export into typed in-memory tables.
package ingest

import "strings"

// Name tokens used to classify uploaded files. Matching is a case-sensitive
// substring test against the file name, mirroring the export's own naming.
const (
	primaryToken = "StreamingHistory"
	summaryToken = "Wrapped"
	searchToken  = "SearchQueries"
)

// File is one uploaded blob: a name and its raw bytes.
type File struct {
	Name string
	Data []byte
}

// Buckets groups uploaded files by category. A file matching none of the
// known tokens is dropped.
type Buckets struct {
	Primary []File
	Summary []File
	Search  []File
}

// RawEvent is one play event exactly as it appears in a primary export file.
type RawEvent struct {
	EndTime    string `json:"endTime"`
	ArtistName string `json:"artistName"`
	TrackName  string `json:"trackName"`
	MsPlayed   int64  `json:"msPlayed"`
}

// SearchEntry is one row of a search-query export file. Fields the export
// carries beyond these two are ignored.
type SearchEntry struct {
	SearchTime  string `json:"searchTime"`
	SearchQuery string `json:"searchQuery"`
}

// Summary is the parsed annual-summary document. Its shape varies between
// export versions, so it stays an untyped tree.
type Summary map[string]interface{}

// Classify partitions files into buckets by name token. Relative order
// within each bucket follows the input order.
func Classify(files []File) Buckets {
	var b Buckets
	for _, f := range files {
		switch {
		case strings.Contains(f.Name, primaryToken):
			b.Primary = append(b.Primary, f)
		case strings.Contains(f.Name, summaryToken):
			b.Summary = append(b.Summary, f)
		case strings.Contains(f.Name, searchToken):
			b.Search = append(b.Search, f)
		}
	}
	return b
}
