package ingest

import (
	"fmt"
	"strings"
)

// MalformedInputError reports a file whose contents are not valid JSON.
type MalformedInputError struct {
	File string
	Err  error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("file %s is not valid JSON: %v", e.File, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// SchemaError reports a structurally valid JSON record that is missing
// required fields, or carries values outside their allowed range.
type SchemaError struct {
	File          string
	Row           int
	MissingFields []string
	Reason        string
}

func (e *SchemaError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("file %s, record %d: missing required fields: %s",
			e.File, e.Row, strings.Join(e.MissingFields, ", "))
	}
	return fmt.Sprintf("file %s, record %d: %s", e.File, e.Row, e.Reason)
}

// ResourceLimitError reports an upload batch exceeding a configured bound.
type ResourceLimitError struct {
	Kind   string // "bytes" or "rows"
	Limit  int64
	Actual int64
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("input exceeds %s limit: %d > %d", e.Kind, e.Actual, e.Limit)
}
