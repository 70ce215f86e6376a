package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/runnerr0/replay/internal/config"
	"github.com/runnerr0/replay/internal/ingest"
	"github.com/runnerr0/replay/internal/normalize"
	"github.com/runnerr0/replay/internal/pipeline"
	"github.com/runnerr0/replay/internal/stats"
)

// fullReportJSON is the complete report returned by the upload endpoint.
type fullReportJSON struct {
	ReportID      string      `json:"report_id"`
	Hours         float64     `json:"hours"`
	UniqueTracks  int         `json:"unique_tracks"`
	UniqueArtists int         `json:"unique_artists"`
	Monthly       []monthJSON `json:"monthly"`
	TopTracks     []rankJSON  `json:"top_tracks"`
	TopArtists    []rankJSON  `json:"top_artists"`
	Hourly        []hourJSON  `json:"hourly"`
	Weekly        []dayJSON   `json:"weekly"`
}

type errorJSON struct {
	Error string `json:"error"`
	Hint  string `json:"hint"`
}

// server handles upload requests against a fixed configuration.
type server struct {
	cfg *config.Config
}

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("replay %s listening on http://%s\n", c.version, addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// newRouter builds the HTTP handler for the upload service. RecoveryHandler
// keeps a failing request from taking the whole session down.
func newRouter(cfg *config.Config) http.Handler {
	s := &server{cfg: cfg}

	r := mux.NewRouter()
	r.HandleFunc("/report", s.handleReport).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	return handlers.RecoveryHandler()(handlers.LoggingHandler(os.Stderr, r))
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleReport accepts a multipart upload of export files and returns the
// full aggregated report.
func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	files, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := pipeline.Run(files, s.cfg)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	report, err := buildFullReport(res)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// readUpload collects every file part of a multipart request, regardless of
// field name.
func readUpload(r *http.Request) ([]ingest.File, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("expected a multipart file upload: %w", err)
	}

	var files []ingest.File
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading upload: %w", err)
		}
		if part.FileName() == "" {
			continue
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return nil, fmt.Errorf("reading uploaded file %s: %w", part.FileName(), err)
		}
		files = append(files, ingest.File{Name: part.FileName(), Data: data})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("upload contained no files")
	}
	return files, nil
}

// buildFullReport computes every aggregation over the canonical table.
func buildFullReport(res *pipeline.Result) (*fullReportJSON, error) {
	totals, err := stats.Total(res.Events)
	if err != nil {
		return nil, err
	}
	monthly, err := stats.Monthly(res.Events)
	if err != nil {
		return nil, err
	}
	topTracks, err := stats.TopN(res.Events, stats.FieldTrack, 10)
	if err != nil {
		return nil, err
	}
	topArtists, err := stats.TopN(res.Events, stats.FieldArtist, 10)
	if err != nil {
		return nil, err
	}
	hourly, err := stats.Hourly(res.Events)
	if err != nil {
		return nil, err
	}
	weekly, err := stats.Weekly(res.Events)
	if err != nil {
		return nil, err
	}

	out := &fullReportJSON{
		ReportID:      res.ReportID,
		Hours:         totals.Hours,
		UniqueTracks:  totals.UniqueTracks,
		UniqueArtists: totals.UniqueArtists,
		TopTracks:     toRankJSON(topTracks),
		TopArtists:    toRankJSON(topArtists),
		Hourly:        toHourJSON(hourly),
		Weekly:        toDayJSON(weekly),
		Monthly:       make([]monthJSON, len(monthly)),
	}
	for i, m := range monthly {
		out.Monthly[i] = monthJSON{Month: m.Month, Count: m.Count}
	}
	return out, nil
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	var limitErr *ingest.ResourceLimitError
	if errors.As(err, &limitErr) {
		return http.StatusRequestEntityTooLarge
	}

	var malformed *ingest.MalformedInputError
	var schema *ingest.SchemaError
	var tsParse *normalize.TimestampParseError
	if errors.As(err, &malformed) || errors.As(err, &schema) || errors.As(err, &tsParse) ||
		errors.Is(err, pipeline.ErrNoPrimaryData) {
		return http.StatusBadRequest
	}

	var noData *stats.NoDataError
	if errors.As(err, &noData) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorJSON{
		Error: err.Error(),
		Hint:  "Check that you uploaded valid streaming-history JSON export files.",
	})
}
