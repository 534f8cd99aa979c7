package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/meltforce/hyroxlab/internal/ingest/roxfit"
	"github.com/meltforce/hyroxlab/internal/ingest/setcsv"
)

// Stats tracks upload progress across an export directory.
type Stats struct {
	FilesTotal    int
	FilesUploaded int
	FilesSkipped  int
	FilesErrored  int

	SessionsSent   int64
	SetsSent       int64
	StationsSent   int64
	BenchmarksSent int64

	RejectedStations []string
}

// Uploader walks an export directory, validates each RoxFit JSON or CSV
// export locally, and POSTs the new ones to the HyroxLab server.
type Uploader struct {
	client    *Client
	state     *StateDB
	exportDir string
	dryRun    bool
	log       *slog.Logger
	stats     Stats
}

// New creates a new Uploader. client may be nil in dry-run mode.
func New(client *Client, state *StateDB, exportDir string, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client:    client,
		state:     state,
		exportDir: exportDir,
		dryRun:    dryRun,
		log:       log,
	}
}

// Run executes the upload pipeline. Files are processed in name order so
// newer exports land after older ones and re-imports settle on latest data.
func (u *Uploader) Run() (*Stats, error) {
	var files []string
	err := filepath.WalkDir(u.exportDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".csv":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return &u.stats, fmt.Errorf("walking %s: %w", u.exportDir, err)
	}
	sort.Strings(files)

	rejectedSet := map[string]bool{}

	for _, f := range files {
		u.stats.FilesTotal++

		relPath, _ := filepath.Rel(u.exportDir, f)
		info, err := os.Stat(f)
		if err != nil {
			u.log.Warn("stat failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		hash, err := HashFile(f)
		if err != nil {
			u.log.Warn("hash failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		sent, err := u.state.IsSent(relPath, info.Size(), hash)
		if err != nil {
			u.log.Warn("state check failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}
		if sent {
			u.stats.FilesSkipped++
			continue
		}

		source, err := u.processFile(f)
		if err != nil {
			u.log.Warn("upload failed", "file", relPath, "error", err)
			u.stats.FilesErrored++
			continue
		}

		for _, st := range u.stats.RejectedStations {
			rejectedSet[st] = true
		}

		if !u.dryRun {
			if err := u.state.MarkSent(relPath, info.Size(), hash, source); err != nil {
				u.log.Warn("failed to mark sent", "file", relPath, "error", err)
			}
		}
		u.stats.FilesUploaded++
	}

	u.stats.RejectedStations = u.stats.RejectedStations[:0]
	for st := range rejectedSet {
		u.stats.RejectedStations = append(u.stats.RejectedStations, st)
	}
	sort.Strings(u.stats.RejectedStations)

	return &u.stats, nil
}

// processFile validates one export locally, then sends it. Validating before
// the POST keeps malformed files from burning server round trips.
func (u *Uploader) processFile(path string) (source string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		sessions, err := setcsv.Parse(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("invalid CSV export: %w", err)
		}

		if u.dryRun {
			u.log.Info("dry-run: would send CSV", "file", filepath.Base(path), "sessions", len(sessions))
			u.stats.SessionsSent += int64(len(sessions))
			return "csv", nil
		}

		result, err := u.client.SendCSV(data)
		if err != nil {
			return "", err
		}
		u.stats.SessionsSent += int64(result.SessionsInserted)
		u.stats.SetsSent += result.SetsInserted
		return "csv", nil
	}

	var payload roxfit.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("invalid JSON export: %w", err)
	}

	if u.dryRun {
		u.log.Info("dry-run: would send JSON",
			"file", filepath.Base(path),
			"sessions", len(payload.Data.Sessions),
			"stations", len(payload.Data.StationResults),
			"benchmarks", len(payload.Data.RunBenchmarks),
		)
		u.stats.SessionsSent += int64(len(payload.Data.Sessions))
		u.stats.StationsSent += int64(len(payload.Data.StationResults))
		u.stats.BenchmarksSent += int64(len(payload.Data.RunBenchmarks))
		return "roxfit", nil
	}

	result, err := u.client.SendJSON(data)
	if err != nil {
		return "", err
	}
	u.stats.SessionsSent += int64(result.SessionsInserted)
	u.stats.SetsSent += result.SetsInserted
	u.stats.StationsSent += result.StationsInserted
	u.stats.BenchmarksSent += result.BenchmarksInserted
	u.stats.RejectedStations = append(u.stats.RejectedStations, result.RejectedStations...)
	return "roxfit", nil
}

// ResolveExportDir resolves the export directory from a user-provided path.
// If the path contains an Exports subdirectory, returns its path. Otherwise
// returns the original path.
func ResolveExportDir(path string) string {
	if filepath.Base(path) == "Exports" {
		return path
	}
	candidate := filepath.Join(path, "Exports")
	if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
		return candidate
	}
	return path
}
