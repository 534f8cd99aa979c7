package setcsv

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Session is one training session reassembled from flat CSV rows.
type Session struct {
	Name     string
	Date     time.Time
	Duration string
	Sets     []Set
}

// Set is one parsed CSV row.
type Set struct {
	ExerciseName     string
	Equipment        string
	Number           int
	WeightKg         float64
	IsBodyweightPlus bool
	Reps             int
	DistanceM        float64
	RIR              float64
	IsWarmup         bool
}

// Expected header columns, in order.
var columns = []string{
	"date", "session", "duration", "exercise", "equipment",
	"set", "weight_kg", "reps", "distance_m", "rir", "warmup",
}

// Parse reads a flat set-log CSV export and groups rows into sessions.
// Rows are semicolon separated; sessions are keyed by date plus name and
// must appear contiguously.
func Parse(r io.Reader) ([]Session, error) {
	scanner := bufio.NewScanner(r)
	var sessions []Session
	var current *Session
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ";")

		// Header row
		if lineNum == 1 {
			if err := checkHeader(fields); err != nil {
				return nil, err
			}
			continue
		}

		if len(fields) != len(columns) {
			return nil, fmt.Errorf("line %d: got %d fields, want %d", lineNum, len(fields), len(columns))
		}

		date, err := parseDate(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		name := strings.TrimSpace(fields[1])

		if current == nil || !current.Date.Equal(date) || current.Name != name {
			if current != nil {
				sessions = append(sessions, *current)
			}
			current = &Session{
				Name:     name,
				Date:     date,
				Duration: strings.TrimSpace(fields[2]),
			}
		}

		setNum, err := strconv.Atoi(strings.TrimSpace(fields[5]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad set number %q", lineNum, fields[5])
		}
		weight, isBW := parseWeight(fields[6])
		reps, err := strconv.Atoi(strings.TrimSpace(fields[7]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad reps %q", lineNum, fields[7])
		}

		current.Sets = append(current.Sets, Set{
			ExerciseName:     strings.TrimSpace(fields[3]),
			Equipment:        strings.TrimSpace(fields[4]),
			Number:           setNum,
			WeightKg:         weight,
			IsBodyweightPlus: isBW,
			Reps:             reps,
			DistanceM:        parseEuropeanFloat(fields[8]),
			RIR:              parseRIR(fields[9]),
			IsWarmup:         parseBoolish(fields[10]),
		})
	}

	if current != nil {
		sessions = append(sessions, *current)
	}

	return sessions, scanner.Err()
}

func checkHeader(fields []string) error {
	if len(fields) != len(columns) {
		return fmt.Errorf("header: got %d columns, want %d", len(fields), len(columns))
	}
	for i, want := range columns {
		if strings.ToLower(strings.TrimSpace(fields[i])) != want {
			return fmt.Errorf("header: column %d is %q, want %q", i+1, fields[i], want)
		}
	}
	return nil
}

// parseDate parses "2026-02-19" or "2026-02-19 16:54" into a time.Time.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

// parseWeight handles European decimals and bodyweight-plus notation.
// "+35" -> (35, true), "102,5" -> (102.5, false), "+0" -> (0, true)
func parseWeight(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") {
		return parseEuropeanFloat(s[1:]), true
	}
	return parseEuropeanFloat(s), false
}

// parseRIR returns -1 for an empty field, meaning untracked.
func parseRIR(s string) float64 {
	if strings.TrimSpace(s) == "" {
		return -1
	}
	return parseEuropeanFloat(s)
}

// parseEuropeanFloat converts a European decimal string to float64.
// "102,5" -> 102.5, "0,5" -> 0.5
func parseEuropeanFloat(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseBoolish(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b
}
