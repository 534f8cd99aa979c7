package ingest

// Result holds the outcome of an ingest operation.
type Result struct {
	SessionsReceived int   `json:"sessions_received"`
	SessionsInserted int   `json:"sessions_inserted"`
	SetsReceived     int   `json:"sets_received"`
	SetsInserted     int64 `json:"sets_inserted"`

	StationsReceived int   `json:"stations_received,omitempty"`
	StationsInserted int64 `json:"stations_inserted,omitempty"`
	StationsRejected int   `json:"stations_rejected,omitempty"`

	BenchmarksReceived int   `json:"benchmarks_received,omitempty"`
	BenchmarksInserted int64 `json:"benchmarks_inserted,omitempty"`

	RejectedStations []string `json:"rejected_stations,omitempty"`

	Message string `json:"message,omitempty"`
}
