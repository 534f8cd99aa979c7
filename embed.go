package hyroxlab

import "embed"

// WebFS holds the built frontend, embedded into the server binary.
//
//go:embed web/dist
var WebFS embed.FS
