package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/meltforce/hyroxlab/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "HyroxLab server URL (e.g. https://hyroxlab.tail1234.ts.net)")
	exportPath := flag.String("path", "", "path to export directory (or parent containing Exports/)")
	apiKey := flag.String("api-key", os.Getenv("HYROXLAB_API_KEY"), "ingest API key (or HYROXLAB_API_KEY env)")
	dryRun := flag.Bool("dry-run", false, "parse and validate but don't send to server")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("hyroxlab-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: hyroxlab-import -server <URL> -path <export dir> [-api-key KEY] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *serverURL == "" && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -server is required (or use -dry-run)\n")
		os.Exit(1)
	}
	if *apiKey == "" && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -api-key is required (or use -dry-run)\n")
		os.Exit(1)
	}

	*serverURL = strings.TrimRight(*serverURL, "/")

	// Resolve export directory
	exportDir := upload.ResolveExportDir(*exportPath)
	info, err := os.Stat(exportDir)
	if err != nil || !info.IsDir() {
		log.Error("export directory not found", "path", exportDir, "original", *exportPath)
		os.Exit(1)
	}
	log.Info("using export directory", "path", exportDir)

	// Open state database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	stateDir := filepath.Join(homeDir, ".hyroxlab-import")

	state, err := upload.OpenStateDB(stateDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	// Create client (nil-safe in dry-run mode)
	var client *upload.Client
	if !*dryRun {
		client = upload.NewClient(*serverURL, *apiKey)
	}

	if *dryRun {
		log.Info("DRY RUN mode: files will be parsed and validated but not sent")
	}

	// Run upload
	uploader := upload.New(client, state, exportDir, *dryRun, log)
	stats, err := uploader.Run()
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("import complete")
}

func printStats(stats *upload.Stats) {
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("  Files total:      %d\n", stats.FilesTotal)
	fmt.Printf("  Files uploaded:   %d\n", stats.FilesUploaded)
	fmt.Printf("  Files skipped:    %d (already sent)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:    %d\n", stats.FilesErrored)
	fmt.Println()
	fmt.Printf("  Sessions:         %d\n", stats.SessionsSent)
	fmt.Printf("  Sets:             %d\n", stats.SetsSent)
	fmt.Printf("  Station results:  %d\n", stats.StationsSent)
	fmt.Printf("  5k benchmarks:    %d\n", stats.BenchmarksSent)

	if len(stats.RejectedStations) > 0 {
		fmt.Printf("\n  Rejected stations (unrecognized names):\n")
		for _, s := range stats.RejectedStations {
			fmt.Printf("    - %s\n", s)
		}
	}
	fmt.Println()
}
