package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/wordvault/internal/database"
	"github.com/example/wordvault/internal/importer"
	"github.com/example/wordvault/internal/ingest"
	"github.com/example/wordvault/internal/scheduler"
	"github.com/example/wordvault/internal/streak"
)

func main() {
	// .env is optional; real env vars win either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	importPath := flag.String("import", "", "import vocabulary from an xlsx or csv file and exit")
	sourceLang := flag.String("source-lang", "en", "fallback source language for -import")
	targetLang := flag.String("target-lang", "es", "fallback target language for -import")
	flag.Parse()

	store, err := database.Open(database.ConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if *importPath != "" {
		runImport(store, *importPath, *sourceLang, *targetLang)
		return
	}

	tracker := streak.New(store)
	sched := scheduler.New(tracker)
	sched.Start()
	defer sched.Stop()

	log.Println("wordvault started. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v", sig)
}

func runImport(store *database.Store, path, sourceLang, targetLang string) {
	cfg := importer.DefaultImportConfig()
	cfg.FilePath = path
	cfg.SourceLang = sourceLang
	cfg.TargetLang = targetLang
	if v := os.Getenv("IMPORT_START_ROW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StartRow = n
		}
	}

	im := importer.New(ingest.NewPipeline(store))
	result, err := im.ImportFile(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Import finished: %d processed, %d created, %d skipped, %d errors",
		result.TotalProcessed, result.Created, result.Skipped, len(result.Errors))
	for _, e := range result.Errors {
		log.Printf("  %s", e)
	}
}
