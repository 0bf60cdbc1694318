package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"gotraffic/internal"
	"gotraffic/internal/config"
	"gotraffic/internal/pipeline"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	rawDir := flag.String("raw", cfg.Data.RawDir, "directory with raw CSV exports")
	processedDir := flag.String("processed", cfg.Data.ProcessedDir, "directory for processed CSVs")
	skipNormalize := flag.Bool("skip-normalize", false, "stop after the ingest stage")
	flag.Parse()

	logger := internal.DefaultLogger

	ingested, err := pipeline.Ingest(*rawDir, *processedDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ingest failed: %v\n", err)
		os.Exit(2)
	}
	for _, r := range ingested {
		logger.Info("ingested %s: %d rows, %d duplicates dropped", r.File, r.Rows, r.Dropped)
	}
	if len(ingested) == 0 {
		logger.Warn("no recognized CSV exports found in %s", *rawDir)
	}

	if *skipNormalize {
		return
	}

	normalized, err := pipeline.Normalize(*processedDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "normalize failed: %v\n", err)
		os.Exit(2)
	}
	for _, r := range normalized {
		logger.Info("normalized %s: %d rows, %d cells adjusted", r.File, r.Rows, r.Adjusted)
	}
}
