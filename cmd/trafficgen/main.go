package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gotraffic/adapters/postgres"
	"gotraffic/internal/migration"
	"gotraffic/internal/trafficgen"
)

func main() {
	out := flag.String("out", "data/sample", "output directory for generated tables")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	format := flag.String("format", "csv", "output format: csv or xlsx")
	dbLoad := flag.Bool("db", false, "also load tables into Postgres (DATABASE_URL)")
	quiet := flag.Bool("quiet", false, "suppress the summary report")
	flag.Parse()

	if *format != "csv" && *format != "xlsx" {
		fmt.Fprintln(os.Stderr, "unsupported format:", *format)
		os.Exit(2)
	}

	cfg := trafficgen.DefaultConfig()
	cfg.Seed = *seed

	result, err := trafficgen.Generate(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error generating dataset:", err)
		os.Exit(2)
	}

	switch *format {
	case "csv":
		if err := trafficgen.WriteCSV(*out, result.Tables); err != nil {
			fmt.Fprintln(os.Stderr, "error writing csv:", err)
			os.Exit(2)
		}
	case "xlsx":
		if err := os.MkdirAll(*out, 0o755); err != nil {
			fmt.Fprintln(os.Stderr, "error creating output directory:", err)
			os.Exit(2)
		}
		if err := trafficgen.WriteXLSX(filepath.Join(*out, "traffic.xlsx"), result.Tables); err != nil {
			fmt.Fprintln(os.Stderr, "error writing xlsx:", err)
			os.Exit(2)
		}
	}

	if err := trafficgen.WriteManifest(*out, result); err != nil {
		fmt.Fprintln(os.Stderr, "error writing manifest:", err)
		os.Exit(2)
	}

	if *dbLoad {
		if err := loadWarehouse(result); err != nil {
			fmt.Fprintln(os.Stderr, "error loading warehouse:", err)
			os.Exit(2)
		}
	}

	if !*quiet {
		trafficgen.WriteSummary(os.Stdout, result.Tables, cfg)
	}

	// Validation failures are surfaced but never block persistence; the
	// caller decides whether the discrepancy is acceptable.
	if !result.Valid() {
		fmt.Fprintln(os.Stderr, "data validation failed — check violations above")
		os.Exit(1)
	}
}

func loadWarehouse(result *trafficgen.Result) error {
	_ = godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return fmt.Errorf("DATABASE_URL is required for -db")
	}

	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return fmt.Errorf("connect to warehouse: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		return err
	}
	return postgres.NewTrafficStore(db).LoadRun(ctx, result)
}
