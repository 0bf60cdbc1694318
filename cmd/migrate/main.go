package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gotraffic/internal"
	"gotraffic/internal/migration"
)

func main() {
	godotenv.Load()
	url := flag.String("url", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	timeout := flag.Duration("timeout", 30*time.Second, "migration timeout")
	flag.Parse()

	if *url == "" {
		fmt.Fprintln(os.Stderr, "usage: migrate -url <database_url> (or set DATABASE_URL)")
		os.Exit(2)
	}

	logger := internal.DefaultLogger

	db, err := sqlx.Connect("postgres", *url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(2)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
	logger.Info("warehouse schema %s is up to date", runner.Version())
}
