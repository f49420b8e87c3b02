// Command import-words loads a spreadsheet of vocabulary words into the
// shared word bank.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/henryli127-lang/volca/internal/database"
	"github.com/henryli127-lang/volca/internal/excel"
)

func main() {
	var (
		databaseURL = flag.String("db", os.Getenv("DATABASE_URL"), "Postgres URL (or set DATABASE_URL env)")
		filePath    = flag.String("file", "", "path to the .xlsx word list")
		sheet       = flag.String("sheet", "Sheet1", "sheet name to import")
		language    = flag.String("lang", "en", "language of the imported words")
		noHeader    = flag.Bool("no-header", false, "treat the first row as data")
		verbose     = flag.Bool("verbose", false, "Verbose logging")
	)
	flag.Parse()

	if *databaseURL == "" {
		log.Fatal("Postgres URL required (--db or DATABASE_URL env)")
	}
	if *filePath == "" {
		log.Fatal("word list required (--file words.xlsx)")
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.Connect(ctx, *databaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	importCfg := excel.ImportConfig{
		FilePath:   *filePath,
		SheetName:  *sheet,
		Language:   *language,
		SkipHeader: !*noHeader,
	}

	result, err := excel.ImportWords(ctx, database.NewWordRepo(pool), importCfg)
	if err != nil {
		slog.Error("Import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Import finished",
		"processed", result.TotalProcessed,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)
	for _, e := range result.Errors {
		slog.Warn("Row failed", "detail", e)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
