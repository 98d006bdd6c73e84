package main

import (
	"context"
	"flag"
	"log"
	"time"

	"sahityahub/internal/ingest"
	"sahityahub/pkg/database"
	"sahityahub/pkg/models"
	"sahityahub/pkg/utils"
)

func main() {
	cfg := utils.LoadIngestConfig()
	var (
		writersPath = flag.String("writers", cfg.WritersPath, "path to the writers JSON source")
		poetsPath   = flag.String("poets", cfg.PoetsPath, "path to the poets JSON source")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	// Order matters: writers are processed first and win identity for any
	// name both sources carry.
	sources := []ingest.Source{
		ingest.NewWriterSource(*writersPath),
		ingest.NewPoetSource(*poetsPath),
	}

	perSource := make([][]models.AuthorDraft, 0, len(sources))
	for _, src := range sources {
		log.Printf("[ingest] loading from %s", src.Name())
		drafts, err := src.Load(ctx)
		if err != nil {
			log.Printf("[ingest] source %s error: %v", src.Name(), err)
			// keep going: one broken source should not kill ingestion
			continue
		}
		log.Printf("[ingest] source %s: %d records", src.Name(), len(drafts))
		perSource = append(perSource, drafts)
	}

	merged := ingest.Merge(perSource...)
	log.Printf("[ingest] merged authors: %d", len(merged))

	stats, err := ingest.SaveCatalog(ctx, db, merged)
	if err != nil {
		log.Fatalf("save failed: %v", err)
	}

	log.Printf("[ingest] inserted %d authors and %d works", stats.AuthorsInserted, stats.WorksInserted)
}
