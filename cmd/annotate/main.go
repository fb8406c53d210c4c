// Command annotate runs the extraction pipeline over input files (or
// stdin) and writes annotated documents as JSON to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/promptner/promptner/internal/config"
	"github.com/promptner/promptner/internal/model"
	"github.com/promptner/promptner/internal/pipeline"
	"github.com/promptner/promptner/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := flag.String("config", "config/config.toml", "path to the pipeline configuration file")
	persist := flag.Bool("store", false, "persist annotations to the configured graph store")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	p, err := pipeline.Assemble(ctx, cfg, pipeline.DefaultRegistry())
	if err != nil {
		log.Fatalf("Failed to assemble pipeline: %v", err)
	}

	var st *store.Store
	if *persist {
		if cfg.Store == nil || cfg.Store.URI == "" {
			log.Fatal("-store given but no [store] section configured")
		}
		st, err = store.New(cfg.Store.URI, cfg.Store.User, cfg.Store.Password)
		if err != nil {
			log.Fatalf("Failed to connect to annotation store: %v", err)
		}
		defer st.Close(ctx)
	}

	docs, err := readInputs(flag.Args())
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	results, err := p.ProcessBatch(ctx, docs, cfg.Concurrency.Batch)
	if err != nil {
		log.Fatalf("Failed to process documents: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, doc := range results {
		if st != nil {
			if err := st.SaveDocument(ctx, doc); err != nil {
				log.Printf("Failed to persist document %s: %v", doc.ID, err)
			}
		}
		if err := enc.Encode(doc); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
	}
}

// readInputs builds one document per file argument, or a single document
// from stdin when no files are given.
func readInputs(files []string) ([]*model.Document, error) {
	if len(files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return []*model.Document{model.NewDocument(string(data))}, nil
	}

	docs := make([]*model.Document, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, model.NewDocument(string(data)))
	}
	return docs, nil
}
