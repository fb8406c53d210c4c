// Package store persists annotated documents to a Bolt-protocol graph
// database (Memgraph or Neo4j). Persistence is optional: the pipeline core
// never writes results anywhere unless a store is configured.
package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/promptner/promptner/internal/model"
)

type Store struct {
	driver neo4j.DriverWithContext
}

// New connects to the graph database and verifies connectivity. A bad URI
// or unreachable server fails here, at startup, not per document.
func New(uri, username, password string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Printf("Connected to graph store at %s", uri)
	return &Store{driver: driver}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) execute(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// BuildIndices creates lookup indices. Failures are logged and skipped,
// since the index may already exist.
func (s *Store) BuildIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX ON :Document(uuid);",
		"CREATE INDEX ON :Entity(text);",
		"CREATE INDEX ON :Entity(label);",
	}

	for _, q := range queries {
		if _, err := s.execute(ctx, q, nil); err != nil {
			log.Printf("Warning: failed to create index '%s': %v", q, err)
		}
	}
	return nil
}

// SaveDocument persists a processed document: one Document node, one
// Entity node per distinct (text, label) mention, and a MENTIONS edge per
// annotation carrying the span offsets.
func (s *Store) SaveDocument(ctx context.Context, doc *model.Document) error {
	now := time.Now().UTC()

	params := map[string]any{
		"uuid":       doc.ID,
		"text":       doc.Text,
		"created_at": now,
	}
	if _, err := s.execute(ctx, saveDocumentQuery, params); err != nil {
		return fmt.Errorf("failed to save document %s: %w", doc.ID, err)
	}

	for _, a := range doc.Annotations {
		edgeParams := map[string]any{
			"doc_uuid":   doc.ID,
			"text":       a.Text,
			"label":      a.Label,
			"start":      a.Start,
			"end":        a.End,
			"created_at": now,
		}
		if _, err := s.execute(ctx, saveMentionQuery, edgeParams); err != nil {
			return fmt.Errorf("failed to save mention %q in document %s: %w", a.Text, doc.ID, err)
		}
	}
	return nil
}

// EntitiesByLabel returns the distinct mention texts stored under a label.
func (s *Store) EntitiesByLabel(ctx context.Context, label string) ([]string, error) {
	result, err := s.execute(ctx, entitiesByLabelQuery, map[string]any{"label": label})
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, record := range result.Records {
		text, _ := record.Get("text")
		if s, ok := text.(string); ok {
			texts = append(texts, s)
		}
	}
	return texts, nil
}
