package pgvector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"homematch/internal/model"
	"homematch/internal/vectorstore"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	pgv "github.com/pgvector/pgvector-go"
)

// Store keeps embedded listing chunks in PostgreSQL with the pgvector
// extension. Rebuild drops and recreates the chunk table, so the table is
// the single index location and rebuilding it is destructive.
//
// Scores are cosine distance from the <=> operator: lower is better.
type Store struct {
	db *sqlx.DB
}

// NewStore connects to PostgreSQL and returns a store handle.
func NewStore(dsn string, maxConn, maxIdleConn int) (*Store, error) {
	// Disable prepared statement caching to avoid "unnamed prepared
	// statement does not exist" errors behind connection poolers.
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Rebuild drops the chunk table and recreates it with the embedding
// dimension of this batch, then inserts every chunk in one transaction.
func (s *Store) Rebuild(ctx context.Context, chunks []model.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	if len(vectors) == 0 {
		return fmt.Errorf("refusing to build an empty index")
	}
	dim := len(vectors[0])

	if _, err := s.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("failed to enable pgvector extension: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS listing_chunks`); err != nil {
		return fmt.Errorf("failed to drop existing index table: %w", err)
	}
	createStmt := fmt.Sprintf(`
		CREATE TABLE listing_chunks (
			id SERIAL PRIMARY KEY,
			listing_id INT NOT NULL,
			chunk_index INT NOT NULL,
			source TEXT NOT NULL,
			neighborhood TEXT NOT NULL,
			price BIGINT,
			bedrooms INT,
			bathrooms DOUBLE PRECISION,
			house_size INT,
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL
		)`, dim)
	if _, err := s.db.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("failed to create index table: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO listing_chunks
			(listing_id, chunk_index, source, neighborhood, price, bedrooms, bathrooms, house_size, content, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, ch := range chunks {
		if len(vectors[i]) != dim {
			return fmt.Errorf("vector %d has dimension %d, want %d", i, len(vectors[i]), dim)
		}
		md := ch.Metadata
		_, err := stmt.ExecContext(ctx,
			md.ListingID, md.ChunkIndex, md.Source, md.Neighborhood,
			md.Price, md.Bedrooms, md.Bathrooms, md.HouseSize,
			ch.Text, pgv.NewVector(vectors[i]),
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index rebuild: %w", err)
	}
	return nil
}

type chunkRow struct {
	ListingID    int      `db:"listing_id"`
	ChunkIndex   int      `db:"chunk_index"`
	Source       string   `db:"source"`
	Neighborhood string   `db:"neighborhood"`
	Price        *int     `db:"price"`
	Bedrooms     *int     `db:"bedrooms"`
	Bathrooms    *float64 `db:"bathrooms"`
	HouseSize    *int     `db:"house_size"`
	Content      string   `db:"content"`
	Score        float64  `db:"score"`
}

// Search returns up to topK chunks ordered by cosine distance to the query
// vector, nearest first. The distance is returned as the score unchanged.
func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]model.SearchResult, error) {
	if topK <= 0 {
		topK = 3
	}
	ready, err := s.Ready(ctx)
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, vectorstore.ErrIndexMissing
	}

	var rows []chunkRow
	query := `
		SELECT listing_id, chunk_index, source, neighborhood, price, bedrooms, bathrooms, house_size, content,
			embedding <=> $1 AS score
		FROM listing_chunks
		ORDER BY embedding <=> $1
		LIMIT $2`
	if err := s.db.SelectContext(ctx, &rows, query, pgv.NewVector(vector), topK); err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}

	results := make([]model.SearchResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, model.SearchResult{
			Content: r.Content,
			Metadata: model.ChunkMetadata{
				ListingID:    r.ListingID,
				Neighborhood: r.Neighborhood,
				Price:        r.Price,
				Bedrooms:     r.Bedrooms,
				Bathrooms:    r.Bathrooms,
				HouseSize:    r.HouseSize,
				Source:       r.Source,
				ChunkIndex:   r.ChunkIndex,
			},
			Score: r.Score,
		})
	}
	return results, nil
}

// Ready reports whether the chunk table exists.
func (s *Store) Ready(ctx context.Context) (bool, error) {
	var regclass *string
	if err := s.db.GetContext(ctx, &regclass, `SELECT to_regclass('listing_chunks')::text`); err != nil {
		return false, fmt.Errorf("failed to check index table: %w", err)
	}
	return regclass != nil, nil
}
