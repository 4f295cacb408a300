package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"lesson-rag/internal/config"
)

// Document is one chunk row. Rows for a (course, lesson) pair form that lesson's index.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`
	ID            int64           `bun:"id,pk,autoincrement"`
	Course        string          `bun:"course,notnull"`
	Lesson        int             `bun:"lesson,notnull"`
	ChunkID       int             `bun:"chunk_id,notnull"`
	Content       string          `bun:"content,notnull"`
	Embedding     pgvector.Vector `bun:"embedding,notnull,type:vector"`
}

// NewDB wraps sqldb with the postgres dialect, logging queries when debug is set.
func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

// ConnectDB opens the database with the configured driver.
func ConnectDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database url is required")
	}
	switch cfg.Driver {
	case "postgres":
		return sql.Open("postgres", cfg.URL)
	case "pgdriver", "":
		dsn := cfg.URL
		if !strings.Contains(dsn, "sslmode=") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "sslmode=disable"
		}
		opts := []pgdriver.Option{pgdriver.WithDSN(dsn)}
		if cfg.Password != "" {
			opts = append(opts, pgdriver.WithPassword(cfg.Password))
		}
		return sql.OpenDB(pgdriver.NewConnector(opts...)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// InitDB makes sure the vector extension and documents table exist.
func InitDB(ctx context.Context, db *bun.DB) error {
	if _, err := db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("failed to enable pgvector: %w", err)
	}
	if _, err := db.NewCreateTable().Model((*Document)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

// ReplaceDocuments swaps the rows of one lesson in a single transaction.
func ReplaceDocuments(ctx context.Context, db *bun.DB, course string, lesson int, docs []Document) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Document)(nil)).
			Where("course = ?", course).
			Where("lesson = ?", lesson).
			Exec(ctx); err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&docs).Exec(ctx)
		return err
	})
}

// CountDocuments returns the number of chunks stored for a lesson.
func CountDocuments(ctx context.Context, db *bun.DB, course string, lesson int) (int, error) {
	return db.NewSelect().
		Model((*Document)(nil)).
		Where("course = ?", course).
		Where("lesson = ?", lesson).
		Count(ctx)
}

// SearchDocuments returns the limit nearest rows of a lesson by cosine distance.
func SearchDocuments(ctx context.Context, db *bun.DB, course string, lesson int, queryEmbedding []float32, limit int) ([]Document, error) {
	var docs []Document
	err := db.NewSelect().
		Model(&docs).
		Column("id", "course", "lesson", "chunk_id", "content").
		Where("course = ?", course).
		Where("lesson = ?", lesson).
		OrderExpr("embedding <=> ?", pgvector.NewVector(queryEmbedding)).
		OrderExpr("id ASC").
		Limit(limit).
		Scan(ctx)
	return docs, err
}
