package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store provides persistence for generation history.
type Store struct {
	db *sql.DB
}

// NewStore creates a store for generation records.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// GenerationRecord is one recorded generate invocation.
type GenerationRecord struct {
	ID           int64
	CreatedAt    string
	Directive    string
	Layer        string
	TemplatePath string
	Status       string
	ErrorKind    string
	Destination  string
}

// RecordGeneration inserts one generation record.
func (s *Store) RecordGeneration(ctx context.Context, rec GenerationRecord) error {
	createdAt := rec.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO generations(created_at, directive, layer, template_path, status, error_kind, destination)
		VALUES(?, ?, ?, ?, ?, ?, ?)`,
		createdAt, rec.Directive, rec.Layer, rec.TemplatePath, rec.Status, rec.ErrorKind, rec.Destination); err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}
	return nil
}

// ListGenerations returns the most recent records, newest first.
func (s *Store) ListGenerations(ctx context.Context, limit int) ([]GenerationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, directive, layer, template_path, status, error_kind, destination
		FROM generations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []GenerationRecord
	for rows.Next() {
		var rec GenerationRecord
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.Directive, &rec.Layer, &rec.TemplatePath, &rec.Status, &rec.ErrorKind, &rec.Destination); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generations: %w", err)
	}
	return out, nil
}
