// Package store provides persistence backends for candidate records.
//
// This file implements the PostgreSQL-backed candidate store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	_ "github.com/lib/pq"

	"github.com/mindprobe/MindProbe/internal/models"
)

// Database connection pool configuration constants.
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool.
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore is a CandidateStore backed by PostgreSQL.
type PostgresStore struct {
	db   *sql.DB
	mode HistoryMode
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	cfg := Opts{HistoryMode: HistoryUpsert}
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "", "historyMode", cfg.HistoryMode)

	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}
	if !IsValidHistoryMode(cfg.HistoryMode) {
		return nil, fmt.Errorf("invalid history mode %q", cfg.HistoryMode)
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db, mode: cfg.HistoryMode}, nil
}

// SaveCandidate stores a record. In upsert mode any earlier records for the
// same user are removed in the same transaction.
func (s *PostgresStore) SaveCandidate(rec models.CandidateRecord) error {
	prepareRecord(&rec)
	scoresJSON, err := json.Marshal(rec.Scores)
	if err != nil {
		return fmt.Errorf("failed to encode scores for %d: %w", rec.UserID, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		slog.Error("PostgresStore SaveCandidate begin failed", "error", err, "userID", rec.UserID)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if s.mode == HistoryUpsert {
		if _, err := tx.Exec(`DELETE FROM candidates WHERE user_id = $1`, rec.UserID); err != nil {
			slog.Error("PostgresStore SaveCandidate delete failed", "error", err, "userID", rec.UserID)
			return fmt.Errorf("failed to replace prior record for %d: %w", rec.UserID, err)
		}
	}
	_, err = tx.Exec(
		`INSERT INTO candidates (id, user_id, display_name, language, analysis_type, payload, scores, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.UserID, rec.DisplayName, string(rec.Language), string(rec.AnalysisType),
		rec.Payload, string(scoresJSON), rec.CreatedAt,
	)
	if err != nil {
		slog.Error("PostgresStore SaveCandidate insert failed", "error", err, "userID", rec.UserID)
		return fmt.Errorf("failed to insert candidate record for %d: %w", rec.UserID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit candidate record for %d: %w", rec.UserID, err)
	}
	slog.Debug("PostgresStore SaveCandidate succeeded", "userID", rec.UserID, "type", rec.AnalysisType)
	return nil
}

// ListCandidates returns records matching the filter, newest first.
func (s *PostgresStore) ListCandidates(filter CandidateFilter) ([]models.CandidateRecord, error) {
	query, args := buildListQuery(filter, "$")
	rows, err := s.db.Query(query, args...)
	if err != nil {
		slog.Error("PostgresStore ListCandidates query failed", "error", err)
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()
	return scanCandidates(rows)
}

// Close closes the underlying database.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
