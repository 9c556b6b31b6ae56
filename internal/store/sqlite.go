// Package store provides persistence backends for candidate records.
//
// This file implements the SQLite-backed candidate store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mindprobe/MindProbe/internal/models"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore is a CandidateStore backed by a local SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	mode HistoryMode
}

// NewSQLiteStore creates a new SQLite store. The DSN is a file path; the
// containing directory is created when missing.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	cfg := Opts{HistoryMode: HistoryUpsert}
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "", "historyMode", cfg.HistoryMode)

	if cfg.DSN == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}
	if !IsValidHistoryMode(cfg.HistoryMode) {
		return nil, fmt.Errorf("invalid history mode %q", cfg.HistoryMode)
	}

	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db, mode: cfg.HistoryMode}, nil
}

// SaveCandidate stores a record. In upsert mode any earlier records for the
// same user are removed in the same transaction.
func (s *SQLiteStore) SaveCandidate(rec models.CandidateRecord) error {
	prepareRecord(&rec)
	scoresJSON, err := json.Marshal(rec.Scores)
	if err != nil {
		return fmt.Errorf("failed to encode scores for %d: %w", rec.UserID, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		slog.Error("SQLiteStore SaveCandidate begin failed", "error", err, "userID", rec.UserID)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if s.mode == HistoryUpsert {
		if _, err := tx.Exec(`DELETE FROM candidates WHERE user_id = ?`, rec.UserID); err != nil {
			slog.Error("SQLiteStore SaveCandidate delete failed", "error", err, "userID", rec.UserID)
			return fmt.Errorf("failed to replace prior record for %d: %w", rec.UserID, err)
		}
	}
	_, err = tx.Exec(
		`INSERT INTO candidates (id, user_id, display_name, language, analysis_type, payload, scores, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.DisplayName, string(rec.Language), string(rec.AnalysisType),
		rec.Payload, string(scoresJSON), rec.CreatedAt,
	)
	if err != nil {
		slog.Error("SQLiteStore SaveCandidate insert failed", "error", err, "userID", rec.UserID)
		return fmt.Errorf("failed to insert candidate record for %d: %w", rec.UserID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit candidate record for %d: %w", rec.UserID, err)
	}
	slog.Debug("SQLiteStore SaveCandidate succeeded", "userID", rec.UserID, "type", rec.AnalysisType)
	return nil
}

// ListCandidates returns records matching the filter, newest first.
func (s *SQLiteStore) ListCandidates(filter CandidateFilter) ([]models.CandidateRecord, error) {
	query, args := buildListQuery(filter, "?")
	rows, err := s.db.Query(query, args...)
	if err != nil {
		slog.Error("SQLiteStore ListCandidates query failed", "error", err)
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()
	return scanCandidates(rows)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// buildListQuery assembles the filtered list statement. placeholder is "?"
// for SQLite and "$%d" numbering is handled for Postgres by the caller flag.
func buildListQuery(filter CandidateFilter, placeholder string) (string, []interface{}) {
	var conds []string
	var args []interface{}
	next := func() string {
		if placeholder == "?" {
			return "?"
		}
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.AnalysisType != "" {
		args = append(args, string(filter.AnalysisType))
		conds = append(conds, "analysis_type = "+next())
	}
	if filter.Language != "" {
		args = append(args, string(filter.Language))
		conds = append(conds, "language = "+next())
	}
	query := `SELECT id, user_id, display_name, language, analysis_type, payload, scores, created_at FROM candidates`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT " + next()
	}
	return query, args
}

// scanCandidates reads candidate rows, decoding the scores JSON column.
func scanCandidates(rows *sql.Rows) ([]models.CandidateRecord, error) {
	var records []models.CandidateRecord
	for rows.Next() {
		var rec models.CandidateRecord
		var language, analysisType, scoresJSON string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.DisplayName, &language, &analysisType,
			&rec.Payload, &scoresJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}
		rec.Language = models.Language(language)
		rec.AnalysisType = models.AnalysisType(analysisType)
		if err := json.Unmarshal([]byte(scoresJSON), &rec.Scores); err != nil {
			return nil, fmt.Errorf("failed to decode scores for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidate rows: %w", err)
	}
	return records, nil
}
