// Package store provides persistence backends for candidate records.
//
// It includes an in-memory store for tests and development, plus SQLite and
// PostgreSQL backends selected by DSN.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindprobe/MindProbe/internal/models"
)

// HistoryMode controls what a save does to a user's earlier records.
type HistoryMode string

const (
	// HistoryUpsert keeps one record per user; a later analysis overwrites
	// the prior one (the behavior observed in production).
	HistoryUpsert HistoryMode = "upsert"
	// HistoryAppend keeps every completed analysis.
	HistoryAppend HistoryMode = "append"
)

// IsValidHistoryMode checks if the given history mode is supported.
func IsValidHistoryMode(m HistoryMode) bool {
	return m == HistoryUpsert || m == HistoryAppend
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN         string
	HistoryMode HistoryMode
}

// Option configures a store backend.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithHistoryMode sets the per-user record retention behavior.
func WithHistoryMode(mode HistoryMode) Option {
	return func(o *Opts) { o.HistoryMode = mode }
}

// CandidateFilter narrows ListCandidates results. Zero values match all.
type CandidateFilter struct {
	AnalysisType models.AnalysisType
	Language     models.Language
	Limit        int
}

// CandidateStore persists completed analyses.
type CandidateStore interface {
	// SaveCandidate stores a record, honoring the configured history mode.
	SaveCandidate(rec models.CandidateRecord) error
	// ListCandidates returns records matching the filter, newest first.
	ListCandidates(filter CandidateFilter) ([]models.CandidateRecord, error)
	// Close releases backend resources.
	Close() error
}

// prepareRecord fills generated fields before a save.
func prepareRecord(rec *models.CandidateRecord) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
}

// InMemoryStore is a CandidateStore for tests and development.
type InMemoryStore struct {
	mu      sync.Mutex
	mode    HistoryMode
	records []models.CandidateRecord
}

// NewInMemoryStore creates an in-memory candidate store.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	cfg := Opts{HistoryMode: HistoryUpsert}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &InMemoryStore{mode: cfg.HistoryMode}
}

// SaveCandidate stores a record, honoring the configured history mode.
func (s *InMemoryStore) SaveCandidate(rec models.CandidateRecord) error {
	prepareRecord(&rec)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == HistoryUpsert {
		kept := s.records[:0]
		for _, r := range s.records {
			if r.UserID != rec.UserID {
				kept = append(kept, r)
			}
		}
		s.records = kept
	}
	s.records = append(s.records, rec)
	return nil
}

// ListCandidates returns records matching the filter, newest first.
func (s *InMemoryStore) ListCandidates(filter CandidateFilter) ([]models.CandidateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.CandidateRecord
	for _, r := range s.records {
		if filter.AnalysisType != "" && r.AnalysisType != filter.AnalysisType {
			continue
		}
		if filter.Language != "" && r.Language != filter.Language {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
