// Package session provides the per-user conversation state store.
//
// Sessions are process-resident and keyed by user id. The store is injected
// (never a package-level global) so tests stay deterministic and a future
// multi-instance deployment can swap in a shared backend.
package session

import (
	"log/slog"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mindprobe/MindProbe/internal/models"
)

// Store abstracts session persistence.
type Store interface {
	// Get returns the session for a user, or false when none exists.
	Get(userID int64) (*models.Session, bool)
	// Put stores or replaces the session for its user.
	Put(s *models.Session)
	// Delete removes the session for a user.
	Delete(userID int64)
}

// DefaultTTL is how long an inactive session survives before eviction.
const DefaultTTL = 24 * time.Hour

// cleanupInterval is how often expired sessions are purged.
const cleanupInterval = time.Hour

// CacheStore is a TTL in-process Store backed by go-cache. Inactive
// sessions expire; every Put refreshes the TTL.
type CacheStore struct {
	cache *gocache.Cache
}

// NewCacheStore creates a CacheStore with the given TTL (DefaultTTL when
// non-positive).
func NewCacheStore(ttl time.Duration) *CacheStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	slog.Debug("creating session cache store", "ttl", ttl)
	return &CacheStore{cache: gocache.New(ttl, cleanupInterval)}
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// Get returns the session for a user, or false when none exists.
func (cs *CacheStore) Get(userID int64) (*models.Session, bool) {
	v, ok := cs.cache.Get(key(userID))
	if !ok {
		return nil, false
	}
	return v.(*models.Session), true
}

// Put stores or replaces the session, refreshing its TTL.
func (cs *CacheStore) Put(s *models.Session) {
	cs.cache.Set(key(s.UserID), s, gocache.DefaultExpiration)
}

// Delete removes the session for a user.
func (cs *CacheStore) Delete(userID int64) {
	cs.cache.Delete(key(userID))
}

// GetOrCreate returns the existing session or creates and stores an idle one.
func GetOrCreate(store Store, userID int64, displayName string) *models.Session {
	if s, ok := store.Get(userID); ok {
		return s
	}
	s := models.NewSession(userID, displayName)
	store.Put(s)
	slog.Debug("session created", "userID", userID)
	return s
}
