package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
	"github.com/forgelabs/forge-backend/internal/vocab"
)

// SessionEntry pairs a session with its private resource ledger. The
// entry mutex serializes commands and pipeline runs for that session, so
// mutation never overlaps a run.
type SessionEntry struct {
	mu      sync.Mutex
	Session *intake.Session
	Ledger  *ResourceLedger
}

// SessionRegistry is the in-memory session store. Sessions live only for
// the conversation that created them; nothing is persisted.
type SessionRegistry interface {
	Create() *SessionEntry
	Delete(id uuid.UUID) bool
	// With runs fn while holding the session's lock. It returns false
	// when the session does not exist.
	With(id uuid.UUID, fn func(*SessionEntry)) bool
}

type sessionRegistry struct {
	log *logger.Logger
	voc *vocab.Vocabulary

	mu      sync.RWMutex
	entries map[uuid.UUID]*SessionEntry
}

func NewSessionRegistry(baseLog *logger.Logger, voc *vocab.Vocabulary) SessionRegistry {
	return &sessionRegistry{
		log:     baseLog.With("service", "SessionRegistry"),
		voc:     voc,
		entries: map[uuid.UUID]*SessionEntry{},
	}
}

func (r *sessionRegistry) Create() *SessionEntry {
	entry := &SessionEntry{
		Session: intake.NewSession(),
		Ledger:  NewResourceLedger(r.log, r.voc),
	}
	r.mu.Lock()
	r.entries[entry.Session.ID] = entry
	r.mu.Unlock()
	r.log.Debug("session created", "session_id", entry.Session.ID)
	return entry
}

func (r *sessionRegistry) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	r.log.Debug("session deleted", "session_id", id)
	return true
}

func (r *sessionRegistry) With(id uuid.UUID, fn func(*SessionEntry)) bool {
	r.mu.RLock()
	entry, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry)
	return true
}
