// Package store holds the session's normalized base tables. Tables are
// rebuilt only on a new upload; every pipeline pass reads an immutable
// snapshot.
package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lfarias/leadstats/kpi"
	"github.com/lfarias/leadstats/models"
)

// Snapshot is the read-only state of one upload: the normalized tables, the
// unfiltered KPI baseline and a dataset id that changes with every Replace.
type Snapshot struct {
	ID       uuid.UUID
	Version  models.SchemaVersion
	Leads    []models.LeadRecord
	Spend    []models.SpendRecord
	Baseline kpi.Baseline
}

type Session struct {
	mu     sync.RWMutex
	cur    Snapshot
	loaded bool
}

func NewSession() *Session { return &Session{} }

// Replace installs a fresh upload and returns its dataset id. The previous
// snapshot is discarded wholesale; nothing is merged.
func (s *Session) Replace(version models.SchemaVersion, leads []models.LeadRecord, spend []models.SpendRecord, base kpi.Baseline) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Snapshot{ID: id, Version: version, Leads: leads, Spend: spend, Baseline: base}
	s.loaded = true
	return id
}

// View returns the current snapshot; ok is false before the first upload.
func (s *Session) View() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur, s.loaded
}
