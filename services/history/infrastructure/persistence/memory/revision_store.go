// Package memory holds an in-process RevisionStore used when Redis is not
// configured and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/ghuser/stockroom/services/history/domain/models"
)

type RevisionStore struct {
	mu      sync.Mutex
	entries []models.RevisionEntry
	fail    error
}

func NewRevisionStore() *RevisionStore {
	return &RevisionStore{}
}

// SetFailure makes subsequent writes fail with err; nil clears it.
func (s *RevisionStore) SetFailure(err error) {
	s.mu.Lock()
	s.fail = err
	s.mu.Unlock()
}

func (s *RevisionStore) Load(_ context.Context) ([]models.RevisionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.entries), nil
}

func (s *RevisionStore) Push(_ context.Context, entry models.RevisionEntry, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	next := append([]models.RevisionEntry{entry.Clone()}, s.entries...)
	if len(next) > limit {
		next = next[:limit]
	}
	s.entries = next
	return nil
}

func (s *RevisionStore) Rewrite(_ context.Context, entries []models.RevisionEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.entries = cloneEntries(entries)
	return nil
}

func cloneEntries(entries []models.RevisionEntry) []models.RevisionEntry {
	out := make([]models.RevisionEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
