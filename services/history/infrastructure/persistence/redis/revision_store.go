// Package redis stores the revision log as a Redis list of JSON entries,
// newest at the head.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/services/history/domain/models"
)

const entriesKey = "history:entries"

// RevisionStore implements repositories.RevisionStore on a Redis list.
type RevisionStore struct {
	client *cache.RedisClient
}

// NewRevisionStore returns a store keeping entries under a single list key.
func NewRevisionStore(client *cache.RedisClient) *RevisionStore {
	return &RevisionStore{client: client}
}

// Load reads the whole list.
func (s *RevisionStore) Load(ctx context.Context) ([]models.RevisionEntry, error) {
	raw, err := s.client.Client().LRange(ctx, entriesKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load revisions: %w", err)
	}
	return decodeEntries(raw)
}

// Push runs LPUSH and LTRIM in one MULTI so the list never exceeds limit.
func (s *RevisionStore) Push(ctx context.Context, entry models.RevisionEntry, limit int) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode revision %s: %w", entry.ID, err)
	}
	pipe := s.client.Client().TxPipeline()
	pipe.LPush(ctx, entriesKey, data)
	pipe.LTrim(ctx, entriesKey, 0, int64(limit-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push revision: %w", err)
	}
	return nil
}

// Rewrite swaps the list contents atomically.
func (s *RevisionStore) Rewrite(ctx context.Context, entries []models.RevisionEntry) error {
	values, err := encodeEntries(entries)
	if err != nil {
		return err
	}
	pipe := s.client.Client().TxPipeline()
	pipe.Del(ctx, entriesKey)
	if len(values) > 0 {
		pipe.RPush(ctx, entriesKey, values...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rewrite revisions: %w", err)
	}
	return nil
}

func encodeEntries(entries []models.RevisionEntry) ([]any, error) {
	values := make([]any, len(entries))
	for i, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("encode revision %s: %w", e.ID, err)
		}
		values[i] = data
	}
	return values, nil
}

func decodeEntries(raw []string) ([]models.RevisionEntry, error) {
	out := make([]models.RevisionEntry, 0, len(raw))
	for i, r := range raw {
		var e models.RevisionEntry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			return nil, fmt.Errorf("decode revision at %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}
