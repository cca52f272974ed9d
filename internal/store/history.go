package store

import (
	"context"

	"github.com/trustlens/trustlens/internal/model"
)

// History is the durable bounded scan history. Records are kept newest
// first; appending beyond model.HistoryCap evicts the oldest record.
// Past records are never updated or deleted individually.
type History struct {
	kv *KV
}

// NewHistory creates a History over the given store.
func NewHistory(kv *KV) *History {
	return &History{kv: kv}
}

// Append inserts a record at the head and truncates the history to the
// cap. The read-modify-write is not transactional across contexts;
// overlapping appends follow last-write-wins on the whole list.
func (h *History) Append(ctx context.Context, record model.HistoryRecord) error {
	records, err := h.load(ctx)
	if err != nil {
		return err
	}

	records = append([]model.HistoryRecord{record}, records...)
	if len(records) > model.HistoryCap {
		records = records[:model.HistoryCap]
	}
	return h.kv.Set(ctx, KeyScanHistory, records)
}

// Recent returns up to n records, newest first. A non-positive n yields
// an empty slice.
func (h *History) Recent(ctx context.Context, n int) ([]model.HistoryRecord, error) {
	if n <= 0 {
		return []model.HistoryRecord{}, nil
	}
	records, err := h.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) > n {
		records = records[:n]
	}
	return records, nil
}

// load reads the current history, treating an absent key as empty.
func (h *History) load(ctx context.Context) ([]model.HistoryRecord, error) {
	records := make([]model.HistoryRecord, 0)
	if _, err := h.kv.Get(ctx, KeyScanHistory, &records); err != nil {
		return nil, err
	}
	return records, nil
}
