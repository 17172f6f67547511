package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// MaxRecords caps the archive; inserts past the cap evict the oldest
// record by insertion order.
const MaxRecords = 30

// ErrRecordNotFound is returned when no archived invoice matches an id.
var ErrRecordNotFound = errors.New("invoice record not found")

// Backend persists the whole archive as one serialized sequence under a
// fixed storage location. Read returns (nil, nil) when no store exists yet.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Archive is the in-memory invoice record store with write-through
// persistence. All mutations hold a single-writer lock; the persisted and
// in-memory state diverge at most for the duration of a failed write.
type Archive struct {
	mu      sync.Mutex
	logger  *slog.Logger
	backend Backend
	records []Record
}

// Open loads the archive from its backend. An absent or empty persisted
// store yields an empty archive, not an error.
func Open(ctx context.Context, backend Backend, logger *slog.Logger) (*Archive, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Archive{logger: logger, backend: backend}

	data, err := backend.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive: load: %w", err)
	}
	if len(data) == 0 {
		return a, nil
	}
	if err := json.Unmarshal(data, &a.records); err != nil {
		return nil, fmt.Errorf("archive: decode persisted store: %w", err)
	}
	return a, nil
}

// Upsert inserts a record, replacing any existing record with the same
// invoice number in place. When the cap is exceeded the oldest records are
// evicted from the front. A persistence failure is logged and returned but
// leaves the in-memory store mutated; archival is best-effort for callers.
func (a *Archive) Upsert(ctx context.Context, rec Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	replaced := false
	for i := range a.records {
		if a.records[i].InvoiceNumber == rec.InvoiceNumber {
			a.records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		a.records = append(a.records, rec)
	}
	for len(a.records) > MaxRecords {
		a.records = a.records[1:]
	}

	return a.persist(ctx)
}

// Delete removes the record with the given id and persists the store.
func (a *Archive) Delete(ctx context.Context, id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.records {
		if a.records[i].ID == id {
			a.records = append(a.records[:i], a.records[i+1:]...)
			return a.persist(ctx)
		}
	}
	return ErrRecordNotFound
}

// Get returns the record with the given id.
func (a *Archive) Get(id int64) (Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, rec := range a.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return Record{}, ErrRecordNotFound
}

// List returns all records in insertion order.
func (a *Archive) List() []Record {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Record, len(a.records))
	copy(out, a.records)
	return out
}

// Len reports the current record count.
func (a *Archive) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}

func (a *Archive) persist(ctx context.Context) error {
	data, err := json.Marshal(a.records)
	if err != nil {
		a.logger.Warn("archive: encode store", slog.Any("error", err))
		return fmt.Errorf("archive: encode store: %w", err)
	}
	if err := a.backend.Write(ctx, data); err != nil {
		a.logger.Warn("archive: persist store", slog.Any("error", err))
		return fmt.Errorf("archive: persist store: %w", err)
	}
	return nil
}
