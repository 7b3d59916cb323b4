package journal

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/bukukas/bukukas/internal/apperrors"
	"github.com/bukukas/bukukas/internal/id"
	"github.com/bukukas/bukukas/internal/model"
)

// Persister is the durable collection behind a Store.
type Persister interface {
	Load() ([]Record, error)
	Save(records []Record) error
}

// Store owns the ordered journal. Every mutation is validated, saved through
// the Persister, and only then made visible; a failed save leaves the store
// unchanged.
type Store struct {
	mu      sync.RWMutex
	catalog Catalog
	persist Persister
	log     *slog.Logger
	seq     *id.Sequence
	entries []model.Entry
}

// Open loads the journal. An unreadable store opens empty, and records that
// break entry invariants are skipped; both are logged as warnings.
func Open(catalog Catalog, persist Persister, logger *slog.Logger) *Store {
	s := &Store{
		catalog: catalog,
		persist: persist,
		log:     logger.With("store", "journal"),
		seq:     id.NewSequence(id.JournalPrefix),
	}

	records, err := persist.Load()
	if err != nil {
		s.log.Warn("journal unreadable, starting empty", "err", err)
		return s
	}

	for i, rec := range records {
		e, err := UnmarshalEntry(rec)
		if err == nil {
			e, err = normalize(catalog, e)
		}
		if err != nil {
			s.log.Warn("skipping journal record", "row", i+1, "err", err)
			continue
		}
		if e.RecordedBy == "" {
			e.RecordedBy = UnknownUser
		}
		e.ID = s.seq.Next()
		s.entries = append(s.entries, e)
	}
	s.log.Debug("journal loaded", "entries", len(s.entries))
	return s
}

// Append validates params and adds the entry at the end of the journal.
func (s *Store) Append(params AppendParams) (model.Entry, error) {
	e, err := NewEntry(s.catalog, params)
	if err != nil {
		return model.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.seq.Next()
	next := append(slices.Clone(s.entries), e)
	if err := s.save(next); err != nil {
		return model.Entry{}, err
	}
	s.entries = next

	s.log.Debug("journal entry appended", "id", e.ID, "debit", e.DebitAccount, "credit", e.CreditAccount, "amount", e.Amount)
	return e, nil
}

// AppendAll validates every params and adds the entries in order with a
// single save. Either all of them are appended or none is.
func (s *Store) AppendAll(params []AppendParams) ([]model.Entry, error) {
	batch := make([]model.Entry, 0, len(params))
	for i, p := range params {
		e, err := NewEntry(s.catalog, p)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		batch = append(batch, e)
	}
	if len(batch) == 0 {
		return batch, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range batch {
		batch[i].ID = s.seq.Next()
	}
	next := append(slices.Clone(s.entries), batch...)
	if err := s.save(next); err != nil {
		return nil, err
	}
	s.entries = next

	s.log.Debug("journal entries appended", "count", len(batch), "first", batch[0].ID, "last", batch[len(batch)-1].ID)
	return batch, nil
}

// Remove deletes the entry with the given ID.
func (s *Store) Remove(entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.entries, func(e model.Entry) bool { return e.ID == entryID })
	if i < 0 {
		return fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
	}
	return s.removeIndex(i)
}

// RemoveAt deletes the entry at a 0-based position; later entries shift down.
func (s *Store) RemoveAt(position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if position < 0 || position >= len(s.entries) {
		return apperrors.Invalid(apperrors.ErrOutOfRange, "position %d, journal has %d entries", position, len(s.entries))
	}
	return s.removeIndex(position)
}

func (s *Store) removeIndex(i int) error {
	removed := s.entries[i]
	next := slices.Delete(slices.Clone(s.entries), i, i+1)
	if err := s.save(next); err != nil {
		return err
	}
	s.entries = next

	s.log.Debug("journal entry removed", "id", removed.ID, "position", i)
	return nil
}

// All returns a snapshot of the journal in insertion order.
func (s *Store) All() []model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Get returns the entry with the given ID.
func (s *Store) Get(entryID string) (model.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == entryID {
			return e, true
		}
	}
	return model.Entry{}, false
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) save(entries []model.Entry) error {
	records := make([]Record, len(entries))
	for i, e := range entries {
		records[i] = MarshalEntry(e)
	}
	if err := s.persist.Save(records); err != nil {
		if !errors.Is(err, apperrors.ErrPersistence) {
			err = &apperrors.PersistenceError{Op: "save", Err: err}
		}
		return fmt.Errorf("saving journal: %w", err)
	}
	return nil
}
