package inventory

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bukukas/bukukas/internal/apperrors"
	"github.com/bukukas/bukukas/internal/id"
	"github.com/bukukas/bukukas/internal/model"
	"github.com/bukukas/bukukas/internal/validate"
)

const dateFormat = "2006-01-02"

// Record is the durable shape of a movement in inventory_data.json.
type Record struct {
	Tanggal    string `json:"tanggal"`
	Keterangan string `json:"keterangan"`
	Tipe       string `json:"tipe"`
	Qty        int64  `json:"qty"`
	Nilai      int64  `json:"nilai"`
}

// Persister is the durable collection behind a Store.
type Persister interface {
	Load() ([]Record, error)
	Save(records []Record) error
}

// MovementParams is a movement as entered.
type MovementParams struct {
	Date        time.Time `validate:"required"`
	Description string    `validate:"max=500"`
	Kind        model.MovementKind
	Quantity    int64
	Amount      int64
}

// Store owns the ordered movement history.
type Store struct {
	mu        sync.RWMutex
	persist   Persister
	policy    Policy
	log       *slog.Logger
	seq       *id.Sequence
	movements []model.Movement
}

// Open loads the movement history. An unreadable store opens empty and
// invalid records are skipped; both are logged as warnings.
func Open(persist Persister, policy Policy, logger *slog.Logger) *Store {
	s := &Store{
		persist: persist,
		policy:  policy,
		log:     logger.With("store", "inventory"),
		seq:     id.NewSequence(id.InventoryPrefix),
	}

	records, err := persist.Load()
	if err != nil {
		s.log.Warn("inventory unreadable, starting empty", "err", err)
		return s
	}

	for i, rec := range records {
		m, err := unmarshalMovement(rec)
		if err == nil {
			err = check(m)
		}
		if err != nil {
			s.log.Warn("skipping inventory record", "row", i+1, "err", err)
			continue
		}
		m.ID = s.seq.Next()
		s.movements = append(s.movements, m)
	}
	s.log.Debug("inventory loaded", "movements", len(s.movements))
	return s
}

// Policy returns the oversell policy the store enforces.
func (s *Store) Policy() Policy { return s.policy }

// Append validates params and adds the movement at the end of the history.
// Under the Reject policy an outgoing movement larger than the current stock
// on hand is refused. Only the new movement is checked.
func (s *Store) Append(params MovementParams) (model.Movement, error) {
	if err := validate.Struct(params); err != nil {
		return model.Movement{}, err
	}
	y, mo, d := params.Date.Date()
	m := model.Movement{
		Date:        time.Date(y, mo, d, 0, 0, 0, 0, time.UTC),
		Description: strings.TrimSpace(params.Description),
		Kind:        params.Kind,
		Quantity:    params.Quantity,
		Amount:      params.Amount,
	}
	if err := check(m); err != nil {
		return model.Movement{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.policy == Reject && m.Kind == model.MovementOut {
		if err := s.checkStock(m); err != nil {
			return model.Movement{}, err
		}
	}

	next := append(slices.Clone(s.movements), m)
	m.ID = s.seq.Next()
	next[len(next)-1].ID = m.ID
	if err := s.save(next); err != nil {
		return model.Movement{}, err
	}
	s.movements = next

	s.log.Debug("inventory movement appended", "id", m.ID, "kind", m.Kind, "qty", m.Quantity, "amount", m.Amount)
	return m, nil
}

// Remove deletes the movement with the given ID.
func (s *Store) Remove(movementID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.movements, func(m model.Movement) bool { return m.ID == movementID })
	if i < 0 {
		return fmt.Errorf("inventory movement %s: %w", movementID, apperrors.ErrNotFound)
	}
	return s.removeIndex(i)
}

// RemoveAt deletes the movement at a 0-based position.
func (s *Store) RemoveAt(position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if position < 0 || position >= len(s.movements) {
		return apperrors.Invalid(apperrors.ErrOutOfRange, "position %d, inventory has %d movements", position, len(s.movements))
	}
	return s.removeIndex(position)
}

// Removing a receipt can leave later issues oversold; the history is kept
// as entered and Card flags those rows.
func (s *Store) removeIndex(i int) error {
	removed := s.movements[i]
	next := slices.Delete(slices.Clone(s.movements), i, i+1)
	if err := s.save(next); err != nil {
		return err
	}
	s.movements = next

	s.log.Debug("inventory movement removed", "id", removed.ID, "position", i)
	return nil
}

// All returns a snapshot of the history in insertion order.
func (s *Store) All() []model.Movement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.movements)
}

// Card replays the history. Oversold rows are clamped and flagged rather
// than failing the card, whatever the store's policy.
func (s *Store) Card() ([]Position, Valuation, error) {
	return Replay(s.All(), Clamp)
}

// checkStock must be called with s.mu held.
func (s *Store) checkStock(m model.Movement) error {
	_, v, err := Replay(s.movements, Clamp)
	if err != nil {
		return err
	}
	if m.Quantity > v.QuantityOnHand {
		return apperrors.Invalid(apperrors.ErrOversell, "takes %d, %d on hand", m.Quantity, v.QuantityOnHand)
	}
	return nil
}

func (s *Store) save(movements []model.Movement) error {
	records := make([]Record, len(movements))
	for i, m := range movements {
		records[i] = Record{
			Tanggal:    m.Date.Format(dateFormat),
			Keterangan: m.Description,
			Tipe:       string(m.Kind),
			Qty:        m.Quantity,
			Nilai:      m.Amount,
		}
	}
	if err := s.persist.Save(records); err != nil {
		if !errors.Is(err, apperrors.ErrPersistence) {
			err = &apperrors.PersistenceError{Op: "save", Err: err}
		}
		return fmt.Errorf("saving inventory: %w", err)
	}
	return nil
}

func unmarshalMovement(r Record) (model.Movement, error) {
	s := r.Tanggal
	if len(s) > len(dateFormat) {
		s = s[:len(dateFormat)]
	}
	date, err := time.Parse(dateFormat, s)
	if err != nil {
		return model.Movement{}, fmt.Errorf("parsing tanggal %q: %w", r.Tanggal, err)
	}
	return model.Movement{
		Date:        date,
		Description: r.Keterangan,
		Kind:        model.MovementKind(r.Tipe),
		Quantity:    r.Qty,
		Amount:      r.Nilai,
	}, nil
}

func check(m model.Movement) error {
	switch {
	case m.Kind != model.MovementIn && m.Kind != model.MovementOut:
		return apperrors.Invalid(apperrors.ErrInvalidKind, "movement kind %q (want %s or %s)", m.Kind, model.MovementIn, model.MovementOut)
	case m.Quantity <= 0:
		return apperrors.Invalid(apperrors.ErrInvalidQuantity, "%d", m.Quantity)
	case m.Amount < 0:
		return apperrors.Invalid(apperrors.ErrNegativeAmount, "%d", m.Amount)
	}
	return nil
}
