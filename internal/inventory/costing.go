// Package inventory keeps the stock movement history and values it with
// the moving-average method.
package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/bukukas/bukukas/internal/apperrors"
	"github.com/bukukas/bukukas/internal/model"
)

// Policy decides what happens when an outgoing movement exceeds stock on hand.
type Policy int

const (
	// Clamp lets the movement through and floors the running quantity and
	// value at zero.
	Clamp Policy = iota
	// Reject refuses the movement with apperrors.ErrOversell.
	Reject
)

// ParsePolicy maps a config value to a Policy. Empty means Clamp.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp":
		return Clamp, nil
	case "reject":
		return Reject, nil
	}
	return Clamp, fmt.Errorf("unknown oversell policy %q (want clamp or reject)", s)
}

func (p Policy) String() string {
	if p == Reject {
		return "reject"
	}
	return "clamp"
}

// Position is one row of the stock card: a movement and the running state
// after it.
type Position struct {
	MovementID  string
	Date        time.Time
	Description string
	Kind        model.MovementKind
	QtyIn       int64
	QtyOut      int64
	// UnitCost is the lot cost per unit for incoming movements and the
	// average applied for outgoing ones.
	UnitCost int64
	COGS     int64
	HasCOGS  bool
	// Oversold marks an outgoing movement that took more than was on hand.
	Oversold bool

	QtyOnHand   int64
	Value       int64
	AverageCost int64
}

// Valuation is the state after the last movement.
type Valuation struct {
	QuantityOnHand  int64
	InventoryValue  int64
	AverageUnitCost int64
}

// Replay runs the moving-average state machine over movements in the given
// order and returns one Position per movement plus the final valuation.
// The average cost only changes on incoming movements; outgoing ones are
// costed at the average in force when they happen. All arithmetic is integer
// with division rounding down.
func Replay(movements []model.Movement, policy Policy) ([]Position, Valuation, error) {
	positions := make([]Position, 0, len(movements))
	var state Valuation

	for i, m := range movements {
		p := Position{
			MovementID:  m.ID,
			Date:        m.Date,
			Description: m.Description,
			Kind:        m.Kind,
		}

		switch m.Kind {
		case model.MovementIn:
			p.QtyIn = m.Quantity
			if m.Quantity > 0 {
				p.UnitCost = m.Amount / m.Quantity
			}
			state.InventoryValue += m.Amount
			state.QuantityOnHand += m.Quantity
			if state.QuantityOnHand > 0 {
				state.AverageUnitCost = state.InventoryValue / state.QuantityOnHand
			} else {
				state.AverageUnitCost = 0
			}

		case model.MovementOut:
			if policy == Reject && m.Quantity > state.QuantityOnHand {
				return nil, Valuation{}, apperrors.Invalid(apperrors.ErrOversell,
					"movement %d (%s) takes %d, %d on hand", i+1, m.Date.Format("2006-01-02"), m.Quantity, state.QuantityOnHand)
			}
			p.QtyOut = m.Quantity
			p.Oversold = m.Quantity > state.QuantityOnHand
			p.UnitCost = state.AverageUnitCost
			p.COGS = m.Quantity * state.AverageUnitCost
			p.HasCOGS = true
			state.QuantityOnHand = max(state.QuantityOnHand-m.Quantity, 0)
			state.InventoryValue = max(state.InventoryValue-p.COGS, 0)

		default:
			return nil, Valuation{}, apperrors.Invalid(apperrors.ErrInvalidKind, "movement %d has kind %q", i+1, m.Kind)
		}

		p.QtyOnHand = state.QuantityOnHand
		p.Value = state.InventoryValue
		p.AverageCost = state.AverageUnitCost
		positions = append(positions, p)
	}
	return positions, state, nil
}
