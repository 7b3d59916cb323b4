package model

import "time"

// MovementKind is the direction of a stock movement.
type MovementKind string

const (
	MovementIn  MovementKind = "Masuk"
	MovementOut MovementKind = "Keluar"
)

// Movement is one row of the stock card. Amount is the lot cost and only
// carries meaning for incoming movements; outgoing cost is derived.
type Movement struct {
	ID          string
	Date        time.Time
	Description string
	Kind        MovementKind
	Quantity    int64
	Amount      int64
}
