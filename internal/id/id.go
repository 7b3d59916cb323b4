package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefixes for the two record families.
const (
	JournalPrefix   = "JU"
	InventoryPrefix = "INV"
)

// Format returns an ID like "JU-0001".
func Format(prefix string, seq int) string {
	return fmt.Sprintf("%s-%04d", prefix, seq)
}

// Parse splits "JU-0001" into its prefix and sequence.
func Parse(id string) (prefix string, seq int, err error) {
	i := strings.LastIndexByte(id, '-')
	if i <= 0 || i == len(id)-1 {
		return "", 0, fmt.Errorf("invalid ID format: %q", id)
	}

	seq, err = strconv.Atoi(id[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in ID %q: %w", id, err)
	}
	if seq <= 0 {
		return "", 0, fmt.Errorf("invalid sequence in ID %q", id)
	}
	return id[:i], seq, nil
}

// Sequence hands out monotonically increasing IDs for one prefix. IDs are
// never reused within a session, even after removals.
type Sequence struct {
	prefix string
	last   int
}

// NewSequence starts a sequence at prefix-0001.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns the next ID.
func (s *Sequence) Next() string {
	s.last++
	return Format(s.prefix, s.last)
}

// Normalize upper-cases an ID typed by a user and pads its sequence, so
// "ju-3" and "JU-0003" name the same record.
func Normalize(id string) string {
	prefix, seq, err := Parse(strings.ToUpper(strings.TrimSpace(id)))
	if err != nil {
		return id
	}
	return Format(prefix, seq)
}
