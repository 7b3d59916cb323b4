package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tags an entry by the control account it touches.
type TransactionKind string

const (
	KindCash       TransactionKind = "Tunai"
	KindPayable    TransactionKind = "Utang"
	KindReceivable TransactionKind = "Piutang"
)

// Valid reports whether k is a known transaction kind.
func (k TransactionKind) Valid() bool {
	return k == KindCash || k == KindPayable || k == KindReceivable
}

// Entry is one journal entry: a debit leg and a credit leg sharing one amount.
type Entry struct {
	ID            string
	Date          time.Time
	Description   string
	DebitAccount  string
	CreditAccount string
	Amount        decimal.Decimal
	Kind          TransactionKind
	Counterparty  string // supplier or customer; empty for cash entries
	RecordedBy    string
}

// Touches reports whether account is on either leg of the entry.
func (e Entry) Touches(account string) bool {
	return e.DebitAccount == account || e.CreditAccount == account
}
