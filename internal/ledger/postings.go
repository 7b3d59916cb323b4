// Package ledger derives general and subsidiary ledgers from a journal
// snapshot. Everything here is a pure function of its inputs.
package ledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bukukas/bukukas/internal/model"
)

// Order selects how postings are sequenced in a general ledger.
type Order int

const (
	// StoreOrder keeps journal insertion order.
	StoreOrder Order = iota
	// DateOrder sorts by transaction date, ties kept in insertion order.
	DateOrder
)

// ParseOrder maps a config or flag value to an Order. Empty means StoreOrder.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "store":
		return StoreOrder, nil
	case "date":
		return DateOrder, nil
	}
	return StoreOrder, fmt.Errorf("unknown ledger order %q (want store or date)", s)
}

func (o Order) String() string {
	if o == DateOrder {
		return "date"
	}
	return "store"
}

// Posting is one line of a ledger: the entry's effect on a single account
// plus the balance after it.
type Posting struct {
	EntryID      string
	Date         time.Time
	Description  string
	Counterparty string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	Balance      decimal.Decimal
}

// AccountLedger is the general ledger of one account.
type AccountLedger struct {
	Account     string
	Postings    []Posting
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Ending returns the last running balance, or zero without postings.
func (l AccountLedger) Ending() decimal.Decimal {
	if len(l.Postings) == 0 {
		return decimal.Zero
	}
	return l.Postings[len(l.Postings)-1].Balance
}

// Catalog is the part of the chart of accounts ledgers need.
type Catalog interface {
	All() []model.Account
	ControlAccount(kind model.TransactionKind) string
}

// PostingsFor returns the running-balance postings of account. A debit adds
// to the balance and a credit subtracts. An entry with the account on both
// legs yields a debit posting followed by a credit posting.
func PostingsFor(entries []model.Entry, account string, order Order) []Posting {
	selected := make([]model.Entry, 0)
	for _, e := range entries {
		if e.Touches(account) {
			selected = append(selected, e)
		}
	}
	if order == DateOrder {
		sortByDate(selected)
	}

	postings := make([]Posting, 0, len(selected))
	balance := decimal.Zero
	for _, e := range selected {
		if e.DebitAccount == account {
			balance = balance.Add(e.Amount)
			postings = append(postings, posting(e, e.Amount, decimal.Zero, balance))
		}
		if e.CreditAccount == account {
			balance = balance.Sub(e.Amount)
			postings = append(postings, posting(e, decimal.Zero, e.Amount, balance))
		}
	}
	return postings
}

// Ledger builds the general ledger of one account.
func Ledger(entries []model.Entry, account string, order Order) AccountLedger {
	l := AccountLedger{
		Account:     account,
		Postings:    PostingsFor(entries, account, order),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, p := range l.Postings {
		l.TotalDebit = l.TotalDebit.Add(p.Debit)
		l.TotalCredit = l.TotalCredit.Add(p.Credit)
	}
	return l
}

// Ledgers builds the general ledger of every catalog account that has
// activity, in catalog order.
func Ledgers(entries []model.Entry, catalog Catalog, order Order) []AccountLedger {
	var result []AccountLedger
	for _, a := range catalog.All() {
		l := Ledger(entries, a.Name, order)
		if len(l.Postings) > 0 {
			result = append(result, l)
		}
	}
	return result
}

func posting(e model.Entry, debit, credit, balance decimal.Decimal) Posting {
	return Posting{
		EntryID:      e.ID,
		Date:         e.Date,
		Description:  e.Description,
		Counterparty: e.Counterparty,
		Debit:        debit,
		Credit:       credit,
		Balance:      balance,
	}
}

func sortByDate(entries []model.Entry) {
	slices.SortStableFunc(entries, func(a, b model.Entry) int {
		return a.Date.Compare(b.Date)
	})
}
