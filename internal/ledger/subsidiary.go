package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/bukukas/bukukas/internal/apperrors"
	"github.com/bukukas/bukukas/internal/model"
)

// Group is the subsidiary ledger of one counterparty.
type Group struct {
	Counterparty string
	Postings     []Posting
	TotalDebit   decimal.Decimal
	TotalCredit  decimal.Decimal
}

// EndingBalance returns the last running balance, or zero for an empty group.
func (g Group) EndingBalance() decimal.Decimal {
	if len(g.Postings) == 0 {
		return decimal.Zero
	}
	return g.Postings[len(g.Postings)-1].Balance
}

// SubsidiaryLedger details a payable or receivable control account per
// counterparty.
type SubsidiaryLedger struct {
	Kind           model.TransactionKind
	ControlAccount string
	groups         []Group
	index          map[string]int
}

// Names returns the counterparties in order of first appearance.
func (s SubsidiaryLedger) Names() []string {
	names := make([]string, len(s.groups))
	for i, g := range s.groups {
		names[i] = g.Counterparty
	}
	return names
}

// Groups returns every counterparty group in order of first appearance.
func (s SubsidiaryLedger) Groups() []Group {
	return s.groups
}

// Group returns the group of one counterparty.
func (s SubsidiaryLedger) Group(name string) (Group, bool) {
	i, ok := s.index[name]
	if !ok {
		return Group{}, false
	}
	return s.groups[i], true
}

// Total returns the outstanding balance across all counterparties.
func (s SubsidiaryLedger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, g := range s.groups {
		total = total.Add(g.EndingBalance())
	}
	return total
}

// Subsidiary groups the entries of a payable or receivable ledger by
// counterparty. An entry belongs to the ledger when it touches the control
// account or is tagged with kind; entries without a counterparty are left
// out. Postings within a group are sorted by date, ties kept in journal
// order. Payables grow with credits, receivables with debits.
func Subsidiary(entries []model.Entry, catalog Catalog, kind model.TransactionKind) (SubsidiaryLedger, error) {
	if kind != model.KindPayable && kind != model.KindReceivable {
		return SubsidiaryLedger{}, apperrors.Invalid(apperrors.ErrInvalidKind, "subsidiary ledger for %q", kind)
	}
	control := catalog.ControlAccount(kind)

	s := SubsidiaryLedger{
		Kind:           kind,
		ControlAccount: control,
		index:          make(map[string]int),
	}
	selected := make(map[string][]model.Entry)
	for _, e := range entries {
		if !e.Touches(control) && e.Kind != kind {
			continue
		}
		if e.Counterparty == "" {
			continue
		}
		if _, ok := s.index[e.Counterparty]; !ok {
			s.index[e.Counterparty] = len(s.groups)
			s.groups = append(s.groups, Group{Counterparty: e.Counterparty})
		}
		selected[e.Counterparty] = append(selected[e.Counterparty], e)
	}

	for i := range s.groups {
		g := &s.groups[i]
		group := selected[g.Counterparty]
		sortByDate(group)

		g.TotalDebit, g.TotalCredit = decimal.Zero, decimal.Zero
		balance := decimal.Zero
		for _, e := range group {
			debit, credit := decimal.Zero, decimal.Zero
			if e.DebitAccount == control {
				debit = e.Amount
			}
			if e.CreditAccount == control {
				credit = e.Amount
			}
			if kind == model.KindPayable {
				balance = balance.Add(credit).Sub(debit)
			} else {
				balance = balance.Add(debit).Sub(credit)
			}
			g.TotalDebit = g.TotalDebit.Add(debit)
			g.TotalCredit = g.TotalCredit.Add(credit)
			g.Postings = append(g.Postings, posting(e, debit, credit, balance))
		}
	}
	return s, nil
}
