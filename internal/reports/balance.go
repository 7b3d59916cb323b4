package reports

import (
	"github.com/shopspring/decimal"

	"github.com/bukukas/bukukas/internal/model"
)

// BalanceRow is the debit and credit activity of one account.
type BalanceRow struct {
	Account     model.Account
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// BalanceSheet lists every catalog account, active or not.
type BalanceSheet struct {
	Rows        []BalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Balanced reports whether total debits equal total credits. Nothing
// enforces it.
func (b BalanceSheet) Balanced() bool {
	return b.TotalDebit.Equal(b.TotalCredit)
}

// BuildBalanceSheet totals debits and credits per catalog account, in
// catalog order. Entries naming accounts outside the catalog are not counted.
func BuildBalanceSheet(entries []model.Entry, catalog Catalog) BalanceSheet {
	debits := make(map[string]decimal.Decimal)
	credits := make(map[string]decimal.Decimal)
	for _, e := range entries {
		debits[e.DebitAccount] = debits[e.DebitAccount].Add(e.Amount)
		credits[e.CreditAccount] = credits[e.CreditAccount].Add(e.Amount)
	}

	bs := BalanceSheet{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, a := range catalog.All() {
		row := BalanceRow{
			Account:     a,
			TotalDebit:  decimal.Zero.Add(debits[a.Name]),
			TotalCredit: decimal.Zero.Add(credits[a.Name]),
		}
		bs.Rows = append(bs.Rows, row)
		bs.TotalDebit = bs.TotalDebit.Add(row.TotalDebit)
		bs.TotalCredit = bs.TotalCredit.Add(row.TotalCredit)
	}
	return bs
}
