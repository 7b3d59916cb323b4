package reports

import (
	"github.com/shopspring/decimal"

	"github.com/bukukas/bukukas/internal/model"
)

// Summary is the dashboard view of money in and out.
type Summary struct {
	Income   decimal.Decimal
	Spending decimal.Decimal
	Balance  decimal.Decimal
}

// BuildSummary counts cash sales as income and debits to expense or
// purchase accounts as spending.
func BuildSummary(entries []model.Entry, catalog Catalog) (Summary, error) {
	s := Summary{Income: decimal.Zero, Spending: decimal.Zero}
	for _, e := range entries {
		debit, credit, err := classify(catalog, e)
		if err != nil {
			return Summary{}, err
		}
		if debit == model.CategoryCash && credit == model.CategoryRevenue {
			s.Income = s.Income.Add(e.Amount)
		}
		if debit == model.CategoryExpense || debit == model.CategoryPurchases {
			s.Spending = s.Spending.Add(e.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Spending)
	return s, nil
}
