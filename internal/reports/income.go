// Package reports builds the financial statements from a journal snapshot.
// Accounts are classified by their catalog category.
package reports

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bukukas/bukukas/internal/model"
)

// DefaultTaxRate is the flat income tax applied to positive pre-tax profit.
var DefaultTaxRate = decimal.RequireFromString("0.10")

// Catalog is the part of the chart of accounts reports need.
type Catalog interface {
	All() []model.Account
	Classify(name string) (model.Category, error)
}

// ExpenseLine is the operating expense booked to one account.
type ExpenseLine struct {
	Account string
	Amount  decimal.Decimal
}

// IncomeStatement covers every entry in the journal; there is no period cutoff.
type IncomeStatement struct {
	Revenue          decimal.Decimal
	COGS             decimal.Decimal
	GrossProfit      decimal.Decimal
	Expenses         []ExpenseLine
	OperatingExpense decimal.Decimal
	PreTaxProfit     decimal.Decimal
	TaxRate          decimal.Decimal
	Tax              decimal.Decimal
	NetProfit        decimal.Decimal
}

// BuildIncomeStatement classifies entries as follows:
//   - revenue: debit to a cash account, credit to a revenue account
//   - cost of goods sold: a cogs account on either leg
//   - operating expense: debit to an expense account, itemised per account
//     in catalog order
//
// Tax is PreTaxProfit × taxRate when PreTaxProfit is positive, else zero.
func BuildIncomeStatement(entries []model.Entry, catalog Catalog, taxRate decimal.Decimal) (IncomeStatement, error) {
	is := IncomeStatement{
		Revenue:          decimal.Zero,
		COGS:             decimal.Zero,
		OperatingExpense: decimal.Zero,
		TaxRate:          taxRate,
		Tax:              decimal.Zero,
	}
	byAccount := make(map[string]decimal.Decimal)

	for _, e := range entries {
		debit, credit, err := classify(catalog, e)
		if err != nil {
			return IncomeStatement{}, err
		}
		if debit == model.CategoryCash && credit == model.CategoryRevenue {
			is.Revenue = is.Revenue.Add(e.Amount)
		}
		if debit == model.CategoryCOGS || credit == model.CategoryCOGS {
			is.COGS = is.COGS.Add(e.Amount)
		}
		if debit == model.CategoryExpense {
			is.OperatingExpense = is.OperatingExpense.Add(e.Amount)
			byAccount[e.DebitAccount] = byAccount[e.DebitAccount].Add(e.Amount)
		}
	}

	for _, a := range catalog.All() {
		if amount, ok := byAccount[a.Name]; ok {
			is.Expenses = append(is.Expenses, ExpenseLine{Account: a.Name, Amount: amount})
		}
	}

	is.GrossProfit = is.Revenue.Sub(is.COGS)
	is.PreTaxProfit = is.GrossProfit.Sub(is.OperatingExpense)
	if is.PreTaxProfit.IsPositive() {
		is.Tax = is.PreTaxProfit.Mul(taxRate)
	}
	is.NetProfit = is.PreTaxProfit.Sub(is.Tax)
	return is, nil
}

func classify(catalog Catalog, e model.Entry) (debit, credit model.Category, err error) {
	debit, err = catalog.Classify(e.DebitAccount)
	if err != nil {
		return "", "", fmt.Errorf("entry %s: %w", e.ID, err)
	}
	credit, err = catalog.Classify(e.CreditAccount)
	if err != nil {
		return "", "", fmt.Errorf("entry %s: %w", e.ID, err)
	}
	return debit, credit, nil
}
