package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeCOGS      AccountType = "cogs"
	AccountTypeExpense   AccountType = "expense"
)

// Category is the reporting role of an account. Reports classify entries by
// category rather than by account name.
type Category string

const (
	CategoryCash       Category = "cash"
	CategoryPayable    Category = "payable"
	CategoryReceivable Category = "receivable"
	CategoryRevenue    Category = "revenue"
	CategoryCOGS       Category = "cogs"
	CategoryExpense    Category = "expense"
	CategoryPurchases  Category = "purchases"
	CategoryOther      Category = "other"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryCash, CategoryPayable, CategoryReceivable, CategoryRevenue,
		CategoryCOGS, CategoryExpense, CategoryPurchases, CategoryOther:
		return true
	}
	return false
}

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	Code        int
	Name        string
	Type        AccountType
	Category    Category
	Description string
}

// IsCash reports whether the account holds cash.
func (a Account) IsCash() bool { return a.Category == CategoryCash }

// IsPayable reports whether the account is the trade payables control account.
func (a Account) IsPayable() bool { return a.Category == CategoryPayable }

// IsReceivable reports whether the account is the trade receivables control account.
func (a Account) IsReceivable() bool { return a.Category == CategoryReceivable }
