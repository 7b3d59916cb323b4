package accounts

import "github.com/bukukas/bukukas/internal/model"

// Names of the accounts other packages refer to directly.
const (
	Cash        = "Kas"
	Receivables = "Piutang Usaha"
	Payables    = "Utang Usaha"
	Sales       = "Penjualan"
	COGS        = "HPP"
)

// DefaultChart returns the fixed chart of accounts in presentation order.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: 1010, Name: Cash, Type: model.AccountTypeAsset, Category: model.CategoryCash, Description: "Kas dan setara kas"},
		{Code: 1020, Name: Receivables, Type: model.AccountTypeAsset, Category: model.CategoryReceivable, Description: "Tagihan kepada pelanggan"},
		{Code: 1030, Name: "Perlengkapan", Type: model.AccountTypeAsset, Category: model.CategoryOther},
		{Code: 1040, Name: "Peralatan", Type: model.AccountTypeAsset, Category: model.CategoryOther},
		{Code: 1041, Name: "Akumulasi Penyusutan Peralatan", Type: model.AccountTypeAsset, Category: model.CategoryOther, Description: "Kontra aset peralatan"},
		{Code: 1110, Name: "Persediaan - Pakan", Type: model.AccountTypeAsset, Category: model.CategoryOther},
		{Code: 1120, Name: "Persediaan - Bibit", Type: model.AccountTypeAsset, Category: model.CategoryOther},
		{Code: 1130, Name: "Persediaan - Sekam & Bahan Kandang", Type: model.AccountTypeAsset, Category: model.CategoryOther},
		{Code: 1140, Name: "Persediaan - Jangkrik", Type: model.AccountTypeAsset, Category: model.CategoryOther},
		{Code: 2010, Name: Payables, Type: model.AccountTypeLiability, Category: model.CategoryPayable, Description: "Kewajiban kepada supplier"},
		{Code: 3010, Name: "Modal", Type: model.AccountTypeEquity, Category: model.CategoryOther},
		{Code: 4010, Name: Sales, Type: model.AccountTypeRevenue, Category: model.CategoryRevenue},
		{Code: 5010, Name: COGS, Type: model.AccountTypeCOGS, Category: model.CategoryCOGS, Description: "Harga pokok penjualan"},
		{Code: 5020, Name: "Pembelian", Type: model.AccountTypeCOGS, Category: model.CategoryPurchases},
		{Code: 6010, Name: "Beban Gaji", Type: model.AccountTypeExpense, Category: model.CategoryExpense},
		{Code: 6020, Name: "Beban Pakan", Type: model.AccountTypeExpense, Category: model.CategoryExpense},
		{Code: 6030, Name: "Beban Listrik & Air", Type: model.AccountTypeExpense, Category: model.CategoryExpense},
		{Code: 6040, Name: "Beban Transportasi", Type: model.AccountTypeExpense, Category: model.CategoryExpense},
		{Code: 6050, Name: "Beban Penyusutan Peralatan", Type: model.AccountTypeExpense, Category: model.CategoryExpense},
		{Code: 6060, Name: "Beban Perlengkapan", Type: model.AccountTypeExpense, Category: model.CategoryExpense},
		{Code: 6070, Name: "Beban Sewa", Type: model.AccountTypeExpense, Category: model.CategoryExpense},
	}
}
