package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryTouches(t *testing.T) {
	e := Entry{DebitAccount: "Kas", CreditAccount: "Penjualan"}

	assert.True(t, e.Touches("Kas"))
	assert.True(t, e.Touches("Penjualan"))
	assert.False(t, e.Touches("Utang Usaha"))
	assert.False(t, e.Touches(""))
}

func TestTransactionKindValid(t *testing.T) {
	tests := []struct {
		kind TransactionKind
		want bool
	}{
		{KindCash, true},
		{KindPayable, true},
		{KindReceivable, true},
		{"Kredit", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Valid(), "Valid(%q)", tt.kind)
	}
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryPurchases.Valid())
	assert.False(t, Category("asset").Valid())
}

func TestAccountFlags(t *testing.T) {
	cash := Account{Name: "Kas", Category: CategoryCash}
	payable := Account{Name: "Utang Usaha", Category: CategoryPayable}
	receivable := Account{Name: "Piutang Usaha", Category: CategoryReceivable}

	assert.True(t, cash.IsCash())
	assert.False(t, cash.IsPayable())
	assert.True(t, payable.IsPayable())
	assert.True(t, receivable.IsReceivable())
	assert.False(t, receivable.IsCash())
}
