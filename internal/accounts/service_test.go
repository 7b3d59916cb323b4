package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bukukas/bukukas/internal/apperrors"
	"github.com/bukukas/bukukas/internal/model"
)

func TestDefaultService(t *testing.T) {
	svc := Default()

	assert.Len(t, svc.All(), 21)
	assert.Equal(t, Cash, svc.All()[0].Name, "chart order is preserved")
}

func TestLookupClassify(t *testing.T) {
	svc := Default()

	acct, err := svc.Lookup("Beban Gaji")
	require.NoError(t, err)
	assert.Equal(t, model.AccountTypeExpense, acct.Type)

	cat, err := svc.Classify(Sales)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryRevenue, cat)

	_, err = svc.Classify("Pendapatan Sewa")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.True(t, svc.Exists(Payables))
	assert.False(t, svc.Exists(""))
}

func TestControlAccounts(t *testing.T) {
	svc := Default()

	assert.Equal(t, Payables, svc.ControlAccount(model.KindPayable))
	assert.Equal(t, Receivables, svc.ControlAccount(model.KindReceivable))
	assert.Empty(t, svc.ControlAccount(model.KindCash))

	assert.True(t, svc.IsControlAccount(Payables, model.KindPayable))
	assert.False(t, svc.IsControlAccount(Payables, model.KindReceivable))
	assert.True(t, svc.IsControlAccount(Receivables, model.KindReceivable))
	assert.False(t, svc.IsControlAccount(Cash, model.KindCash))
	assert.False(t, svc.IsControlAccount("", model.KindCash))
}

func TestByCategory(t *testing.T) {
	svc := Default()

	expenses := svc.ByCategory(model.CategoryExpense)
	assert.Len(t, expenses, 7)
	for _, a := range expenses {
		assert.Equal(t, model.CategoryExpense, a.Category)
	}

	cash := svc.ByCategory(model.CategoryCash)
	require.Len(t, cash, 1)
	assert.Equal(t, Cash, cash[0].Name)
}

func TestNewServiceRejectsBadCharts(t *testing.T) {
	tests := []struct {
		name  string
		chart []model.Account
	}{
		{"duplicate name", []model.Account{
			{Code: 1, Name: "Kas", Category: model.CategoryCash},
			{Code: 2, Name: "Kas", Category: model.CategoryCash},
		}},
		{"no control accounts", []model.Account{
			{Code: 1, Name: "Kas", Category: model.CategoryCash},
		}},
		{"two payables", []model.Account{
			{Code: 1, Name: "Utang A", Category: model.CategoryPayable},
			{Code: 2, Name: "Utang B", Category: model.CategoryPayable},
			{Code: 3, Name: "Piutang", Category: model.CategoryReceivable},
		}},
		{"empty name", []model.Account{
			{Code: 1, Category: model.CategoryOther},
		}},
	}
	for _, tt := range tests {
		_, err := NewService(tt.chart)
		assert.Error(t, err, tt.name)
	}
}

func TestLoadWithoutChartUsesDefault(t *testing.T) {
	svc, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Len(t, svc.All(), len(DefaultChart()))
}

func TestSaveRoundTrip(t *testing.T) {
	svc := Default()

	dir := t.TempDir()
	require.NoError(t, svc.Save(dir))

	_, err := os.Stat(filepath.Join(dir, "accounts", "chart-of-accounts.csv"))
	require.NoError(t, err)

	svc2, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, svc2.All(), len(svc.All()))

	for _, orig := range svc.All() {
		got, err := svc2.Lookup(orig.Name)
		require.NoError(t, err, "account %q should exist", orig.Name)
		assert.Equal(t, orig, got)
	}
}

func TestLoadCustomChart(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "accounts"), 0o755))
	chart := "account_code,account_name,account_type,category,description\n" +
		"1,Bank,asset,cash,\n" +
		"2,Piutang,asset,receivable,\n" +
		"3,Utang,liability,payable,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "accounts", "chart-of-accounts.csv"), []byte(chart), 0o644))

	svc, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, svc.All(), 3)
	assert.Equal(t, "Utang", svc.ControlAccount(model.KindPayable))
}
