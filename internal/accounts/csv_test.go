package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bukukas/bukukas/internal/model"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{Code: 1010, Name: "Kas", Type: model.AccountTypeAsset, Category: model.CategoryCash, Description: "Kas dan setara kas"},
		{Code: 6070, Name: "Beban Sewa", Type: model.AccountTypeExpense, Category: model.CategoryExpense},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accounts))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)
}

func TestNamesWithCommasSurvive(t *testing.T) {
	acct := model.Account{Code: 1, Name: "Beban Listrik, Air & Gas", Type: model.AccountTypeExpense, Category: model.CategoryExpense}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, []model.Account{acct}))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, acct.Name, got[0].Name)
}

func TestAllCategoriesRoundTrip(t *testing.T) {
	categories := []model.Category{
		model.CategoryCash,
		model.CategoryPayable,
		model.CategoryReceivable,
		model.CategoryRevenue,
		model.CategoryCOGS,
		model.CategoryExpense,
		model.CategoryPurchases,
		model.CategoryOther,
	}
	for _, c := range categories {
		var buf bytes.Buffer
		require.NoError(t, WriteAccounts(&buf, []model.Account{{Code: 1, Name: "X", Category: c}}))

		got, err := ReadAccounts(&buf)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, c, got[0].Category, "category %q should survive round-trip", c)
	}
}

func TestUnmarshalAccountErrors(t *testing.T) {
	_, err := UnmarshalAccount([]string{"x", "Kas", "asset", "cash", ""})
	assert.Error(t, err, "non-numeric code")

	_, err = UnmarshalAccount([]string{"1", "Kas", "asset", "bank", ""})
	assert.Error(t, err, "unknown category")

	_, err = UnmarshalAccount([]string{"1", "Kas"})
	assert.Error(t, err, "short row")
}

func TestReadAccountsEmpty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
