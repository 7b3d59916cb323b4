package journal

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bukukas/bukukas/internal/accounts"
	"github.com/bukukas/bukukas/internal/apperrors"
	"github.com/bukukas/bukukas/internal/model"
	"github.com/bukukas/bukukas/internal/storage"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type memPersister struct {
	records []Record
	saveErr error
	saves   int
}

func (m *memPersister) Load() ([]Record, error) { return m.records, nil }

func (m *memPersister) Save(records []Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.records = records
	return nil
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func cashSale(amount int64) AppendParams {
	return AppendParams{
		Date:          date("2024-03-01"),
		Description:   "Penjualan tunai",
		DebitAccount:  accounts.Cash,
		CreditAccount: accounts.Sales,
		DebitAmount:   decimal.NewFromInt(amount),
		CreditAmount:  decimal.NewFromInt(amount),
	}
}

func newStore(t *testing.T) (*Store, *memPersister) {
	t.Helper()
	p := &memPersister{}
	return Open(accounts.Default(), p, discard), p
}

func TestAppendCashEntry(t *testing.T) {
	s, p := newStore(t)

	params := cashSale(100000)
	params.Counterparty = "Toko A"
	params.RecordedBy = "sari"
	e, err := s.Append(params)
	require.NoError(t, err)

	assert.Equal(t, "JU-0001", e.ID)
	assert.Equal(t, model.KindCash, e.Kind)
	assert.Empty(t, e.Counterparty, "cash entries carry no counterparty")
	assert.Equal(t, "sari", e.RecordedBy)
	assert.Equal(t, 1, s.Len())
	require.Len(t, p.records, 1)
	assert.Equal(t, "Tunai", p.records[0].JenisTransaksi)
	assert.Equal(t, "100000", string(p.records[0].Nilai))
}

func TestAppendDerivesKind(t *testing.T) {
	tests := []struct {
		name   string
		debit  string
		credit string
		want   model.TransactionKind
	}{
		{"credit sale", accounts.Receivables, accounts.Sales, model.KindReceivable},
		{"collection", accounts.Cash, accounts.Receivables, model.KindReceivable},
		{"credit purchase", "Pembelian", accounts.Payables, model.KindPayable},
		{"payment", accounts.Payables, accounts.Cash, model.KindPayable},
		{"payable wins", accounts.Payables, accounts.Receivables, model.KindPayable},
		{"expense", "Beban Gaji", accounts.Cash, model.KindCash},
	}
	for _, tt := range tests {
		s, _ := newStore(t)
		e, err := s.Append(AppendParams{
			Date:          date("2024-03-01"),
			DebitAccount:  tt.debit,
			CreditAccount: tt.credit,
			DebitAmount:   decimal.NewFromInt(500),
			CreditAmount:  decimal.NewFromInt(500),
			Counterparty:  "Toko B",
		})
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, e.Kind, tt.name)
	}
}

func TestAppendRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppendParams)
		want   error
	}{
		{"unbalanced", func(p *AppendParams) { p.CreditAmount = decimal.NewFromInt(99999) }, apperrors.ErrUnbalancedEntry},
		{"negative", func(p *AppendParams) {
			p.DebitAmount = decimal.NewFromInt(-5)
			p.CreditAmount = decimal.NewFromInt(-5)
		}, apperrors.ErrNegativeAmount},
		{"unknown debit", func(p *AppendParams) { p.DebitAccount = "Kas Kecil" }, apperrors.ErrUnknownAccount},
		{"unknown credit", func(p *AppendParams) { p.CreditAccount = "Pendapatan Lain" }, apperrors.ErrUnknownAccount},
		{"missing counterparty", func(p *AppendParams) { p.DebitAccount = accounts.Receivables }, apperrors.ErrMissingCounterparty},
		{"blank counterparty", func(p *AppendParams) {
			p.CreditAccount = accounts.Payables
			p.Counterparty = "   "
		}, apperrors.ErrMissingCounterparty},
		{"no date", func(p *AppendParams) { p.Date = time.Time{} }, apperrors.ErrInvalidField},
	}
	for _, tt := range tests {
		s, p := newStore(t)
		params := cashSale(100000)
		tt.mutate(&params)

		_, err := s.Append(params)
		require.Error(t, err, tt.name)
		assert.ErrorIs(t, err, tt.want, tt.name)
		assert.ErrorIs(t, err, apperrors.ErrValidation, tt.name)
		assert.Zero(t, s.Len(), tt.name)
		assert.Zero(t, p.saves, tt.name)
	}
}

func TestAppendedEntriesAreBalanced(t *testing.T) {
	s, _ := newStore(t)
	for _, amount := range []int64{0, 1, 250, 100000} {
		_, err := s.Append(cashSale(amount))
		require.NoError(t, err)
	}
	_, err := s.Append(AppendParams{
		Date:          date("2024-03-02"),
		DebitAccount:  accounts.Cash,
		CreditAccount: accounts.Sales,
		DebitAmount:   decimal.RequireFromString("10.5"),
		CreditAmount:  decimal.RequireFromString("10.50"),
	})
	require.NoError(t, err, "equal values with different scale balance")

	for _, e := range s.All() {
		assert.False(t, e.Amount.IsNegative())
	}
	assert.Equal(t, 5, s.Len())
}

func TestAppendDefaultsUser(t *testing.T) {
	s, _ := newStore(t)
	e, err := s.Append(cashSale(1))
	require.NoError(t, err)
	assert.Equal(t, UnknownUser, e.RecordedBy)
}

func TestAppendTruncatesDate(t *testing.T) {
	s, _ := newStore(t)
	params := cashSale(1)
	params.Date = time.Date(2024, 3, 1, 17, 45, 0, 0, time.UTC)

	e, err := s.Append(params)
	require.NoError(t, err)
	assert.Equal(t, date("2024-03-01"), e.Date)
}

func TestRemoveAtOutOfRange(t *testing.T) {
	s, p := newStore(t)
	_, err := s.Append(cashSale(100))
	require.NoError(t, err)
	before := s.All()

	for _, pos := range []int{-1, 1, 7} {
		err := s.RemoveAt(pos)
		assert.ErrorIs(t, err, apperrors.ErrOutOfRange, "position %d", pos)
	}
	assert.Equal(t, before, s.All())
	assert.Equal(t, 1, p.saves)
}

func TestRemoveAtShifts(t *testing.T) {
	s, p := newStore(t)
	for _, amount := range []int64{1, 2, 3} {
		_, err := s.Append(cashSale(amount))
		require.NoError(t, err)
	}

	require.NoError(t, s.RemoveAt(0))

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "JU-0002", all[0].ID)
	assert.Equal(t, "JU-0003", all[1].ID)
	assert.Len(t, p.records, 2)
}

func TestRemoveByIDIsStable(t *testing.T) {
	s, _ := newStore(t)
	for _, amount := range []int64{1, 2, 3} {
		_, err := s.Append(cashSale(amount))
		require.NoError(t, err)
	}

	require.NoError(t, s.Remove("JU-0001"))
	require.NoError(t, s.Remove("JU-0003"))

	got, ok := s.Get("JU-0002")
	require.True(t, ok)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(2)))

	e, err := s.Append(cashSale(4))
	require.NoError(t, err)
	assert.Equal(t, "JU-0004", e.ID, "IDs are not reused")

	err = s.Remove("JU-0001")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFailedSaveLeavesStoreUnchanged(t *testing.T) {
	s, p := newStore(t)
	_, err := s.Append(cashSale(1))
	require.NoError(t, err)

	p.saveErr = errors.New("disk full")

	_, err = s.Append(cashSale(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Equal(t, 1, s.Len())

	err = s.RemoveAt(0)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Equal(t, 1, s.Len())

	err = s.Remove("JU-0001")
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	_, ok := s.Get("JU-0001")
	assert.True(t, ok)
}

func TestAppendAllSavesOnce(t *testing.T) {
	s, p := newStore(t)

	added, err := s.AppendAll([]AppendParams{cashSale(1), cashSale(2), cashSale(3)})
	require.NoError(t, err)
	require.Len(t, added, 3)
	assert.Equal(t, "JU-0003", added[2].ID)
	assert.Equal(t, 1, p.saves)
	assert.Len(t, p.records, 3)
}

func TestAppendAllIsAllOrNothing(t *testing.T) {
	s, p := newStore(t)

	bad := cashSale(2)
	bad.CreditAmount = decimal.NewFromInt(3)
	_, err := s.AppendAll([]AppendParams{cashSale(1), bad})
	assert.ErrorIs(t, err, apperrors.ErrUnbalancedEntry)
	assert.Contains(t, err.Error(), "entry 2")
	assert.Zero(t, s.Len())

	p.saveErr = errors.New("disk full")
	_, err = s.AppendAll([]AppendParams{cashSale(1), cashSale(2)})
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Zero(t, s.Len())
	assert.Empty(t, p.records)
}

func TestAllReturnsCopy(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Append(cashSale(1))
	require.NoError(t, err)

	all := s.All()
	all[0].Description = "changed"

	assert.Equal(t, "Penjualan tunai", s.All()[0].Description)
}

func TestOpenSkipsInvalidRecords(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	p := &memPersister{records: []Record{
		{Tanggal: "2024-01-02", DebitAkun: "Kas", KreditAkun: "Penjualan", Nilai: "1000", JenisTransaksi: "Tunai", User: "sari"},
		{Tanggal: "bukan tanggal", DebitAkun: "Kas", KreditAkun: "Penjualan", Nilai: "1"},
		{Tanggal: "2024-01-03", DebitAkun: "Kas", KreditAkun: "Modal Ventura", Nilai: "1"},
		{Tanggal: "2024-01-04", DebitAkun: "Piutang Usaha", KreditAkun: "Penjualan", Nilai: "1"},
		{Tanggal: "2024-01-05 10:00:00", DebitAkun: "Piutang Usaha", KreditAkun: "Penjualan", Nilai: "500", JenisTransaksi: "Tunai", NamaToko: "Toko A"},
	}}

	s := Open(accounts.Default(), p, logger)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "JU-0001", all[0].ID)
	assert.Equal(t, "JU-0002", all[1].ID)
	assert.Equal(t, model.KindReceivable, all[1].Kind, "kind is re-derived from the accounts")
	assert.Equal(t, date("2024-01-05"), all[1].Date)
	assert.Equal(t, UnknownUser, all[1].RecordedBy)
	assert.Contains(t, logs.String(), "skipping journal record")
}

func TestOpenFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jurnal_data.json")
	file := storage.NewFile[Record](path)

	s := Open(accounts.Default(), file, discard)
	_, err := s.Append(cashSale(100000))
	require.NoError(t, err)
	_, err = s.Append(AppendParams{
		Date:          date("2024-03-05"),
		Description:   "Jual kredit",
		DebitAccount:  accounts.Receivables,
		CreditAccount: accounts.Sales,
		DebitAmount:   decimal.NewFromInt(50000),
		CreditAmount:  decimal.NewFromInt(50000),
		Counterparty:  "Toko A",
		RecordedBy:    "sari",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nama_toko": "Toko A"`)
	assert.Contains(t, string(data), `"nilai": 50000`)

	reopened := Open(accounts.Default(), file, discard)
	assert.Equal(t, s.All(), reopened.All())
}

func TestOpenCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jurnal_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := Open(accounts.Default(), storage.NewFile[Record](path), discard)
	assert.Zero(t, s.Len())

	_, err := s.Append(cashSale(1))
	require.NoError(t, err)
	_, err = os.Stat(path + ".corrupt")
	assert.NoError(t, err, "corrupt file kept aside")
}
