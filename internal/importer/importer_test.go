package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bukukas/bukukas/internal/accounts"
	"github.com/bukukas/bukukas/internal/apperrors"
	"github.com/bukukas/bukukas/internal/journal"
	"github.com/bukukas/bukukas/internal/logging"
	"github.com/bukukas/bukukas/internal/model"
)

func TestJurnalParser_Parse(t *testing.T) {
	f, err := os.Open("../../testdata/jurnal_import.csv")
	require.NoError(t, err)
	defer f.Close()

	p := &JurnalParser{}
	rows, err := p.Parse(f)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Setor modal awal", rows[0].Description)
	assert.Equal(t, "Kas", rows[0].DebitAccount)
	assert.Equal(t, "Modal", rows[0].CreditAccount)
	assert.Equal(t, "5000000.00", rows[0].DebitAmount.StringFixed(2))
	assert.True(t, rows[0].DebitAmount.Equal(rows[0].CreditAmount))
	assert.Equal(t, "sari", rows[0].RecordedBy)

	assert.Equal(t, "CV Pakan Jaya", rows[1].Counterparty)

	// Time part dropped, embedded comma kept.
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), rows[2].Date)
	assert.Equal(t, "Jual jangkrik, 10 kg", rows[2].Description)
}

func TestJurnalParser_ColumnOrder(t *testing.T) {
	data := "nilai,kredit_akun,debit_akun,tanggal\n2500,Kas,Beban Sewa,2024-02-01\n"
	rows, err := (&JurnalParser{}).Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Beban Sewa", rows[0].DebitAccount)
	assert.Equal(t, "Kas", rows[0].CreditAccount)
	assert.Empty(t, rows[0].Counterparty)
}

func TestJurnalParser_EmptyFile(t *testing.T) {
	p := &JurnalParser{}
	rows, err := p.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, rows)

	rows, err = p.Parse(strings.NewReader("tanggal,debit_akun,kredit_akun,nilai\n"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestJurnalParser_MissingColumn(t *testing.T) {
	_, err := (&JurnalParser{}).Parse(strings.NewReader("tanggal,debit_akun,nilai\n2024-01-01,Kas,1\n"))
	assert.ErrorContains(t, err, `missing column "kredit_akun"`)
}

func TestJurnalParser_BadDate(t *testing.T) {
	data := "tanggal,debit_akun,kredit_akun,nilai\n01/03/2025,Kas,Modal,1\n"
	_, err := (&JurnalParser{}).Parse(strings.NewReader(data))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "parsing tanggal")
}

func TestJurnalParser_BadAmount(t *testing.T) {
	data := "tanggal,debit_akun,kredit_akun,nilai\n2025-01-03,Kas,Modal,NOTANUMBER\n"
	_, err := (&JurnalParser{}).Parse(strings.NewReader(data))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing nilai")
}

func TestJurnalParser_Format(t *testing.T) {
	p := &JurnalParser{}
	assert.Equal(t, "jurnal", p.Format())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&JurnalParser{})
	p := r.Get("jurnal")
	require.NotNil(t, p)
	assert.Equal(t, "jurnal", p.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&JurnalParser{})
	assert.NotNil(t, r.Get("Jurnal"))
	assert.NotNil(t, r.Get("JURNAL"))
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("jurnal"))
}

type memPersister struct {
	records []journal.Record
	saveErr error
	saves   int
}

func (m *memPersister) Load() ([]journal.Record, error) { return m.records, nil }

func (m *memPersister) Save(records []journal.Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.records = records
	return nil
}

func TestImportFile(t *testing.T) {
	catalog := accounts.Default()
	store := journal.Open(catalog, &memPersister{}, logging.Discard())

	added, err := ImportFile(store, catalog, DefaultRegistry().Get("jurnal"), "../../testdata/jurnal_import.csv")
	require.NoError(t, err)
	require.Len(t, added, 4)
	assert.Equal(t, "JU-0004", added[3].ID)
	assert.Equal(t, model.KindPayable, added[1].Kind)
	assert.Equal(t, model.KindReceivable, added[3].Kind)
	assert.Equal(t, 4, store.Len())
}

func TestImportFile_FailedSaveAppendsNothing(t *testing.T) {
	catalog := accounts.Default()
	p := &memPersister{saveErr: errors.New("disk full")}
	store := journal.Open(catalog, p, logging.Discard())

	added, err := ImportFile(store, catalog, &JurnalParser{}, "../../testdata/jurnal_import.csv")
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Empty(t, added)
	assert.Zero(t, store.Len())

	p.saveErr = nil
	added, err = ImportFile(store, catalog, &JurnalParser{}, "../../testdata/jurnal_import.csv")
	require.NoError(t, err)
	assert.Len(t, added, 4)
	assert.Equal(t, 1, p.saves, "one save per file")
}

func TestImportFile_BadRowAppendsNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	data := "tanggal,debit_akun,kredit_akun,nilai,nama_toko\n" +
		"2024-01-01,Kas,Modal,1000,\n" +
		"2024-01-02,Piutang Usaha,Penjualan,500,\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	catalog := accounts.Default()
	store := journal.Open(catalog, &memPersister{}, logging.Discard())

	_, err := ImportFile(store, catalog, &JurnalParser{}, path)
	assert.ErrorIs(t, err, apperrors.ErrMissingCounterparty)
	assert.Contains(t, err.Error(), "bad.csv row 3")
	assert.Zero(t, store.Len())
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "jurnal-januari.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "jurnal-januari.csv", files[0].Name)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "jurnal-januari.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "jurnal-januari.csv")
	require.NoError(t, err)

	// Source gone.
	_, err = os.Stat(filepath.Join(importDir, "jurnal-januari.csv"))
	assert.True(t, os.IsNotExist(err))

	// Destination exists.
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "jurnal-januari.csv"))
	assert.NoError(t, err)
}

func TestMarkProcessed_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "a.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "a.csv")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "import", "processed"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
