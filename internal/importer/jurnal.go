package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bukukas/bukukas/internal/journal"
)

// JurnalParser reads journal tables keyed by header: the CSV written by
// `journal export` or a spreadsheet saved with the durable record columns.
// Column order does not matter; id and jenis_transaksi are ignored because
// both are assigned on append.
type JurnalParser struct{}

var requiredColumns = []string{"tanggal", "debit_akun", "kredit_akun", "nilai"}

// Format returns the parser name.
func (p *JurnalParser) Format() string { return "jurnal" }

// Parse reads the table and returns one AppendParams per data row.
func (p *JurnalParser) Parse(r io.Reader) ([]journal.AppendParams, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	cr.FieldsPerRecord = len(header)

	var params []journal.AppendParams
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		get := func(name string) string {
			if i, ok := cols[name]; ok {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		e, err := journal.UnmarshalEntry(journal.Record{
			Tanggal:    get("tanggal"),
			Deskripsi:  get("deskripsi"),
			DebitAkun:  get("debit_akun"),
			KreditAkun: get("kredit_akun"),
			Nilai:      json.Number(get("nilai")),
			NamaToko:   get("nama_toko"),
			User:       get("user"),
		})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		params = append(params, journal.AppendParams{
			Date:          e.Date,
			Description:   e.Description,
			DebitAccount:  e.DebitAccount,
			CreditAccount: e.CreditAccount,
			DebitAmount:   e.Amount,
			CreditAmount:  e.Amount,
			Counterparty:  e.Counterparty,
			RecordedBy:    e.RecordedBy,
		})
	}
	return params, nil
}
