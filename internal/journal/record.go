package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bukukas/bukukas/internal/model"
)

const dateFormat = "2006-01-02"

// Record is the durable shape of an entry in jurnal_data.json. Field order
// is significant and must not change.
type Record struct {
	Tanggal        string      `json:"tanggal"`
	Deskripsi      string      `json:"deskripsi"`
	DebitAkun      string      `json:"debit_akun"`
	KreditAkun     string      `json:"kredit_akun"`
	Nilai          json.Number `json:"nilai"`
	JenisTransaksi string      `json:"jenis_transaksi"`
	NamaToko       string      `json:"nama_toko"`
	User           string      `json:"user"`
}

// MarshalEntry converts an Entry to its durable record. IDs are not stored.
func MarshalEntry(e model.Entry) Record {
	return Record{
		Tanggal:        e.Date.Format(dateFormat),
		Deskripsi:      e.Description,
		DebitAkun:      e.DebitAccount,
		KreditAkun:     e.CreditAccount,
		Nilai:          json.Number(e.Amount.String()),
		JenisTransaksi: string(e.Kind),
		NamaToko:       e.Counterparty,
		User:           e.RecordedBy,
	}
}

// UnmarshalEntry converts a durable record to an Entry without an ID.
// Records whose date carries a time part are truncated to the day.
func UnmarshalEntry(r Record) (model.Entry, error) {
	date, err := parseDate(r.Tanggal)
	if err != nil {
		return model.Entry{}, err
	}

	if r.Nilai == "" {
		return model.Entry{}, fmt.Errorf("missing nilai")
	}
	amount, err := decimal.NewFromString(string(r.Nilai))
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing nilai %q: %w", r.Nilai, err)
	}

	return model.Entry{
		Date:          date,
		Description:   r.Deskripsi,
		DebitAccount:  r.DebitAkun,
		CreditAccount: r.KreditAkun,
		Amount:        amount,
		Kind:          model.TransactionKind(r.JenisTransaksi),
		Counterparty:  r.NamaToko,
		RecordedBy:    r.User,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if len(s) > len(dateFormat) {
		s = s[:len(dateFormat)]
	}
	d, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing tanggal %q: %w", s, err)
	}
	return d, nil
}
