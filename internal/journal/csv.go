package journal

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bukukas/bukukas/internal/model"
)

var csvHeader = []string{"id", "tanggal", "deskripsi", "debit_akun", "kredit_akun", "nilai", "jenis_transaksi", "nama_toko", "user"}

// WriteCSV writes the journal as a CSV table (including header).
func WriteCSV(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		rec := MarshalEntry(e)
		row := []string{e.ID, rec.Tanggal, rec.Deskripsi, rec.DebitAkun, rec.KreditAkun,
			e.Amount.StringFixed(2), rec.JenisTransaksi, rec.NamaToko, rec.User}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
