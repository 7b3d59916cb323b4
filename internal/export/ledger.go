// Package export writes ledgers out as CSV tables.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bukukas/bukukas/internal/ledger"
)

var ledgerHeader = []string{"tanggal", "keterangan", "debit", "kredit", "saldo"}

// WriteLedger writes one account ledger as CSV, header first.
func WriteLedger(w io.Writer, l ledger.AccountLedger) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ledgerHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, p := range l.Postings {
		row := []string{
			p.Date.Format("2006-01-02"),
			p.Description,
			p.Debit.StringFixed(2),
			p.Credit.StringFixed(2),
			p.Balance.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLedgers writes each ledger to its own file in dir and returns the
// paths written, in ledger order.
func WriteLedgers(dir string, ledgers []ledger.AccountLedger) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	used := make(map[string]int)
	paths := make([]string, 0, len(ledgers))
	for _, l := range ledgers {
		name := FileName(l.Account)
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}

		path := filepath.Join(dir, name+".csv")
		if err := writeFile(path, l); err != nil {
			return paths, fmt.Errorf("exporting %s: %w", l.Account, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FileName turns an account name into a file name stem:
// "Beban Listrik & Air" becomes "beban-listrik-air".
func FileName(account string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(account) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		return "akun"
	}
	return name
}

func writeFile(path string, l ledger.AccountLedger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteLedger(f, l); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
