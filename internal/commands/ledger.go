package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bukukas/bukukas/internal/export"
	"github.com/bukukas/bukukas/internal/ledger"
)

func newLedgerCommand(g *globalFlags) *cobra.Command {
	var order string

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "General ledger (buku besar)",
	}
	cmd.PersistentFlags().StringVar(&order, "order", "", "posting order: store or date (default from config)")

	cmd.AddCommand(newLedgerShowCommand(g, &order), newLedgerExportCommand(g, &order))
	return cmd
}

func resolveOrder(s *session, flag string) (ledger.Order, error) {
	if flag == "" {
		return s.LedgerOrder, nil
	}
	return ledger.ParseOrder(flag)
}

func newLedgerShowCommand(g *globalFlags, order *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show [account]",
		Short: "Show the running balance of one account, or of every active account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			o, err := resolveOrder(s, *order)
			if err != nil {
				return err
			}
			entries := s.Journal.All()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				if _, err := s.Accounts.Lookup(args[0]); err != nil {
					return err
				}
				return printLedger(out, ledger.Ledger(entries, args[0], o))
			}

			ledgers := ledger.Ledgers(entries, s.Accounts, o)
			if len(ledgers) == 0 {
				fmt.Fprintln(out, "Belum ada transaksi.")
				return nil
			}
			for i, l := range ledgers {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if err := printLedger(out, l); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printLedger(out io.Writer, l ledger.AccountLedger) error {
	fmt.Fprintf(out, "== %s ==\n", l.Account)
	if len(l.Postings) == 0 {
		fmt.Fprintln(out, "Tidak ada transaksi.")
		return nil
	}

	tw := newTable(out, "TANGGAL", "KETERANGAN", "DEBIT", "KREDIT", "SALDO")
	for _, p := range l.Postings {
		row(tw, p.Date.Format(dateFormat), postingLabel(p), rupiah(p.Debit), rupiah(p.Credit), rupiah(p.Balance))
	}
	row(tw, "", "Total", rupiah(l.TotalDebit), rupiah(l.TotalCredit), rupiah(l.Ending()))
	return tw.Flush()
}

func postingLabel(p ledger.Posting) string {
	if p.Counterparty == "" {
		return p.Description
	}
	return p.Description + " (" + p.Counterparty + ")"
}

func newLedgerExportCommand(g *globalFlags, order *string) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one CSV file per active account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			o, err := resolveOrder(s, *order)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = s.Config.Books.ExportDir
			}

			paths, err := export.WriteLedgers(s.Path(dir), ledger.Ledgers(s.Journal.All(), s.Accounts, o))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "output directory, relative to the books directory (default from config)")
	return cmd
}
