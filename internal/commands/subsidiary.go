package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bukukas/bukukas/internal/ledger"
	"github.com/bukukas/bukukas/internal/model"
)

func newSubsidiaryCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subsidiary",
		Short: "Payable and receivable ledgers per counterparty",
	}
	cmd.AddCommand(
		newSubsidiaryKindCommand(g, "payable", "Utang per supplier", model.KindPayable),
		newSubsidiaryKindCommand(g, "receivable", "Piutang per customer", model.KindReceivable),
	)
	return cmd
}

func newSubsidiaryKindCommand(g *globalFlags, use, short string, kind model.TransactionKind) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [counterparty]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			sub, err := ledger.Subsidiary(s.Journal.All(), s.Accounts, kind)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			groups := sub.Groups()
			if len(args) == 1 {
				g, ok := sub.Group(args[0])
				if !ok {
					fmt.Fprintf(out, "Tidak ada transaksi untuk %s.\n", args[0])
					return nil
				}
				groups = []ledger.Group{g}
			}
			if len(groups) == 0 {
				fmt.Fprintln(out, "Belum ada transaksi.")
				return nil
			}

			for i, grp := range groups {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "== %s ==\n", grp.Counterparty)
				tw := newTable(out, "TANGGAL", "ID", "KETERANGAN", "DEBIT", "KREDIT", "SALDO")
				for _, p := range grp.Postings {
					row(tw, p.Date.Format(dateFormat), p.EntryID, p.Description, rupiah(p.Debit), rupiah(p.Credit), rupiah(p.Balance))
				}
				row(tw, "", "", "Total", rupiah(grp.TotalDebit), rupiah(grp.TotalCredit), rupiah(grp.EndingBalance()))
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			if len(args) == 0 {
				fmt.Fprintf(out, "\nTotal %s: %s\n", sub.ControlAccount, rupiah(sub.Total()))
			}
			return nil
		},
	}
}
