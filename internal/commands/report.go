package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bukukas/bukukas/internal/reports"
)

func newReportCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial statements",
	}
	cmd.AddCommand(
		newReportIncomeCommand(g),
		newReportBalanceCommand(g),
		newReportSummaryCommand(g),
	)
	return cmd
}

func newReportIncomeCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "income",
		Short: "Income statement (laba rugi)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			is, err := reports.BuildIncomeStatement(s.Journal.All(), s.Accounts, s.TaxRate)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "LAPORAN LABA RUGI - %s\n\n", s.Config.Business.Name)
			tw := newTable(out, "POS", "JUMLAH")
			row(tw, "Pendapatan", rupiah(is.Revenue))
			row(tw, "Harga Pokok Penjualan", rupiah(is.COGS))
			row(tw, "Laba Kotor", rupiah(is.GrossProfit))
			for _, line := range is.Expenses {
				row(tw, "  "+line.Account, rupiah(line.Amount))
			}
			row(tw, "Total Beban Operasional", rupiah(is.OperatingExpense))
			row(tw, "Laba Sebelum Pajak", rupiah(is.PreTaxProfit))
			row(tw, fmt.Sprintf("Pajak (%s%%)", is.TaxRate.Shift(2).String()), rupiah(is.Tax))
			row(tw, "Laba Bersih", rupiah(is.NetProfit))
			return tw.Flush()
		},
	}
}

func newReportBalanceCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Trial balance of every account (neraca saldo)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			bs := reports.BuildBalanceSheet(s.Journal.All(), s.Accounts)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "NERACA SALDO - %s\n\n", s.Config.Business.Name)
			tw := newTable(out, "AKUN", "DEBIT", "KREDIT")
			for _, r := range bs.Rows {
				row(tw, r.Account.Name, rupiah(r.TotalDebit), rupiah(r.TotalCredit))
			}
			row(tw, "TOTAL", rupiah(bs.TotalDebit), rupiah(bs.TotalCredit))
			if err := tw.Flush(); err != nil {
				return err
			}

			if bs.Balanced() {
				fmt.Fprintln(out, "\nSeimbang")
			} else {
				fmt.Fprintf(out, "\nTidak seimbang: selisih %s\n", rupiah(bs.TotalDebit.Sub(bs.TotalCredit).Abs()))
			}
			return nil
		},
	}
}

func newReportSummaryCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Money in, money out and the difference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			sum, err := reports.BuildSummary(s.Journal.All(), s.Accounts)
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout(), "POS", "JUMLAH")
			row(tw, "Pemasukan", rupiah(sum.Income))
			row(tw, "Pengeluaran", rupiah(sum.Spending))
			row(tw, "Saldo", rupiah(sum.Balance))
			return tw.Flush()
		},
	}
}
