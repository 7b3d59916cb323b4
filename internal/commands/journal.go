package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bukukas/bukukas/internal/id"
	"github.com/bukukas/bukukas/internal/importer"
	"github.com/bukukas/bukukas/internal/journal"
)

func newJournalCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "General journal",
	}
	cmd.AddCommand(
		newJournalAddCommand(g),
		newJournalListCommand(g),
		newJournalRmCommand(g),
		newJournalExportCommand(g),
		newJournalImportCommand(g),
	)
	return cmd
}

func newJournalAddCommand(g *globalFlags) *cobra.Command {
	var date, desc, debit, credit, amount, creditAmount, counterparty string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a journal entry",
		Example: `  bukukas journal add --debit Kas --credit Penjualan --amount 100000 --desc "Jual tunai"
  bukukas journal add --debit "Piutang Usaha" --credit Penjualan --amount 50000 --counterparty "Toko A"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			debitAmount, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			creditValue := debitAmount
			if creditAmount != "" {
				if creditValue, err = parseAmount("credit-amount", creditAmount); err != nil {
					return err
				}
			}

			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			e, err := s.Journal.Append(journal.AppendParams{
				Date:          d,
				Description:   desc,
				DebitAccount:  debit,
				CreditAccount: credit,
				DebitAmount:   debitAmount,
				CreditAmount:  creditValue,
				Counterparty:  counterparty,
				RecordedBy:    s.user,
			})
			if err != nil {
				return err
			}
			s.Commit(cmd.Context(), fmt.Sprintf("journal: add %s %s", e.ID, e.Description))

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s / %s  %s (%s)\n",
				e.ID, e.Date.Format(dateFormat), e.DebitAccount, e.CreditAccount, rupiah(e.Amount), e.Kind)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&debit, "debit", "", "debit account (required)")
	cmd.Flags().StringVar(&credit, "credit", "", "credit account (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "debit amount (required)")
	cmd.Flags().StringVar(&creditAmount, "credit-amount", "", "credit amount, must equal --amount (default --amount)")
	cmd.Flags().StringVar(&counterparty, "counterparty", "", "supplier or customer, required for payables and receivables")
	_ = cmd.MarkFlagRequired("debit")
	_ = cmd.MarkFlagRequired("credit")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newJournalListCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List journal entries in the order recorded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}

			entries := s.Journal.All()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Belum ada transaksi.")
				return nil
			}

			tw := newTable(out, "#", "ID", "TANGGAL", "DESKRIPSI", "DEBIT", "KREDIT", "NILAI", "JENIS", "NAMA TOKO", "USER")
			for i, e := range entries {
				row(tw, strconv.Itoa(i+1), e.ID, e.Date.Format(dateFormat), e.Description,
					e.DebitAccount, e.CreditAccount, rupiah(e.Amount), string(e.Kind), e.Counterparty, e.RecordedBy)
			}
			return tw.Flush()
		},
	}
}

func newJournalRmCommand(g *globalFlags) *cobra.Command {
	var at int

	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a journal entry by ID or by list position",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == cmd.Flags().Changed("at") {
				return errors.New("give either an entry ID or --at")
			}

			s, err := g.open(cmd)
			if err != nil {
				return err
			}

			var removed string
			if len(args) == 1 {
				removed = id.Normalize(args[0])
				err = s.Journal.Remove(removed)
			} else {
				removed = "#" + strconv.Itoa(at)
				err = s.Journal.RemoveAt(at - 1)
			}
			if err != nil {
				return err
			}
			s.Commit(cmd.Context(), "journal: remove "+removed)

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", removed)
			return nil
		},
	}

	cmd.Flags().IntVar(&at, "at", 0, "1-based position as shown by journal list")
	return cmd
}

func newJournalExportCommand(g *globalFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the journal as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			entries := s.Journal.All()

			if out == "" || out == "-" {
				return journal.WriteCSV(cmd.OutOrStdout(), entries)
			}

			path := s.Path(out)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating export dir: %w", err)
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := journal.WriteCSV(f, entries); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(entries), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, relative to the books directory (default stdout)")
	return cmd
}

func newJournalImportCommand(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Append entries from CSV files",
		Long: `Append entries from CSV files with the journal export columns.
Without arguments, every CSV in <books>/import/ is imported and moved to
import/processed/.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := importer.DefaultRegistry().Get(format)
			if p == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			s, err := g.open(cmd)
			if err != nil {
				return err
			}

			files := args
			fromInbox := len(args) == 0
			if fromInbox {
				found, err := importer.Scan(s.Root)
				if err != nil {
					return err
				}
				for _, f := range found {
					files = append(files, f.Path)
				}
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "Nothing to import.")
				return nil
			}

			total := 0
			for _, path := range files {
				added, err := importer.ImportFile(s.Journal, s.Accounts, p, path)
				total += len(added)
				if err != nil {
					s.commitImport(cmd, total)
					return err
				}
				if fromInbox {
					if err := importer.MarkProcessed(s.Root, filepath.Base(path)); err != nil {
						return err
					}
				}
				fmt.Fprintf(out, "%s: %d entries\n", filepath.Base(path), len(added))
			}
			s.commitImport(cmd, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "jurnal", "input format")
	return cmd
}

func (s *session) commitImport(cmd *cobra.Command, n int) {
	if n > 0 {
		s.Commit(cmd.Context(), fmt.Sprintf("journal: import %d entries", n))
	}
}
