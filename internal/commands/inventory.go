package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bukukas/bukukas/internal/id"
	"github.com/bukukas/bukukas/internal/inventory"
	"github.com/bukukas/bukukas/internal/model"
)

func newInventoryCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Stock card with moving-average costing",
	}
	cmd.AddCommand(
		newInventoryAddCommand(g),
		newInventoryListCommand(g),
		newInventoryRmCommand(g),
		newInventoryCardCommand(g),
	)
	return cmd
}

func parseMovementKind(s string) (model.MovementKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "masuk", "in":
		return model.MovementIn, nil
	case "keluar", "out":
		return model.MovementOut, nil
	}
	return "", fmt.Errorf("invalid --type %q (want Masuk or Keluar)", s)
}

func newInventoryAddCommand(g *globalFlags) *cobra.Command {
	var date, desc, kind string
	var qty, amount int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a stock movement",
		Example: `  bukukas inventory add --type Masuk --qty 10 --amount 100000 --desc "Beli pakan"
  bukukas inventory add --type Keluar --qty 4 --desc "Jual pakan"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			k, err := parseMovementKind(kind)
			if err != nil {
				return err
			}

			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			m, err := s.Inventory.Append(inventory.MovementParams{
				Date:        d,
				Description: desc,
				Kind:        k,
				Quantity:    qty,
				Amount:      amount,
			})
			if err != nil {
				return err
			}
			s.Commit(cmd.Context(), fmt.Sprintf("inventory: add %s %s %d", m.ID, m.Kind, m.Quantity))

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s %d\n", m.ID, m.Date.Format(dateFormat), m.Kind, m.Quantity)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "movement date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&kind, "type", "", "Masuk or Keluar (required)")
	cmd.Flags().Int64Var(&qty, "qty", 0, "quantity, greater than zero (required)")
	cmd.Flags().Int64Var(&amount, "amount", 0, "lot cost for incoming stock")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("qty")

	return cmd
}

func newInventoryListCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stock movements in the order recorded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}

			movements := s.Inventory.All()
			out := cmd.OutOrStdout()
			if len(movements) == 0 {
				fmt.Fprintln(out, "Belum ada transaksi.")
				return nil
			}

			tw := newTable(out, "#", "ID", "TANGGAL", "KETERANGAN", "TIPE", "QTY", "NILAI")
			for i, m := range movements {
				row(tw, strconv.Itoa(i+1), m.ID, m.Date.Format(dateFormat), m.Description,
					string(m.Kind), strconv.FormatInt(m.Quantity, 10), rupiahInt(m.Amount))
			}
			return tw.Flush()
		},
	}
}

func newInventoryRmCommand(g *globalFlags) *cobra.Command {
	var at int

	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a stock movement by ID or by list position",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == cmd.Flags().Changed("at") {
				return errors.New("give either a movement ID or --at")
			}

			s, err := g.open(cmd)
			if err != nil {
				return err
			}

			var removed string
			if len(args) == 1 {
				removed = id.Normalize(args[0])
				err = s.Inventory.Remove(removed)
			} else {
				removed = "#" + strconv.Itoa(at)
				err = s.Inventory.RemoveAt(at - 1)
			}
			if err != nil {
				return err
			}
			s.Commit(cmd.Context(), "inventory: remove "+removed)

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", removed)
			return nil
		},
	}

	cmd.Flags().IntVar(&at, "at", 0, "1-based position as shown by inventory list")
	return cmd
}

func newInventoryCardCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "card",
		Short: "Show the stock card and current valuation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			positions, val, err := s.Inventory.Card()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(positions) == 0 {
				fmt.Fprintln(out, "Belum ada transaksi.")
				return nil
			}

			oversold := 0
			tw := newTable(out, "TANGGAL", "KETERANGAN", "MASUK", "KELUAR", "HARGA/UNIT", "HPP", "SISA", "NILAI", "RATA-RATA")
			for _, p := range positions {
				cogs := "-"
				if p.HasCOGS {
					cogs = rupiahInt(p.COGS)
				}
				qtyOut := quantity(p.QtyOut)
				if p.Oversold {
					qtyOut += "!"
					oversold++
				}
				row(tw, p.Date.Format(dateFormat), p.Description,
					quantity(p.QtyIn), qtyOut, rupiahInt(p.UnitCost), cogs,
					strconv.FormatInt(p.QtyOnHand, 10), rupiahInt(p.Value), rupiahInt(p.AverageCost))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if oversold > 0 {
				fmt.Fprintf(out, "\n! %d pengeluaran melebihi stok, sisa dibulatkan ke 0\n", oversold)
			}
			fmt.Fprintf(out, "\nStok akhir: %d unit\nNilai persediaan: %s\nHarga rata-rata: %s\n",
				val.QuantityOnHand, rupiahInt(val.InventoryValue), rupiahInt(val.AverageUnitCost))
			return nil
		},
	}
}

func quantity(n int64) string {
	if n == 0 {
		return "-"
	}
	return strconv.FormatInt(n, 10)
}
