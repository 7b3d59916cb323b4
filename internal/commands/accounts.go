package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bukukas/bukukas/internal/model"
)

func newAccountsCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts",
	}
	cmd.AddCommand(newAccountsListCommand(g))
	return cmd
}

func newAccountsListCommand(g *globalFlags) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts in chart order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}

			list := s.Accounts.All()
			if category != "" {
				list = s.Accounts.ByCategory(model.Category(category))
			}

			tw := newTable(cmd.OutOrStdout(), "KODE", "AKUN", "TIPE", "KATEGORI")
			for _, a := range list {
				row(tw, strconv.Itoa(a.Code), a.Name, string(a.Type), string(a.Category))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only accounts in this category")
	return cmd
}
