package commands

import (
	"cmp"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bukukas/bukukas/internal/books"
	"github.com/bukukas/bukukas/internal/buildinfo"
	"github.com/bukukas/bukukas/internal/config"
	"github.com/bukukas/bukukas/internal/logging"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	books    string
	user     string
	logLevel string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "bukukas",
		Short:   "Double-entry bookkeeping for a small business",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.books, "books", "", "books directory (default $BUKUKAS_BOOKS or .)")
	rootCmd.PersistentFlags().StringVar(&g.user, "user", "", "name recorded on new entries (default $BUKUKAS_USER)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(
		newInitCommand(),
		newAccountsCommand(g),
		newJournalCommand(g),
		newLedgerCommand(g),
		newSubsidiaryCommand(g),
		newInventoryCommand(g),
		newReportCommand(g),
	)

	return rootCmd
}

// session is what a subcommand works with once the books are open.
type session struct {
	*books.Books
	user string
	log  *slog.Logger
}

// open resolves the books directory and identity from flags, environment
// and config, in that order, and opens the books.
func (g *globalFlags) open(cmd *cobra.Command) (*session, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	root := cmp.Or(g.books, env.Books, ".")

	cfg, err := config.LoadDir(root)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cmp.Or(g.logLevel, env.LogLevel, cfg.Log.Level), cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	b, err := books.Open(root, logger)
	if err != nil {
		return nil, fmt.Errorf("opening books at %s: %w", root, err)
	}
	return &session{Books: b, user: cmp.Or(g.user, env.User), log: logger}, nil
}
