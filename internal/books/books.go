// Package books opens a books directory: its config, chart of accounts,
// journal and inventory, as one session handle.
package books

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/bukukas/bukukas/internal/accounts"
	"github.com/bukukas/bukukas/internal/config"
	"github.com/bukukas/bukukas/internal/gitops"
	"github.com/bukukas/bukukas/internal/inventory"
	"github.com/bukukas/bukukas/internal/journal"
	"github.com/bukukas/bukukas/internal/ledger"
	"github.com/bukukas/bukukas/internal/storage"
)

// Books is an open books directory. It is created once per process and
// passed to whatever needs the stores.
type Books struct {
	Root      string
	Config    *config.Config
	Accounts  *accounts.Service
	Journal   *journal.Store
	Inventory *inventory.Store

	TaxRate     decimal.Decimal
	LedgerOrder ledger.Order

	log *slog.Logger
}

// Open loads everything under root. A directory that was never initialised
// opens with the default config and chart and empty stores.
func Open(root string, logger *slog.Logger) (*Books, error) {
	cfg, err := config.LoadDir(root)
	if err != nil {
		return nil, err
	}

	taxRate, err := cfg.TaxRate()
	if err != nil {
		return nil, err
	}
	order, err := ledger.ParseOrder(cfg.Reporting.LedgerOrder)
	if err != nil {
		return nil, err
	}
	policy, err := inventory.ParsePolicy(cfg.Inventory.Oversell)
	if err != nil {
		return nil, err
	}

	catalog, err := accounts.Load(root)
	if err != nil {
		return nil, err
	}

	b := &Books{
		Root:        root,
		Config:      cfg,
		Accounts:    catalog,
		TaxRate:     taxRate,
		LedgerOrder: order,
		log:         logger,
	}
	b.Journal = journal.Open(catalog, storage.NewFile[journal.Record](b.Path(cfg.Books.JournalFile)), logger)
	b.Inventory = inventory.Open(storage.NewFile[inventory.Record](b.Path(cfg.Books.InventoryFile)), policy, logger)
	return b, nil
}

// Path resolves a config-relative file name against the books root.
func (b *Books) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(b.Root, name)
}

// Commit records the current state of the books in git when auto-commit is
// on and the books directory is a repository. Failures are logged, not
// returned: the data is already saved.
func (b *Books) Commit(ctx context.Context, message string) {
	if !b.Config.Git.AutoCommit || !gitops.IsRepo(b.Root) {
		return
	}
	c := &gitops.Committer{
		Dir:         b.Root,
		AuthorName:  b.Config.Git.AuthorName,
		AuthorEmail: b.Config.Git.AuthorEmail,
	}
	hash, err := c.CommitAll(ctx, message)
	switch {
	case errors.Is(err, gitops.ErrNothingToCommit):
		b.log.Debug("nothing to commit", "message", message)
	case err != nil:
		b.log.Warn("auto-commit failed", "err", fmt.Errorf("committing %q: %w", message, err))
	default:
		b.log.Info("committed", "hash", hash, "message", message)
	}
}
