package journal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bukukas/bukukas/internal/apperrors"
	"github.com/bukukas/bukukas/internal/model"
	"github.com/bukukas/bukukas/internal/validate"
)

// UnknownUser stamps entries created without an identity.
const UnknownUser = "unknown"

// Catalog is the part of the chart of accounts the journal needs.
type Catalog interface {
	Exists(name string) bool
	IsControlAccount(name string, kind model.TransactionKind) bool
}

// AppendParams holds a candidate entry as entered. Debit and credit amounts
// are entered separately and must match.
type AppendParams struct {
	Date          time.Time `validate:"required"`
	Description   string    `validate:"max=500"`
	DebitAccount  string
	CreditAccount string
	DebitAmount   decimal.Decimal
	CreditAmount  decimal.Decimal
	Counterparty  string `validate:"max=200"`
	RecordedBy    string `validate:"max=100"`
}

// NewEntry validates params against the catalog and returns the entry they
// describe, without an ID.
func NewEntry(catalog Catalog, params AppendParams) (model.Entry, error) {
	if err := validate.Struct(params); err != nil {
		return model.Entry{}, err
	}

	if !params.DebitAmount.Equal(params.CreditAmount) {
		return model.Entry{}, apperrors.Invalid(apperrors.ErrUnbalancedEntry,
			"debit %s, credit %s", params.DebitAmount, params.CreditAmount)
	}

	recordedBy := strings.TrimSpace(params.RecordedBy)
	if recordedBy == "" {
		recordedBy = UnknownUser
	}

	e := model.Entry{
		Date:          params.Date,
		Description:   params.Description,
		DebitAccount:  params.DebitAccount,
		CreditAccount: params.CreditAccount,
		Amount:        params.DebitAmount,
		Counterparty:  strings.TrimSpace(params.Counterparty),
		RecordedBy:    recordedBy,
	}
	return normalize(catalog, e)
}

// normalize checks entry invariants, derives the transaction kind from the
// accounts, and clears the counterparty of cash entries.
func normalize(catalog Catalog, e model.Entry) (model.Entry, error) {
	if e.Amount.IsNegative() {
		return model.Entry{}, apperrors.Invalid(apperrors.ErrNegativeAmount, "%s", e.Amount)
	}
	if !catalog.Exists(e.DebitAccount) {
		return model.Entry{}, apperrors.Invalid(apperrors.ErrUnknownAccount, "debit account %q", e.DebitAccount)
	}
	if !catalog.Exists(e.CreditAccount) {
		return model.Entry{}, apperrors.Invalid(apperrors.ErrUnknownAccount, "credit account %q", e.CreditAccount)
	}

	e.Date = truncateDay(e.Date)
	e.Kind = KindFor(catalog, e.DebitAccount, e.CreditAccount)
	if e.Kind == model.KindCash {
		e.Counterparty = ""
	} else if e.Counterparty == "" {
		return model.Entry{}, apperrors.Invalid(apperrors.ErrMissingCounterparty, "%s entry", e.Kind)
	}
	return e, nil
}

// KindFor derives the transaction kind of an entry. The payable control
// account takes precedence over the receivable one.
func KindFor(catalog Catalog, debit, credit string) model.TransactionKind {
	switch {
	case catalog.IsControlAccount(debit, model.KindPayable), catalog.IsControlAccount(credit, model.KindPayable):
		return model.KindPayable
	case catalog.IsControlAccount(debit, model.KindReceivable), catalog.IsControlAccount(credit, model.KindReceivable):
		return model.KindReceivable
	}
	return model.KindCash
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
