package accounts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bukukas/bukukas/internal/apperrors"
	"github.com/bukukas/bukukas/internal/model"
)

const chartFile = "chart-of-accounts.csv"

// Service is the read-only chart of accounts, keyed by account name.
type Service struct {
	accounts   []model.Account
	byName     map[string]model.Account
	payable    string
	receivable string
}

// NewService creates a Service from an ordered chart. The chart must name
// each account once and carry exactly one payable and one receivable
// control account.
func NewService(chart []model.Account) (*Service, error) {
	s := &Service{
		accounts: chart,
		byName:   make(map[string]model.Account, len(chart)),
	}
	for _, a := range chart {
		if a.Name == "" {
			return nil, fmt.Errorf("account %d has no name", a.Code)
		}
		if _, dup := s.byName[a.Name]; dup {
			return nil, fmt.Errorf("duplicate account %q", a.Name)
		}
		s.byName[a.Name] = a

		switch a.Category {
		case model.CategoryPayable:
			if s.payable != "" {
				return nil, fmt.Errorf("second payable control account %q", a.Name)
			}
			s.payable = a.Name
		case model.CategoryReceivable:
			if s.receivable != "" {
				return nil, fmt.Errorf("second receivable control account %q", a.Name)
			}
			s.receivable = a.Name
		}
	}
	if s.payable == "" || s.receivable == "" {
		return nil, errors.New("chart needs one payable and one receivable control account")
	}
	return s, nil
}

// Default returns a Service over DefaultChart.
func Default() *Service {
	s, err := NewService(DefaultChart())
	if err != nil {
		panic("default chart: " + err.Error())
	}
	return s
}

// Load reads accounts/chart-of-accounts.csv from a books root. A books
// directory without a chart uses the default one.
func Load(root string) (*Service, error) {
	path := filepath.Join(root, "accounts", chartFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	chart, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(chart)
}

// All returns all accounts in chart order.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Lookup returns an account by name.
func (s *Service) Lookup(name string) (model.Account, error) {
	a, ok := s.byName[name]
	if !ok {
		return model.Account{}, apperrors.Invalid(apperrors.ErrUnknownAccount, "%q", name)
	}
	return a, nil
}

// Classify returns the category of the named account.
func (s *Service) Classify(name string) (model.Category, error) {
	a, err := s.Lookup(name)
	if err != nil {
		return "", err
	}
	return a.Category, nil
}

// Exists reports whether an account name is in the chart.
func (s *Service) Exists(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// ByCategory returns all accounts with the given category.
func (s *Service) ByCategory(c model.Category) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Category == c {
			result = append(result, a)
		}
	}
	return result
}

// ControlAccount returns the control account name for a payable or
// receivable kind, or "" for cash.
func (s *Service) ControlAccount(kind model.TransactionKind) string {
	switch kind {
	case model.KindPayable:
		return s.payable
	case model.KindReceivable:
		return s.receivable
	}
	return ""
}

// IsControlAccount reports whether name is the control account for kind.
func (s *Service) IsControlAccount(name string, kind model.TransactionKind) bool {
	control := s.ControlAccount(kind)
	return control != "" && name == control
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(root string) error {
	dir := filepath.Join(root, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, chartFile))
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
