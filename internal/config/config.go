package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/bukukas/bukukas/internal/validate"
)

// FileName is the config file at the root of a books directory.
const FileName = "bukukas.yaml"

// EnvPrefix prefixes every environment override, e.g. BUKUKAS_USER.
const EnvPrefix = "bukukas"

// Config represents the top-level bukukas.yaml configuration.
type Config struct {
	Business  BusinessConfig  `yaml:"business"`
	Books     BooksConfig     `yaml:"books"`
	Reporting ReportingConfig `yaml:"reporting"`
	Inventory InventoryConfig `yaml:"inventory"`
	Git       GitConfig       `yaml:"git"`
	Log       LogConfig       `yaml:"log"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// BooksConfig names the data files, relative to the books directory.
type BooksConfig struct {
	JournalFile   string `yaml:"journal_file" validate:"required"`
	InventoryFile string `yaml:"inventory_file" validate:"required"`
	ExportDir     string `yaml:"export_dir" validate:"required"`
}

// ReportingConfig controls derived reports.
type ReportingConfig struct {
	TaxRate     string `yaml:"tax_rate"`                                        // decimal fraction, e.g. "0.10"
	LedgerOrder string `yaml:"ledger_order" validate:"omitempty,oneof=store date"` // general ledger posting order
}

// InventoryConfig controls stock costing.
type InventoryConfig struct {
	Oversell string `yaml:"oversell" validate:"omitempty,oneof=clamp reject"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Env holds overrides read from the environment.
type Env struct {
	User     string `split_words:"true"`
	LogLevel string `split_words:"true"`
	Books    string
}

// Load reads a bukukas.yaml file from disk. Keys missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("checking config: %w", err)
	}
	return cfg, nil
}

// LoadDir reads bukukas.yaml from a books directory, falling back to the
// defaults when the directory has none.
func LoadDir(root string) (*Config, error) {
	cfg, err := Load(filepath.Join(root, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(""), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// LoadEnv reads BUKUKAS_USER, BUKUKAS_LOG_LEVEL and BUKUKAS_BOOKS.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, fmt.Errorf("reading environment: %w", err)
	}
	return env, nil
}

// Default returns a Config with sensible defaults for a new set of books.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Books: BooksConfig{
			JournalFile:   "jurnal_data.json",
			InventoryFile: "inventory_data.json",
			ExportDir:     "export",
		},
		Reporting: ReportingConfig{
			TaxRate:     "0.10",
			LedgerOrder: "store",
		},
		Inventory: InventoryConfig{
			Oversell: "clamp",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Bukukas",
			AuthorEmail: "bukukas@localhost",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Validate checks enumerated settings and the tax rate.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := c.TaxRate(); err != nil {
		return err
	}
	return nil
}

// TaxRate returns the income tax rate as a fraction in [0, 1).
func (c *Config) TaxRate() (decimal.Decimal, error) {
	if c.Reporting.TaxRate == "" {
		return decimal.RequireFromString("0.10"), nil
	}
	rate, err := decimal.NewFromString(c.Reporting.TaxRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing tax_rate %q: %w", c.Reporting.TaxRate, err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("tax_rate %s outside [0, 1)", rate)
	}
	return rate, nil
}
