package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the parsing and categorization tables for a run.
// It is built once and passed into the parser and categorizer; nothing
// mutates it afterwards.
type Config struct {
	// DateFormats are tried in order; the first successful parse wins.
	DateFormats []string `yaml:"date_formats"`
	// Categories are matched in declaration order; first match wins.
	Categories []CategoryRule `yaml:"categories"`
	// OFX export identifiers.
	OFX OFXConfig `yaml:"ofx"`
}

// CategoryRule maps one cost head to its narration keywords.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// OFXConfig carries the bank/account identifiers written into OFX output.
type OFXConfig struct {
	BankID    string `yaml:"bank_id"`
	AccountID string `yaml:"account_id"`
	Org       string `yaml:"org"`
	Currency  string `yaml:"currency"`
}

// Load reads a YAML config file from disk. Missing sections fall back to
// the defaults, so a file may override only the category table.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.DateFormats) == 0 {
		cfg.DateFormats = Default().DateFormats
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = Default().Categories
	}
	return cfg, nil
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

// Default returns the built-in configuration for HDFC-style statements.
func Default() *Config {
	return &Config{
		DateFormats: []string{
			"02/01/06",
			"02/01/2006",
			"02-01-06",
		},
		Categories: []CategoryRule{
			{Name: "Utilities", Keywords: []string{
				"electric", "water", "internet", "phone", "utility",
				"recharge", "jio", "airtel", "broadband", "dth",
			}},
			{Name: "Salary & Wages", Keywords: []string{
				"salary", "wage", "payroll", "employee",
			}},
			{Name: "Rent", Keywords: []string{"rent", "lease"}},
			{Name: "Bank Charges", Keywords: []string{
				"charge", "chrg", "bank fee", "amb chrg", "si fail",
			}},
			{Name: "Transportation", Keywords: []string{
				"fuel", "petrol", "diesel", "transport", "travel",
				"uber", "ola", "cab",
			}},
			{Name: "Marketing", Keywords: []string{
				"marketing", "advertis", "promotion", "print",
			}},
			{Name: "Taxes", Keywords: []string{"tax", "gst", "tds"}},
			{Name: "Maintenance", Keywords: []string{
				"maintenance", "repair", "service",
			}},
			{Name: "Purchases/Professional Fees", Keywords: []string{
				"purchase", "vendor", "supplier", "legal", "consultant",
				"professional", "accounting", "audit",
			}},
		},
		OFX: OFXConfig{
			BankID:    "BANK0000000",
			AccountID: "Account",
			Org:       "Bank",
			Currency:  "INR",
		},
	}
}
