package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ktsuji/csvchecker/internal/checker"
)

// Profile is the optional YAML file the CLI accepts to override the
// validation rules for a different export layout. Zero values fall back
// to the built-in defaults, so a profile only needs to name what it
// changes.
type Profile struct {
	Limits struct {
		MaxFileBytes     int64 `yaml:"max_file_bytes"`
		MaxPhysicalLines int   `yaml:"max_physical_lines"`
	} `yaml:"limits"`

	Encoding string `yaml:"encoding"`

	Columns struct {
		StoreName     *int `yaml:"store_name"`
		SlipNumber    *int `yaml:"slip_number"`
		MandatoryDate *int `yaml:"mandatory_date"`
		IgnoredDate   *int `yaml:"ignored_date"`
		SecondaryDate *int `yaml:"secondary_date"`
		StoreCode     *int `yaml:"store_code"`
		Amount        *int `yaml:"amount"`
	} `yaml:"columns"`

	FlaggedStoreCode string   `yaml:"flagged_store_code"`
	AllowedAmounts   []string `yaml:"allowed_amounts"`
}

// LoadProfile reads a YAML profile and applies it over the default
// checker configuration.
func LoadProfile(path string) (checker.Config, error) {
	cfg := checker.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return cfg, fmt.Errorf("parse profile: %w", err)
	}

	return p.apply(cfg)
}

// apply overlays the profile onto base, validating the overrides.
func (p Profile) apply(base checker.Config) (checker.Config, error) {
	cfg := base

	if p.Limits.MaxFileBytes != 0 {
		if p.Limits.MaxFileBytes < 0 {
			return cfg, fmt.Errorf("limits.max_file_bytes must be positive, got %d", p.Limits.MaxFileBytes)
		}
		cfg.MaxFileBytes = p.Limits.MaxFileBytes
	}
	if p.Limits.MaxPhysicalLines != 0 {
		if p.Limits.MaxPhysicalLines < 0 {
			return cfg, fmt.Errorf("limits.max_physical_lines must be positive, got %d", p.Limits.MaxPhysicalLines)
		}
		cfg.MaxPhysicalLines = p.Limits.MaxPhysicalLines
	}

	if p.Encoding != "" {
		cfg.Encoding = p.Encoding
	}

	cols := []struct {
		name string
		src  *int
		dst  *int
	}{
		{"columns.store_name", p.Columns.StoreName, &cfg.StoreNameColumn},
		{"columns.slip_number", p.Columns.SlipNumber, &cfg.SlipNumberColumn},
		{"columns.mandatory_date", p.Columns.MandatoryDate, &cfg.MandatoryDateColumn},
		{"columns.ignored_date", p.Columns.IgnoredDate, &cfg.IgnoredDateColumn},
		{"columns.secondary_date", p.Columns.SecondaryDate, &cfg.SecondaryDateColumn},
		{"columns.store_code", p.Columns.StoreCode, &cfg.StoreCodeColumn},
		{"columns.amount", p.Columns.Amount, &cfg.AmountColumn},
	}
	for _, c := range cols {
		if c.src == nil {
			continue
		}
		if *c.src < 0 {
			return cfg, fmt.Errorf("%s must be a zero-based column index, got %d", c.name, *c.src)
		}
		*c.dst = *c.src
	}

	if p.FlaggedStoreCode != "" {
		cfg.FlaggedStoreCode = p.FlaggedStoreCode
	}
	if len(p.AllowedAmounts) > 0 {
		cfg.AllowedAmounts = p.AllowedAmounts
	}

	return cfg, nil
}
