// Package config loads linkml2valve settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"linkml2valve/internal/datagen"
	"linkml2valve/internal/mapper"
)

// Config holds all configuration for linkml2valve.
// Environment variables override YAML values; command-line flags override both.
type Config struct {
	Mapping MappingConfig `yaml:"mapping"`
	Data    DataConfig    `yaml:"data"`

	// BaselineDir holds table.tsv, column.tsv and datatype.tsv replacing the
	// embedded baseline rows.
	BaselineDir string `yaml:"baseline_dir" env:"LINKML2VALVE_BASELINE_DIR" env-default:""`
	// SQLitePath, if set, receives an export of every produced table.
	SQLitePath string `yaml:"sqlite" env:"LINKML2VALVE_SQLITE" env-default:""`
}

// MappingConfig holds the names and defaults used by the mapper.
type MappingConfig struct {
	DefaultDatatype string `yaml:"default_datatype" env:"LINKML2VALVE_DEFAULT_DATATYPE" env-default:"text"`
	// DefaultRange overrides the schema's default_range when set.
	DefaultRange    string `yaml:"default_range" env:"LINKML2VALVE_DEFAULT_RANGE" env-default:""`
	PrimaryKey      string `yaml:"primary_key" env:"LINKML2VALVE_PRIMARY_KEY" env-default:"id"`
	EnumPrimaryKey  string `yaml:"enum_primary_key" env:"LINKML2VALVE_ENUM_PRIMARY_KEY" env-default:"permissible_value"`
	MeaningColumn   string `yaml:"meaning_column" env:"LINKML2VALVE_MEANING_COLUMN" env-default:"meaning"`
	MeaningDatatype string `yaml:"meaning_datatype" env:"LINKML2VALVE_MEANING_DATATYPE" env-default:"CURIE"`
	// EnumDatatypes emits an in(...) datatype per enumeration.
	EnumDatatypes bool `yaml:"enum_datatypes" env:"LINKML2VALVE_ENUM_DATATYPES" env-default:"false"`
}

// DataConfig holds data-table settings.
type DataConfig struct {
	// Subdir is the directory, relative to the output directory, of class data tables.
	Subdir string `yaml:"subdir" env:"LINKML2VALVE_DATA_SUBDIR" env-default:"data"`
	// Rows is the number of synthetic rows generated per class table.
	Rows int `yaml:"rows" env:"LINKML2VALVE_ROWS" env-default:"0"`
	// Seed makes synthetic rows reproducible.
	Seed uint64 `yaml:"seed" env:"LINKML2VALVE_SEED" env-default:"1"`
}

// Load reads the YAML file at path with environment variable overrides.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Mapping.DefaultDatatype == "":
		return errors.New("default_datatype must not be empty")
	case c.Mapping.PrimaryKey == "":
		return errors.New("primary_key must not be empty")
	case c.Mapping.EnumPrimaryKey == "":
		return errors.New("enum_primary_key must not be empty")
	case c.Mapping.EnumPrimaryKey == c.Mapping.MeaningColumn:
		return errors.New("enum_primary_key and meaning_column must differ")
	case c.Data.Rows < 0:
		return fmt.Errorf("rows must not be negative, got %d", c.Data.Rows)
	}

	return nil
}

// MapperConfig returns the mapper configuration writing into outputDir.
func (c *Config) MapperConfig(outputDir string) mapper.Config {
	return mapper.Config{
		OutputDir:       outputDir,
		DataSubdir:      c.Data.Subdir,
		DefaultDatatype: c.Mapping.DefaultDatatype,
		DefaultRange:    c.Mapping.DefaultRange,
		PrimaryKey:      c.Mapping.PrimaryKey,
		EnumPrimaryKey:  c.Mapping.EnumPrimaryKey,
		MeaningColumn:   c.Mapping.MeaningColumn,
		MeaningDatatype: c.Mapping.MeaningDatatype,
		EnumDatatypes:   c.Mapping.EnumDatatypes,
		BaselineDir:     c.BaselineDir,
	}
}

// GeneratorConfig returns the data generation configuration.
func (c *Config) GeneratorConfig() datagen.Config {
	return datagen.Config{Rows: c.Data.Rows, Seed: c.Data.Seed}
}
