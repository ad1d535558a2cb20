// Package main provides the CLI entrypoint for linkml2valve.
//
// linkml2valve maps a LinkML schema to VALVE table, column and datatype
// relations:
//   - one table per class and per enumeration
//   - one column per single-valued slot, with primary and foreign keys
//   - reverse foreign keys for multivalued slots
//   - datatypes for types and class-specific slot usages
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"linkml2valve/internal/config"
	"linkml2valve/internal/datagen"
	"linkml2valve/internal/logging"
	"linkml2valve/internal/mapper"
	"linkml2valve/internal/store"
	"linkml2valve/internal/valve"
)

// CLI defines the command-line interface.
type CLI struct {
	Schema       string `arg:"" help:"Path to LinkML YAML schema file" type:"existingfile"`
	OutputDir    string `name:"output-dir" short:"o" required:"" help:"Output directory for VALVE tables" type:"path"`
	DataDir      string `name:"data-dir" short:"d" help:"Directory of LinkML YAML data files. These are NOT schemas!" type:"path"`
	GenerateData bool   `name:"generate-data" short:"g" help:"Generate data files from the schema"`
	Verbose      bool   `name:"verbose" short:"v" help:"Log verbosely"`
	Config       string `name:"config" short:"c" help:"YAML configuration file" type:"existingfile"`
	BaselineDir  string `name:"baseline-dir" help:"Directory with table.tsv, column.tsv and datatype.tsv baseline rows" type:"existingdir"`
	Rows         *int   `name:"rows" help:"Synthetic rows per generated data table (default from config)"`
	SQLite       string `name:"sqlite" help:"Also export every table into this SQLite database" type:"path"`
}

func main() {
	var cli CLI

	kctx := kong.Parse(&cli,
		kong.Name("linkml2valve"),
		kong.Description("Map a LinkML schema to VALVE table, column and datatype TSV files."),
		kong.UsageOnError(),
	)

	kctx.FatalIfErrorf(cli.Run())
}

// Run executes the command.
func (c *CLI) Run() (err error) {
	logger, err := logging.New(c.Verbose)
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync() }()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := mapper.Run(ctx, c.Schema, cfg.MapperConfig(c.OutputDir), logger)
	if err != nil {
		return err
	}

	logger.Info("Mapped schema",
		zap.String("schema", c.Schema),
		zap.String("output_dir", c.OutputDir),
		zap.Int("tables", len(res.Relations.Tables)),
		zap.Int("columns", len(res.Relations.Columns)),
		zap.Int("datatypes", len(res.Relations.Datatypes)),
		zap.Int("warnings", len(res.Diagnostics.Warnings)))

	exported := res.EnumTables

	if c.GenerateData {
		tables, err := generateData(res, cfg.GeneratorConfig(), logger)
		if err != nil {
			return err
		}

		exported = append(exported, tables...)
	}

	if cfg.SQLitePath != "" {
		if err := store.Export(ctx, cfg.SQLitePath, res.Relations, exported, logger); err != nil {
			return fmt.Errorf("exporting to SQLite: %w", err)
		}

		logger.Info("Exported tables to SQLite", zap.String("path", cfg.SQLitePath), zap.Int("data_tables", len(exported)))
	}

	if c.DataDir != "" {
		return mapper.MapData(c.Schema, c.DataDir)
	}

	return nil
}

// loadConfig reads the configuration file and applies command-line overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if c.BaselineDir != "" {
		cfg.BaselineDir = c.BaselineDir
	}

	if c.SQLite != "" {
		cfg.SQLitePath = c.SQLite
	}

	if c.Rows != nil {
		if *c.Rows < 0 {
			return nil, fmt.Errorf("--rows must not be negative, got %d", *c.Rows)
		}

		cfg.Data.Rows = *c.Rows
	}

	return cfg, nil
}

func generateData(res *mapper.Result, cfg datagen.Config, logger *zap.Logger) ([]valve.DataTable, error) {
	g := datagen.New(cfg, logger)

	tables, err := g.Generate(res.Relations, res.ClassTables, res.EnumTables)
	if err != nil {
		return nil, fmt.Errorf("generating data: %w", err)
	}

	paths, err := g.Write(tables)
	if err != nil {
		return nil, err
	}

	logger.Info("Generated data tables", zap.Int("tables", len(paths)), zap.Int("rows_per_table", cfg.Rows))

	return tables, nil
}
