package mapper

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"linkml2valve/internal/linkml"
	"linkml2valve/internal/valve"
)

// Run loads the schema at schemaPath, maps it and writes the metadata
// relations and enum tables into cfg.OutputDir.
func Run(ctx context.Context, schemaPath string, cfg Config, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	schema, err := linkml.LoadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	for _, imp := range schema.UnresolvedImports {
		logger.Warn("Import could not be resolved, skipping", zap.String("import", imp))
	}

	res, err := New(linkml.NewSchemaView(schema), cfg, logger).Map(ctx)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", schemaPath, err)
	}

	if _, err := Write(res, cfg.OutputDir, logger); err != nil {
		return res, err
	}

	return res, nil
}

// Write writes table.tsv, column.tsv and datatype.tsv and one file per enum
// table, and returns the written paths.
func Write(res *Result, outputDir string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	written, err := valve.WriteRelations(res.Relations, outputDir)
	if err != nil {
		return written, fmt.Errorf("writing relations: %w", err)
	}

	logger.Debug("Wrote relations",
		zap.Int("tables", len(res.Relations.Tables)),
		zap.Int("columns", len(res.Relations.Columns)),
		zap.Int("datatypes", len(res.Relations.Datatypes)),
		zap.String("output_dir", outputDir))

	for _, d := range res.EnumTables {
		if err := valve.WriteDataTable(d); err != nil {
			return written, fmt.Errorf("writing enum table %s: %w", d.Table, err)
		}

		logger.Debug("Wrote enum table", zap.String("path", d.Path), zap.Int("rows", len(d.Rows)))

		written = append(written, d.Path)
	}

	return written, nil
}

// MapData would map schema-conformant data files into table rows. It is not
// supported and always fails.
func MapData(schemaPath, dataDir string) error {
	return fmt.Errorf("mapping data in %s for %s: %w", dataDir, schemaPath, ErrDataMappingNotImplemented)
}
