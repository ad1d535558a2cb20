package valve

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed baseline/*.tsv
var embeddedBaseline embed.FS

// metaRelations are the tables whose rows are kept from baseline table and column files.
var metaRelations = map[string]bool{
	TableRelation:    true,
	ColumnRelation:   true,
	DatatypeRelation: true,
}

// LoadBaseline reads the baseline metadata rows from dir, or from the
// embedded defaults when dir is empty. Only rows describing the table,
// column and datatype relations are kept from table.tsv and column.tsv, and
// baseline table paths are rewritten into outputDir.
func LoadBaseline(dir, outputDir string) (Relations, error) {
	var fsys fs.FS

	if dir == "" {
		sub, err := fs.Sub(embeddedBaseline, "baseline")
		if err != nil {
			return Relations{}, fmt.Errorf("opening embedded baseline: %w", err)
		}

		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	return readBaseline(fsys, outputDir)
}

func readBaseline(fsys fs.FS, outputDir string) (Relations, error) {
	var rel Relations

	tables, err := readRelation(fsys, TableRelation)
	if err != nil {
		return rel, err
	}

	for _, m := range tables {
		row := tableRowFromMap(m)
		if !metaRelations[row.Table] {
			continue
		}

		row.Path = filepath.Join(outputDir, row.Table+".tsv")
		rel.Tables = append(rel.Tables, row)
	}

	columns, err := readRelation(fsys, ColumnRelation)
	if err != nil {
		return rel, err
	}

	for _, m := range columns {
		row := columnRowFromMap(m)
		if metaRelations[row.Table] {
			rel.Columns = append(rel.Columns, row)
		}
	}

	datatypes, err := readRelation(fsys, DatatypeRelation)
	if err != nil {
		return rel, err
	}

	for _, m := range datatypes {
		rel.Datatypes = append(rel.Datatypes, datatypeRowFromMap(m))
	}

	return rel, nil
}

func readRelation(fsys fs.FS, name string) ([]map[string]string, error) {
	f, err := fsys.Open(name + ".tsv")
	if err != nil {
		return nil, fmt.Errorf("opening baseline %s.tsv: %w", name, err)
	}
	defer f.Close()

	rows, err := ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("baseline %s.tsv: %w", name, err)
	}

	return rows, nil
}
