package valve

// WriteRelations writes table.tsv, column.tsv and datatype.tsv into outputDir
// and returns the written paths.
func WriteRelations(r Relations, outputDir string) ([]string, error) {
	tablePath, columnPath, datatypePath := RelationPaths(outputDir)

	tables := make([][]string, len(r.Tables))
	for i, row := range r.Tables {
		tables[i] = row.Record()
	}

	columns := make([][]string, len(r.Columns))
	for i, row := range r.Columns {
		columns[i] = row.Record()
	}

	datatypes := make([][]string, len(r.Datatypes))
	for i, row := range r.Datatypes {
		datatypes[i] = row.Record()
	}

	files := []struct {
		path    string
		headers []string
		records [][]string
	}{
		{tablePath, TableHeaders, tables},
		{columnPath, ColumnHeaders, columns},
		{datatypePath, DatatypeHeaders, datatypes},
	}

	written := make([]string, 0, len(files))

	for _, f := range files {
		if err := WriteTSVFile(f.path, f.headers, f.records); err != nil {
			return written, err
		}

		written = append(written, f.path)
	}

	return written, nil
}

// WriteDataTable writes a data table to its path.
func WriteDataTable(d DataTable) error {
	return WriteTSVFile(d.Path, d.Headers, d.Records())
}
