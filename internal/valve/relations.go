package valve

import (
	"fmt"
	"path/filepath"

	"linkml2valve/internal/common"
)

// Relations holds the rows of the three metadata relations.
type Relations struct {
	Tables    []TableRow
	Columns   []ColumnRow
	Datatypes []DatatypeRow
}

// DataTable is the content of one data file: a table's headers and rows.
type DataTable struct {
	Table   string
	Path    string
	Headers []string
	Rows    []map[string]string
}

// Records returns the rows as cells in Headers order.
func (d DataTable) Records() [][]string {
	out := make([][]string, len(d.Rows))

	for i, row := range d.Rows {
		record := make([]string, len(d.Headers))
		for j, h := range d.Headers {
			record[j] = row[h]
		}

		out[i] = record
	}

	return out
}

// ColumnsOf returns the columns of table in relation order.
func (r Relations) ColumnsOf(table string) []ColumnRow {
	var out []ColumnRow

	for _, c := range r.Columns {
		if c.Table == table {
			out = append(out, c)
		}
	}

	return out
}

// PrimaryKey returns the first column of table carrying the primary marker.
func (r Relations) PrimaryKey(table string) (ColumnRow, bool) {
	return common.FirstMatch(r.Columns, func(c ColumnRow) bool {
		return c.Table == table && c.Structure.IsPrimary()
	})
}

// MergeBaseline returns the baseline rows followed by the mapped rows.
// A datatype whose name is already present (in the baseline or earlier in
// mapped) is dropped; the dropped names are returned in order.
func MergeBaseline(baseline, mapped Relations) (Relations, []string) {
	out := Relations{
		Tables:    append(append([]TableRow{}, baseline.Tables...), mapped.Tables...),
		Columns:   append(append([]ColumnRow{}, baseline.Columns...), mapped.Columns...),
		Datatypes: append([]DatatypeRow{}, baseline.Datatypes...),
	}

	present := make(map[string]bool, len(out.Datatypes))
	for _, d := range out.Datatypes {
		present[d.Datatype] = true
	}

	var dropped []string

	for _, d := range mapped.Datatypes {
		if present[d.Datatype] {
			dropped = append(dropped, d.Datatype)
			continue
		}

		present[d.Datatype] = true
		out.Datatypes = append(out.Datatypes, d)
	}

	return out, dropped
}

// ReferenceProblem describes a column whose structure breaks referential integrity.
type ReferenceProblem struct {
	Table     string
	Column    string
	Structure Structure
	Reason    string
}

func (p ReferenceProblem) String() string {
	return fmt.Sprintf("%s.%s %s: %s", p.Table, p.Column, p.Structure, p.Reason)
}

// CheckReferences verifies that every from(T.C) structure points at exactly
// one column T.C and that this column is T's primary key.
func CheckReferences(r Relations) []ReferenceProblem {
	type key struct{ table, column string }

	byKey := make(map[key][]ColumnRow, len(r.Columns))
	for _, c := range r.Columns {
		k := key{c.Table, c.Column}
		byKey[k] = append(byKey[k], c)
	}

	var problems []ReferenceProblem

	for _, c := range r.Columns {
		if !c.Structure.IsFrom() {
			continue
		}

		problem := ReferenceProblem{Table: c.Table, Column: c.Column, Structure: c.Structure}

		table, column, err := c.Structure.Target()
		if err != nil {
			problem.Reason = err.Error()
			problems = append(problems, problem)

			continue
		}

		targets := byKey[key{table, column}]

		switch {
		case len(targets) == 0:
			problem.Reason = "target column does not exist"
		case len(targets) > 1:
			problem.Reason = fmt.Sprintf("target column is defined %d times", len(targets))
		case !targets[0].Structure.IsPrimary():
			problem.Reason = "target column is not a primary key"
		default:
			continue
		}

		problems = append(problems, problem)
	}

	return problems
}

// RelationPaths returns the file paths of the three relations under outputDir.
func RelationPaths(outputDir string) (table, column, datatype string) {
	return filepath.Join(outputDir, TableRelation+".tsv"),
		filepath.Join(outputDir, ColumnRelation+".tsv"),
		filepath.Join(outputDir, DatatypeRelation+".tsv")
}
