package valve

import (
	"path/filepath"
	"strings"
)

// Names of the metadata relations.
const (
	TableRelation    = "table"
	ColumnRelation   = "column"
	DatatypeRelation = "datatype"
)

// Relation headers, in file order.
var (
	TableHeaders    = []string{"table", "path", "description", "type"}
	ColumnHeaders   = []string{"table", "column", "nulltype", "datatype", "structure", "description"}
	DatatypeHeaders = []string{
		"datatype", "parent", "transform", "condition", "structure", "description",
		"SQLite type", "PostgreSQL type", "RDF type", "HTML type",
	}
)

// NulltypeEmpty marks a column whose empty cells are accepted as null.
const NulltypeEmpty = "empty"

// TableRow is one row of the table relation.
// Empty strings stand for absent values.
type TableRow struct {
	Table       string
	Path        string
	Description string
	Type        string
}

// ColumnRow is one row of the column relation.
type ColumnRow struct {
	Table       string
	Column      string
	Nulltype    string
	Datatype    string
	Structure   Structure
	Description string
}

// DatatypeRow is one row of the datatype relation.
type DatatypeRow struct {
	Datatype       string
	Parent         string
	Transform      string
	Condition      Condition
	Structure      string
	Description    string
	SQLiteType     string
	PostgreSQLType string
	RDFType        string
	HTMLType       string
}

// NewTableRow builds the row for a table whose data file lives in dir.
func NewTableRow(name, description, dir string) TableRow {
	return TableRow{
		Table:       name,
		Path:        filepath.Join(dir, name+".tsv"),
		Description: strings.TrimSpace(description),
	}
}

// NewColumnRow builds a column row. Columns that are not required are
// nullable through the empty nulltype.
func NewColumnRow(table, column, description, datatype string, structure Structure, required bool) ColumnRow {
	row := ColumnRow{
		Table:       table,
		Column:      column,
		Datatype:    datatype,
		Structure:   structure,
		Description: description,
	}

	if !required {
		row.Nulltype = NulltypeEmpty
	}

	return row
}

// IsRequired reports whether the column has no nulltype.
func (c ColumnRow) IsRequired() bool {
	return c.Nulltype == ""
}

// NewDatatypeRow builds a datatype row. An empty description defaults to "a <name>".
func NewDatatypeRow(name, parent, description string, condition Condition) DatatypeRow {
	if description == "" {
		description = "a " + name
	}

	return DatatypeRow{
		Datatype:    name,
		Parent:      parent,
		Condition:   condition,
		Description: description,
	}
}

// Record returns the row's cells in TableHeaders order.
func (r TableRow) Record() []string {
	return []string{r.Table, r.Path, r.Description, r.Type}
}

// Record returns the row's cells in ColumnHeaders order.
func (r ColumnRow) Record() []string {
	return []string{r.Table, r.Column, r.Nulltype, r.Datatype, string(r.Structure), r.Description}
}

// Record returns the row's cells in DatatypeHeaders order.
func (r DatatypeRow) Record() []string {
	return []string{
		r.Datatype, r.Parent, r.Transform, string(r.Condition), r.Structure, r.Description,
		r.SQLiteType, r.PostgreSQLType, r.RDFType, r.HTMLType,
	}
}

func tableRowFromMap(m map[string]string) TableRow {
	return TableRow{Table: m["table"], Path: m["path"], Description: m["description"], Type: m["type"]}
}

func columnRowFromMap(m map[string]string) ColumnRow {
	return ColumnRow{
		Table:       m["table"],
		Column:      m["column"],
		Nulltype:    m["nulltype"],
		Datatype:    m["datatype"],
		Structure:   Structure(m["structure"]),
		Description: m["description"],
	}
}

func datatypeRowFromMap(m map[string]string) DatatypeRow {
	return DatatypeRow{
		Datatype:       m["datatype"],
		Parent:         m["parent"],
		Transform:      m["transform"],
		Condition:      Condition(m["condition"]),
		Structure:      m["structure"],
		Description:    m["description"],
		SQLiteType:     m["SQLite type"],
		PostgreSQLType: m["PostgreSQL type"],
		RDFType:        m["RDF type"],
		HTMLType:       m["HTML type"],
	}
}
