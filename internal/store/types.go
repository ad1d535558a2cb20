package store

import "linkml2valve/internal/valve"

const (
	defaultSQLiteType = "TEXT"
	maxParentDepth    = 16
)

// sqliteTypes resolves the SQLite type of a datatype from the "SQLite type"
// column of the datatype relation, inherited through parents.
type sqliteTypes struct {
	rows map[string]valve.DatatypeRow
}

func newSQLiteTypes(datatypes []valve.DatatypeRow) sqliteTypes {
	rows := make(map[string]valve.DatatypeRow, len(datatypes))
	for _, d := range datatypes {
		if _, ok := rows[d.Datatype]; !ok {
			rows[d.Datatype] = d
		}
	}

	return sqliteTypes{rows: rows}
}

func (t sqliteTypes) of(datatype string) string {
	for range maxParentDepth {
		row, ok := t.rows[datatype]
		if !ok {
			return defaultSQLiteType
		}

		if row.SQLiteType != "" {
			return row.SQLiteType
		}

		if row.Parent == "" || row.Parent == datatype {
			return defaultSQLiteType
		}

		datatype = row.Parent
	}

	return defaultSQLiteType
}
