package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"linkml2valve/internal/valve"
)

const driverName = "sqlite"

// Store is a SQLite database receiving exported tables.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (creating if needed) the SQLite database at path.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to %s: %w", path, err)
	}

	return &Store{db: db, log: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB { return s.db }

// Export writes the three metadata relations followed by data, inserted so
// that referenced tables are filled before the tables referencing them.
// Existing tables of the same names are replaced.
func (s *Store) Export(ctx context.Context, rel valve.Relations, data []valve.DataTable) error {
	tables := metaTables(rel)

	names := make([]string, len(data))
	byName := make(map[string]valve.DataTable, len(data))

	for i, d := range data {
		names[i] = d.Table
		byName[d.Table] = d
	}

	order, err := rel.DependencyOrder(names)
	if err != nil {
		if !errors.Is(err, valve.ErrCycle) {
			return err
		}

		s.log.Warn("Tables reference each other in a cycle, exporting in given order", zap.Error(err))

		order = names
	}

	types := newSQLiteTypes(rel.Datatypes)

	for _, name := range order {
		tables = append(tables, dataTable(byName[name], rel.ColumnsOf(name), types))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning export: %w", err)
	}

	for _, t := range tables {
		if err := t.write(ctx, tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exporting table %s: %w", t.name, err)
		}

		s.log.Debug("Exported table", zap.String("table", t.name), zap.Int("rows", len(t.rows)))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}

	return nil
}

// Export opens the database at path, exports rel and data into it and closes it.
func Export(ctx context.Context, path string, rel valve.Relations, data []valve.DataTable, logger *zap.Logger) (err error) {
	s, err := Open(ctx, path, logger)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return s.Export(ctx, rel, data)
}

// sqlTable is a table ready to be created and filled.
type sqlTable struct {
	name    string
	columns []sqlColumn
	rows    [][]string
}

type sqlColumn struct {
	name    string
	typ     string
	primary bool
	// notNull columns keep empty cells as empty strings; others store NULL.
	notNull bool
	ref     valve.Structure
}

func (t sqlTable) write(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(t.name)); err != nil {
		return fmt.Errorf("dropping: %w", err)
	}

	if _, err := tx.ExecContext(ctx, t.createSQL()); err != nil {
		return fmt.Errorf("creating: %w", err)
	}

	if len(t.rows) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, t.insertSQL())
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(t.columns))

	for _, row := range t.rows {
		for i, c := range t.columns {
			if !c.notNull && row[i] == "" {
				args[i] = nil
			} else {
				args[i] = row[i]
			}
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting: %w", err)
		}
	}

	return nil
}

func (t sqlTable) createSQL() string {
	defs := make([]string, 0, len(t.columns))

	for _, c := range t.columns {
		def := quote(c.name) + " " + c.typ

		if c.primary {
			def += " PRIMARY KEY"
		} else if c.notNull {
			def += " NOT NULL"
		}

		if table, column, err := c.ref.Target(); err == nil {
			def += " REFERENCES " + quote(table) + "(" + quote(column) + ")"
		}

		defs = append(defs, def)
	}

	return "CREATE TABLE " + quote(t.name) + " (" + strings.Join(defs, ", ") + ")"
}

func (t sqlTable) insertSQL() string {
	names := make([]string, len(t.columns))
	marks := make([]string, len(t.columns))

	for i, c := range t.columns {
		names[i] = quote(c.name)
		marks[i] = "?"
	}

	return "INSERT INTO " + quote(t.name) + " (" + strings.Join(names, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
}

// metaTables converts the three relations into untyped tables.
func metaTables(rel valve.Relations) []sqlTable {
	tables := make([][]string, len(rel.Tables))
	for i, r := range rel.Tables {
		tables[i] = r.Record()
	}

	columns := make([][]string, len(rel.Columns))
	for i, r := range rel.Columns {
		columns[i] = r.Record()
	}

	datatypes := make([][]string, len(rel.Datatypes))
	for i, r := range rel.Datatypes {
		datatypes[i] = r.Record()
	}

	return []sqlTable{
		metaTable(valve.TableRelation, valve.TableHeaders, tables),
		metaTable(valve.ColumnRelation, valve.ColumnHeaders, columns),
		metaTable(valve.DatatypeRelation, valve.DatatypeHeaders, datatypes),
	}
}

func metaTable(name string, headers []string, rows [][]string) sqlTable {
	t := sqlTable{name: name, rows: rows, columns: make([]sqlColumn, len(headers))}
	for i, h := range headers {
		t.columns[i] = sqlColumn{name: h, typ: defaultSQLiteType}
	}

	return t
}

// dataTable converts a data table, typing its columns through the column relation.
func dataTable(d valve.DataTable, columns []valve.ColumnRow, types sqliteTypes) sqlTable {
	byName := make(map[string]valve.ColumnRow, len(columns))
	for _, c := range columns {
		byName[c.Column] = c
	}

	t := sqlTable{name: d.Table, rows: d.Records(), columns: make([]sqlColumn, len(d.Headers))}

	for i, h := range d.Headers {
		c, ok := byName[h]
		t.columns[i] = sqlColumn{
			name:    h,
			typ:     types.of(c.Datatype),
			primary: c.Structure.IsPrimary(),
			notNull: ok && c.IsRequired(),
			ref:     c.Structure,
		}
	}

	return t
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
