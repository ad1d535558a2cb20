// Package datagen creates the data tables of the mapped classes.
//
// Every class table gets a TSV file whose header row lists its columns in
// mapping order. When Config.Rows is positive, synthetic rows are added:
// primary keys are deterministic (UUIDs derived from table name and row
// number, or row numbers for integer keys), foreign keys take values from
// the generated keys of the referenced table or from the permissible values
// of the referenced enumeration, and other cells follow the column's datatype.
// Tables are generated in reference order so that targets exist before the
// tables pointing at them.
package datagen
