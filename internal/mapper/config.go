package mapper

import "path/filepath"

// Config holds the names and defaults used while mapping.
type Config struct {
	// OutputDir is where the metadata relations and enum tables are written.
	OutputDir string
	// DataSubdir is the directory, relative to OutputDir, holding class data tables.
	DataSubdir string
	// DefaultDatatype is used for keys, enum references and slots without a range.
	DefaultDatatype string
	// DefaultRange is the datatype of synthesized primary keys and of foreign
	// keys whose target identifier has no range. Empty means the schema's
	// default_range, or DefaultDatatype if the schema declares none.
	DefaultRange string
	// PrimaryKey names synthesized primary-key columns.
	PrimaryKey string
	// EnumPrimaryKey names the permissible-value column of enum tables.
	EnumPrimaryKey string
	// MeaningColumn names the meaning column of enum tables.
	MeaningColumn string
	// MeaningDatatype is the datatype of the meaning column.
	MeaningDatatype string
	// EnumDatatypes emits an in(...) datatype per enumeration and uses it for
	// the permissible-value column and for columns referencing the enum.
	EnumDatatypes bool
	// BaselineDir overrides the embedded baseline metadata rows.
	BaselineDir string
}

// DefaultConfig returns the default mapping configuration.
func DefaultConfig() Config {
	return Config{
		DataSubdir:      "data",
		DefaultDatatype: "text",
		PrimaryKey:      "id",
		EnumPrimaryKey:  "permissible_value",
		MeaningColumn:   "meaning",
		MeaningDatatype: "CURIE",
	}
}

// DataDir returns the directory holding class data tables.
func (c Config) DataDir() string {
	return filepath.Join(c.OutputDir, c.DataSubdir)
}
