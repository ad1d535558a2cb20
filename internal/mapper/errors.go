package mapper

import (
	"errors"

	"linkml2valve/internal/linkml"
)

var (
	// ErrUnknownSlot is returned when a class references a slot the schema does not define.
	ErrUnknownSlot = linkml.ErrUnknownSlot
	// ErrMissingPrimaryKey is returned when a multivalued slot's declaring class has no primary key.
	ErrMissingPrimaryKey = errors.New("missing primary key")
	// ErrPrimaryKeyConflict is returned when a class without an identifier
	// already has a foreign-key column named like the generated primary key.
	ErrPrimaryKeyConflict = errors.New("column cannot become the primary key")
	// ErrInvariant is returned when the mapped row counts are inconsistent with the schema.
	ErrInvariant = errors.New("mapping invariant violated")
	// ErrDataMappingNotImplemented is returned by MapData.
	ErrDataMappingNotImplemented = errors.New("LinkML data mapping not implemented")
)
