package linkml

//go:generate go tool stringer -type=RangeKind -output=rangekind_string.go

// RangeKind classifies what a slot range name refers to.
type RangeKind int

const (
	_ RangeKind = iota // zero value is reserved for "not classified"

	RangeType       // a scalar type
	RangeClass      // another class
	RangeEnum       // an enumeration
	RangeUnresolved // a name the schema does not define
)
