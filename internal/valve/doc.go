// Package valve models the VALVE metadata relations (table, column, datatype)
// and their encoded constraint markers.
//
// It provides the row builders used by the mapper, the structure and
// condition codec (primary, from(T.C), match(/re/), in('a','b')), the
// embedded baseline rows that describe the metadata relations themselves,
// and TSV reading and writing.
package valve
