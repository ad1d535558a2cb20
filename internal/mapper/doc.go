// Package mapper translates a LinkML schema into VALVE metadata rows.
//
// Mapping runs as an explicit pipeline of phases, each consuming the typed
// result of the previous one:
//
//  1. validate:     unknown slot references (fatal), dead slots and
//     unresolved ranges (warnings)
//  2. classPhase:   one table per class; columns for every induced,
//     single-valued slot; slot-usage datatypes; synthesized primary keys
//  3. multivaluedPhase: reverse foreign-key columns on the range table of
//     every multivalued slot whose range is a class
//  4. enumPhase:    one table per enumeration with its permissible-value
//     and meaning columns and the enumeration's data rows
//
// Map then checks the row-count invariants, merges the baseline metadata
// rows ahead of the mapped rows and verifies referential integrity.
// Recoverable findings are logged and recorded as diagnostics on the Result.
package mapper
