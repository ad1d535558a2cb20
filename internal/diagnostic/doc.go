// Package diagnostic provides structured warnings, errors, and
// "why this mapped" notes collected while mapping a schema.
//
// Key capabilities:
//   - Dead slot warnings (slots attached to no class)
//   - Assumption notes (range class without an identifier)
//   - Skipped duplicates (reverse columns, colliding datatypes)
//   - "Did you mean" suggestions for unknown names
package diagnostic
