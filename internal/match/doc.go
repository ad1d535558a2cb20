// Package match provides name normalization and Levenshtein similarity
// used to suggest the schema element a misspelled reference probably meant.
//
// Key functions:
//   - NormalizeName: folds snake_case, kebab-case and CamelCase to one form
//   - Levenshtein: computes edit distance between names
//   - Suggest: ranks known names against an unknown one
package match
