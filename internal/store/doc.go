// Package store exports VALVE relations and data tables into a SQLite
// database using the pure Go modernc.org/sqlite driver.
package store
