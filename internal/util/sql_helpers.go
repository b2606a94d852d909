package util

import "database/sql"

// NullIfEmpty writes "" as NULL. Oracle already stores an empty VARCHAR2 as
// NULL, so doing it on every driver keeps reads identical across both.
func NullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// OrEmpty unwraps a nullable column, NULL reads back as "".
func OrEmpty(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
