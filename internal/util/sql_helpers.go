package util

import "database/sql"

// StringToNullString converts a string to sql.NullString.
// An empty string is treated as NULL.
func StringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NullStringToString returns "" for NULL.
func NullStringToString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}
