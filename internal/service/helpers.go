package service

import "database/sql"

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
