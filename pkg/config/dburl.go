package config

import (
	"strings"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"

	// DefaultSQLitePath matches the default the settings patcher writes into
	// the legacy site, so both stacks share one database out of the box.
	DefaultSQLitePath = "db.sqlite3"
)

// ResolveDatabaseURL maps a DATABASE_URL to a gorm dialect and DSN.
// postgres:// and postgresql:// URLs are passed through to the pgx driver;
// sqlite:/// URLs yield the file path; an empty URL falls back to the local
// sqlite file.
func ResolveDatabaseURL(raw string) (dialect string, dsn string) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return DialectSQLite, DefaultSQLitePath
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return DialectPostgres, raw
	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			path = DefaultSQLitePath
		}
		return DialectSQLite, path
	default:
		// A bare path is treated as a sqlite file.
		return DialectSQLite, raw
	}
}
