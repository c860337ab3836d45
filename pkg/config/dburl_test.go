package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDatabaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		dialect string
		dsn     string
	}{
		{"empty falls back to local sqlite", "", DialectSQLite, "db.sqlite3"},
		{"postgres passthrough", "postgres://crm:crm@db:5432/crm", DialectPostgres, "postgres://crm:crm@db:5432/crm"},
		{"postgresql scheme", "postgresql://crm@localhost/crm", DialectPostgres, "postgresql://crm@localhost/crm"},
		{"sqlite url", "sqlite:///data/crm.db", DialectSQLite, "data/crm.db"},
		{"sqlite url without path", "sqlite://", DialectSQLite, "db.sqlite3"},
		{"bare path", "./crm.db", DialectSQLite, "./crm.db"},
		{"surrounding whitespace", "  postgres://x  ", DialectPostgres, "postgres://x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialect, dsn := ResolveDatabaseURL(tt.raw)
			assert.Equal(t, tt.dialect, dialect)
			assert.Equal(t, tt.dsn, dsn)
		})
	}
}
