package db

import (
	"database/sql"
	"fmt"
)

type schema struct {
	tables  []string
	indexes []string
	// optional statements may fail without failing the migration (missing
	// extensions, insufficient privileges).
	optional []string
	drops    []string
}

var postgresSchema = schema{
	tables: []string{`
CREATE TABLE IF NOT EXISTS users (
    id          TEXT PRIMARY KEY,
    email       TEXT NOT NULL UNIQUE,
    nickname    TEXT NOT NULL,
    address     TEXT NOT NULL DEFAULT '',
    profile_url TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`, `
CREATE TABLE IF NOT EXISTS products (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users(id),
    title      TEXT NOT NULL,
    category   TEXT NOT NULL DEFAULT '',
    price      BIGINT NOT NULL DEFAULT 0 CHECK (price >= 0),
    contents   TEXT NOT NULL DEFAULT '',
    address    TEXT NOT NULL DEFAULT '',
    latitude   DOUBLE PRECISION NOT NULL DEFAULT 0,
    longitude  DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	indexes: []string{
		// keyset order of the around listing
		`CREATE INDEX IF NOT EXISTS idx_products_created_at_id ON products(created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_products_user_id ON products(user_id)`,
	},
	optional: []string{
		`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
		`CREATE INDEX IF NOT EXISTS idx_products_title_gin ON products USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_products_address_gin ON products USING gin(address gin_trgm_ops)`,
	},
	drops: []string{
		`DROP TABLE IF EXISTS products CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	},
}

var sqliteSchema = schema{
	tables: []string{`
CREATE TABLE IF NOT EXISTS users (
    id          TEXT PRIMARY KEY,
    email       TEXT NOT NULL UNIQUE,
    nickname    TEXT NOT NULL,
    address     TEXT NOT NULL DEFAULT '',
    profile_url TEXT NOT NULL DEFAULT ''
)`, `
CREATE TABLE IF NOT EXISTS products (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users(id),
    title      TEXT NOT NULL,
    category   TEXT NOT NULL DEFAULT '',
    price      INTEGER NOT NULL DEFAULT 0 CHECK (price >= 0),
    contents   TEXT NOT NULL DEFAULT '',
    address    TEXT NOT NULL DEFAULT '',
    latitude   REAL NOT NULL DEFAULT 0,
    longitude  REAL NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
)`},
	indexes: []string{
		`CREATE INDEX IF NOT EXISTS idx_products_created_at_id ON products(created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_products_user_id ON products(user_id)`,
	},
	drops: []string{
		`DROP TABLE IF EXISTS products`,
		`DROP TABLE IF EXISTS users`,
	},
}

func schemaFor(dialect Dialect) (schema, error) {
	switch dialect {
	case DialectPostgres:
		return postgresSchema, nil
	case DialectSQLite:
		return sqliteSchema, nil
	default:
		return schema{}, fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// MigrateUp creates the users and products tables and their indexes. It is
// idempotent.
func MigrateUp(db *sql.DB, dialect Dialect) error {
	s, err := schemaFor(dialect)
	if err != nil {
		return err
	}
	for _, stmt := range s.tables {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	for _, idx := range s.indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}
	for _, stmt := range s.optional {
		_, _ = db.Exec(stmt)
	}
	return nil
}

// MigrateDown drops the catalogue tables. All listings and users are lost.
func MigrateDown(db *sql.DB, dialect Dialect) error {
	s, err := schemaFor(dialect)
	if err != nil {
		return err
	}
	for _, stmt := range s.drops {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
