package sqlite

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

type Config struct {
	Path string `yaml:"path" envconfig:"SQLITE_PATH" default:"loans.db"`
}

// Open opens a sqlite database, sets pragmas and applies the migrations found at the root of migrations.
func Open(ctx context.Context, cfg Config, migrations fs.FS) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// every connection to :memory: is a separate database
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if migrations != nil {
		provider, err := goose.NewProvider(goose.DialectSQLite3, db.DB, migrations)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("goose.NewProvider: %w", err)
		}
		if _, err := provider.Up(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate up: %w", err)
		}
	}
	return db, nil
}

// dsn applies the pragmas on every pooled connection and stores times in a
// layout the sqlite date functions understand.
func dsn(path string) string {
	v := url.Values{}
	for _, p := range []string{
		"journal_mode(WAL)",
		"busy_timeout(5000)",
		"foreign_keys(ON)",
		"synchronous(NORMAL)",
	} {
		v.Add("_pragma", p)
	}
	v.Set("_time_format", "sqlite")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + v.Encode()
}

// NewTestDB creates a fresh in-memory database with the migrations applied.
func NewTestDB(t testing.TB, migrations fs.FS) *sqlx.DB {
	t.Helper()

	db, err := Open(context.Background(), Config{Path: ":memory:"}, migrations)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
