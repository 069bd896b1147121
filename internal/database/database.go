package database

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mauv0809/swiss-tribble/internal/config"
	"github.com/mauv0809/swiss-tribble/migrations"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Dialect is the SQL flavour spoken by the underlying driver.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// DB wraps a *sql.DB together with the dialect it speaks so that stores can
// write their queries once with '?' placeholders.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Rebind rewrites '?' placeholders into the form the dialect expects.
func (db *DB) Rebind(query string) string {
	if db.Dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// InitDB opens the configured database and runs all pending migrations.
// The returned teardown closes the connection pool.
func InitDB(cfg config.DatabaseConfig) (*DB, func(), error) {
	db, dialect, err := open(cfg)
	if err != nil {
		return nil, nil, err
	}
	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}

	if err := migrate(db, dialect, cfg.MigrationsDir); err != nil {
		teardown()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Database initialized successfully", "driver", cfg.Driver)
	return &DB{DB: db, Dialect: dialect}, teardown, nil
}

func open(cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	switch cfg.Driver {
	case "", "sqlite3":
		log.Info("Initializing local SQLite database", "path", cfg.Name)
		db, err := sql.Open("sqlite3", cfg.Name+"?_foreign_keys=on")
		if err != nil {
			return nil, "", fmt.Errorf("failed to open local database: %w", err)
		}
		if cfg.Name == ":memory:" {
			// Every connection to :memory: is a separate database.
			db.SetMaxOpenConns(1)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, "", fmt.Errorf("failed to connect to local database: %w", err)
		}
		return db, DialectSQLite, nil
	case "libsql":
		if cfg.Turso.PrimaryURL == "" {
			return nil, "", fmt.Errorf("libsql driver requires TURSO_PRIMARY_URL")
		}
		log.Info("Initializing Turso database", "url", cfg.Turso.PrimaryURL)
		db, err := sql.Open("libsql", cfg.Turso.PrimaryURL+"?authToken="+cfg.Turso.AuthToken)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open db %s: %w", cfg.Turso.PrimaryURL, err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			db.Close()
			return nil, "", fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		return db, DialectSQLite, nil
	case "postgres":
		log.Info("Initializing PostgreSQL database")
		db, err := sql.Open("postgres", cfg.URL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open postgres database: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, "", fmt.Errorf("failed to connect to postgres database: %w", err)
		}
		return db, DialectPostgres, nil
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// migrate applies goose migrations from dir, or from the embedded set when dir is empty.
func migrate(db *sql.DB, dialect Dialect, dir string) error {
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(migrations.FS, dialectDir(dialect))
		if err != nil {
			return err
		}
		fsys = sub
	}

	goose.SetBaseFS(fsys)
	goose.SetLogger(log.Default())
	if err := goose.SetDialect(string(dialect)); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

func dialectDir(dialect Dialect) string {
	if dialect == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}
