package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DB struct {
	Pool   *sql.DB
	Driver string
}

// Open connects to Postgres when databaseURL is set, otherwise falls back to
// a local sqlite file under dataDir (handy for dev and desktop runs).
func Open(databaseURL, dataDir string) (*DB, error) {
	driver := DriverSQLite
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)",
		filepath.Join(dataDir, "oppintel.db"))

	if databaseURL != "" {
		driver = DriverPostgres
		dsn = RewriteScheme(databaseURL)
	}

	pool, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		pool.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	} else {
		pool.SetMaxOpenConns(5)
	}
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	return &DB{Pool: pool, Driver: driver}, nil
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}

// RewriteScheme maps the legacy postgresql:// scheme some hosts hand out to
// the postgres:// scheme lib/pq expects.
func RewriteScheme(u string) string {
	if strings.HasPrefix(u, "postgresql://") {
		return "postgres://" + strings.TrimPrefix(u, "postgresql://")
	}
	return u
}

// rebind translates ? placeholders to $1..$n for Postgres. Queries in this
// package are written once in sqlite style.
func (d *DB) rebind(query string) string {
	if d.Driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
