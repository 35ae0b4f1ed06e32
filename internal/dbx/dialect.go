package dbx

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Driver names accepted by Open.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Dialect captures what differs between the supported databases. Queries are
// written with '?' placeholders and rebound per dialect.
type Dialect struct {
	// Driver is the database/sql driver name.
	Driver string
	// Goose is the goose dialect name.
	Goose string
	// MigrationsDir is the directory inside the embedded migrations FS.
	MigrationsDir string

	bindType   int
	lockClause string
	txOptions  *sql.TxOptions
}

var (
	// Postgres serializes claims with row locks under read committed.
	Postgres = Dialect{
		Driver:        DriverPostgres,
		Goose:         "postgres",
		MigrationsDir: "postgres",
		bindType:      sqlx.DOLLAR,
		lockClause:    " FOR UPDATE",
		txOptions:     &sql.TxOptions{Isolation: sql.LevelReadCommitted},
	}

	// SQLite runs on a single connection, so every transaction is already
	// exclusive and no lock clause is needed.
	SQLite = Dialect{
		Driver:        DriverSQLite,
		Goose:         "sqlite3",
		MigrationsDir: "sqlite",
		bindType:      sqlx.QUESTION,
	}
)

// DialectFor returns the dialect for a driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPostgres, "postgres":
		return Postgres, nil
	case DriverSQLite, "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported driver %q", driver)
	}
}

// Rebind rewrites '?' placeholders into the dialect's bind style.
func (d Dialect) Rebind(query string) string {
	return sqlx.Rebind(d.bindType, query)
}

// ForUpdate appends the row-lock clause (if any) and rebinds the query.
func (d Dialect) ForUpdate(query string) string {
	return d.Rebind(query + d.lockClause)
}

// TxOptions returns the options for read-modify-write transactions.
func (d Dialect) TxOptions() *sql.TxOptions {
	return d.txOptions
}

// IsUniqueViolation reports whether err was caused by a unique or primary key
// constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
