// Package services implements the vault engine: sessions scoped to one
// community, the vault and card stores, and the claim engine that hands out
// vault lines to members.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/linevault/internal/common"
	"github.com/dmitrijs2005/linevault/internal/cryptox"
	"github.com/dmitrijs2005/linevault/internal/dbx"
	"github.com/dmitrijs2005/linevault/internal/logging"
	"github.com/dmitrijs2005/linevault/internal/repositories/repomanager"
	"github.com/google/uuid"
)

// Gateway owns the database handle and opens community-scoped sessions.
// It is safe for concurrent use; sessions are not.
type Gateway struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	log   logging.Logger

	now   func() time.Time
	newID func() string
}

// NewGateway constructs a Gateway on an already migrated database. The
// gateway takes ownership of db and closes it in Close.
func NewGateway(db *sql.DB, repos repomanager.RepositoryManager, log logging.Logger) *Gateway {
	return &Gateway{
		db:    db,
		repos: repos,
		log:   log,
		now:   utcNow,
		newID: uuid.NewString,
	}
}

// Connect opens the database, applies the schema migrations and returns a
// ready Gateway.
func Connect(ctx context.Context, driver, dsn string, log logging.Logger) (*Gateway, error) {
	db, dialect, err := dbx.Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}

	repos := repomanager.NewRepositoryManager(dialect)
	if err := repos.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	log.Debug(ctx, "database ready", "driver", dialect.Driver)
	return NewGateway(db, repos, log), nil
}

// Close closes the underlying database.
func (g *Gateway) Close() error {
	return g.db.Close()
}

// Open starts a session for one community. The session holds a dedicated
// connection until Close; the community row is created if it is missing.
//
// ownerID keys the inner storage layer, secretKey the outer one.
func (g *Gateway) Open(ctx context.Context, communityID, ownerID int64, secretKey string) (*Session, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, fmt.Errorf("%w: secret key is empty", common.ErrValidation)
	}

	conn, err := g.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if err := g.repos.Communities(conn).Ensure(ctx, communityID, g.now()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ensure community: %w", err)
	}

	s := &Session{
		conn:        conn,
		repos:       g.repos,
		dialect:     g.repos.Dialect(),
		cipher:      cryptox.NewStorageCipher(secretKey, ownerID),
		communityID: communityID,
		log:         g.log.With("session", g.newID(), "community", communityID),
		now:         g.now,
	}
	s.log.Debug(ctx, "session opened")
	return s, nil
}

// WithSession opens a session, runs fn and closes the session on every path.
// A close error is reported only when fn succeeded.
func (g *Gateway) WithSession(ctx context.Context, communityID, ownerID int64, secretKey string, fn func(ctx context.Context, s *Session) error) (err error) {
	s, err := g.Open(ctx, communityID, ownerID, secretKey)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(ctx, s)
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
