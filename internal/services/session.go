package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/linevault/internal/cryptox"
	"github.com/dmitrijs2005/linevault/internal/dbx"
	"github.com/dmitrijs2005/linevault/internal/logging"
	"github.com/dmitrijs2005/linevault/internal/repositories/repomanager"
)

// Session is a unit of work for one community. All vault, card and claim
// operations go through it. A Session must not be used from more than one
// goroutine at a time; run concurrent work on separate sessions.
type Session struct {
	conn        *sql.Conn
	repos       repomanager.RepositoryManager
	dialect     dbx.Dialect
	cipher      *cryptox.StorageCipher
	communityID int64
	log         logging.Logger
	now         func() time.Time
	closed      bool
}

// CommunityID returns the community the session is scoped to.
func (s *Session) CommunityID() int64 {
	return s.communityID
}

// Close releases the session's connection. Calling it again is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.log.Debug(context.Background(), "session closed")
	return s.conn.Close()
}

// inTx runs fn in a read-modify-write transaction on the session connection.
func (s *Session) inTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, s.conn, s.dialect.TxOptions(), fn)
}
