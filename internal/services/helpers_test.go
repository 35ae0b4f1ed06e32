package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/linevault/internal/dbx"
	"github.com/dmitrijs2005/linevault/internal/logging"
	"github.com/dmitrijs2005/linevault/internal/models"
	"github.com/stretchr/testify/require"
)

const (
	testCommunity = int64(1001)
	testOwner     = int64(42)
	testSecret    = "process-secret"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestGateway(t *testing.T) (*Gateway, *fakeClock) {
	t.Helper()

	g, err := Connect(context.Background(), dbx.DriverSQLite, filepath.Join(t.TempDir(), "vaults.db"), logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })

	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	g.now = clock.Now
	return g, clock
}

func openSession(t *testing.T, g *Gateway) *Session {
	t.Helper()
	return openSessionAs(t, g, testCommunity, testOwner, testSecret)
}

func openSessionAs(t *testing.T, g *Gateway, community, owner int64, secret string) *Session {
	t.Helper()
	s, err := g.Open(context.Background(), community, owner, secret)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// countRows and rawVault go through the session connection: SQLite runs on a
// single connection, which an open session holds.
func countRows(t *testing.T, s *Session, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.conn.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func rawVault(t *testing.T, s *Session, id int64) *models.Vault {
	t.Helper()
	v, err := s.repos.Vaults(s.conn).GetByID(context.Background(), s.communityID, id, false)
	require.NoError(t, err)
	return v
}

func mustCreateVault(t *testing.T, s *Session, code, text string) *models.Vault {
	t.Helper()
	v, err := s.CreateVault(context.Background(), code, text)
	require.NoError(t, err)
	return v
}

func mustCreateCard(t *testing.T, s *Session, v *models.Vault, message int64, allowance int, cooldown int64) *models.Card {
	t.Helper()
	c, err := s.CreateCard(context.Background(), v, CardParams{
		ChannelRef:      500,
		MessageRef:      message,
		RequiredRole:    700,
		Allowance:       allowance,
		CooldownSeconds: cooldown,
	})
	require.NoError(t, err)
	return c
}
