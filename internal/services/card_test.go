package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/linevault/internal/common"
	"github.com/dmitrijs2005/linevault/internal/models"
	"github.com/dmitrijs2005/linevault/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCard(t *testing.T) {
	g, clock := newTestGateway(t)
	s := openSession(t, g)
	ctx := context.Background()

	v := mustCreateVault(t, s, "alpha", "a\nb")
	c, err := s.CreateCard(ctx, v, CardParams{
		ChannelRef: 11, MessageRef: 22, RequiredRole: 33, Allowance: 2, CooldownSeconds: 10,
	})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, &models.Card{
		ID: c.ID, VaultID: v.ID, CommunityID: testCommunity,
		ChannelRef: 11, MessageRef: 22, RequiredRole: 33,
		Allowance: 2, CooldownSeconds: 10, CreatedAt: clock.Now(),
	}, c)

	got, err := s.GetCard(ctx, 22)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, int64(33), got.RequiredRole)
}

func TestCreateCard_Validation(t *testing.T) {
	g, _ := newTestGateway(t)
	s := openSession(t, g)
	ctx := context.Background()
	v := mustCreateVault(t, s, "alpha", "a")

	tests := []struct {
		name string
		p    CardParams
	}{
		{"zero allowance", CardParams{MessageRef: 1, Allowance: 0}},
		{"negative allowance", CardParams{MessageRef: 1, Allowance: -3}},
		{"negative cooldown", CardParams{MessageRef: 1, Allowance: 1, CooldownSeconds: -1}},
		{"cooldown too long", CardParams{MessageRef: 1, Allowance: 1, CooldownSeconds: timex.MaxCooldownSeconds}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateCard(ctx, v, tt.p)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
	assert.Equal(t, 0, countRows(t, s, "cards"))
}

func TestCreateCard_DuplicateMessage(t *testing.T) {
	g, _ := newTestGateway(t)
	s := openSession(t, g)
	v := mustCreateVault(t, s, "alpha", "a")

	mustCreateCard(t, s, v, 22, 1, 0)
	_, err := s.CreateCard(context.Background(), v, CardParams{MessageRef: 22, Allowance: 1})
	assert.ErrorIs(t, err, common.ErrCardExists)
}

func TestCreateCard_VaultGone(t *testing.T) {
	g, _ := newTestGateway(t)
	s := openSession(t, g)
	ctx := context.Background()

	v := mustCreateVault(t, s, "alpha", "a")
	_, err := s.RemoveVault(ctx, v.ID)
	require.NoError(t, err)

	_, err = s.CreateCard(ctx, v, CardParams{MessageRef: 1, Allowance: 1})
	assert.ErrorIs(t, err, common.ErrVaultNotFound)

	_, err = s.CreateCard(ctx, nil, CardParams{MessageRef: 1, Allowance: 1})
	assert.ErrorIs(t, err, common.ErrVaultNotFound)
}

func TestGetCard_Missing(t *testing.T) {
	g, _ := newTestGateway(t)
	s := openSession(t, g)

	_, err := s.GetCard(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCards_Iterate(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx := context.Background()

	s := openSession(t, g)
	v := mustCreateVault(t, s, "alpha", "a")
	w := mustCreateVault(t, s, "beta", "b")
	mustCreateCard(t, s, v, 1, 1, 0)
	mustCreateCard(t, s, w, 2, 1, 0)
	mustCreateCard(t, s, v, 3, 1, 0)
	require.NoError(t, s.Close())

	other := openSessionAs(t, g, 2002, testOwner, testSecret)
	x := mustCreateVault(t, other, "alpha", "x")
	mustCreateCard(t, other, x, 4, 1, 0)
	require.NoError(t, other.Close())

	s = openSession(t, g)
	var messages []int64
	for c, err := range s.Cards(ctx) {
		require.NoError(t, err)
		// the session stays usable inside the loop
		got, err := s.GetCard(ctx, c.MessageRef)
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		messages = append(messages, c.MessageRef)
	}
	assert.Equal(t, []int64{1, 2, 3}, messages)
}

func TestCards_StopEarly(t *testing.T) {
	g, _ := newTestGateway(t)
	s := openSession(t, g)
	v := mustCreateVault(t, s, "alpha", "a")
	for i := int64(1); i <= 5; i++ {
		mustCreateCard(t, s, v, i, 1, 0)
	}

	n := 0
	for _, err := range s.Cards(context.Background()) {
		require.NoError(t, err)
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestCards_Error(t *testing.T) {
	g, _ := newTestGateway(t)
	s := openSession(t, g)
	require.NoError(t, s.Close())

	var errs []error
	for _, err := range s.Cards(context.Background()) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.Error(t, errs[0])
}

func TestRemoveCard(t *testing.T) {
	g, _ := newTestGateway(t)
	s := openSession(t, g)
	ctx := context.Background()

	v := mustCreateVault(t, s, "alpha", "a\nb\nc")
	c := mustCreateCard(t, s, v, 1, 1, 0)
	other := mustCreateCard(t, s, v, 2, 1, 0)
	for _, card := range []*models.Card{c, c, other} {
		_, err := s.Claim(ctx, 7, card)
		require.NoError(t, err)
	}

	require.NoError(t, s.RemoveCard(ctx, c))

	_, err := s.GetCard(ctx, 1)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, 1, countRows(t, s, "claims"))
	assert.Equal(t, 1, countRows(t, s, "cards"))

	// the vault itself is untouched
	got, err := s.GetVault(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, 0, got.LineCount)

	assert.ErrorIs(t, s.RemoveCard(ctx, c), common.ErrorNotFound)
}
