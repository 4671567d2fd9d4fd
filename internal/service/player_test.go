package service

import (
	"context"
	"testing"

	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerService_Upsert(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.players.Upsert(ctx, UpsertPlayerInput{SteamID: "garbage", Username: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.players.Upsert(ctx, UpsertPlayerInput{SteamID: viperSteamID, Username: "  "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := s.players.Upsert(ctx, UpsertPlayerInput{SteamID: viperSteamID, Username: "viper"})
	require.NoError(t, err)

	bySteam, err := s.players.GetBySteamID(ctx, viperSteamID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySteam.ID)
}

func TestPlayerService_UpdateProfile(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	p := s.player(t, viperSteamID, "viper")

	_, err := s.players.UpdateProfile(ctx, p.ID, "", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := s.players.UpdateProfile(ctx, p.ID, "Viper", "https://cdn/v.png")
	require.NoError(t, err)
	assert.Equal(t, "Viper", updated.Username)
	assert.Equal(t, "https://cdn/v.png", updated.AvatarURL)

	found, err := s.players.Search(ctx, "vip")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	all, err := s.players.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
