package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClanService_CreateValidation(t *testing.T) {
	s := newTestServices(t)
	owner := s.player(t, viperSteamID, "viper")

	tests := []struct {
		name string
		in   ClanInput
	}{
		{"missing name", ClanInput{Tag: "ZRB"}},
		{"missing tag", ClanInput{Name: "Zaruba"}},
		{"long tag", ClanInput{Name: "Zaruba", Tag: "ABCDEFGHIJK"}},
		{"bad theme", ClanInput{Name: "Zaruba", Tag: "ZRB", Theme: "purple"}},
		{"long requirement", ClanInput{Name: "Zaruba", Tag: "ZRB", Requirements: domain.ClanRequirements{CustomRequirement: strings.Repeat("x", 31)}}},
	}

	for _, tt := range tests {
		_, err := s.clans.Create(context.Background(), owner.ID, tt.in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, tt.name)
	}

	clan, err := s.clans.Create(context.Background(), owner.ID, ClanInput{Name: " Zaruba ", Tag: "ZRB"})
	require.NoError(t, err)
	assert.Equal(t, "Zaruba", clan.Name)
	assert.Equal(t, domain.ThemeOrange, clan.Theme, "theme defaults to orange")
}

func TestClanService_CreateConflicts(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	owner := s.player(t, viperSteamID, "viper")
	other := s.player(t, wolfSteamID, "wolf")
	s.clan(t, owner, "ZRB", true)

	_, err := s.clans.Create(ctx, owner.ID, ClanInput{Name: "Second", Tag: "TWO"})
	require.ErrorIs(t, err, domain.ErrConflict, "a clan member cannot found another clan")

	_, err = s.clans.Create(ctx, other.ID, ClanInput{Name: "Copy", Tag: "zrb"})
	require.ErrorIs(t, err, domain.ErrConflict, "tags are unique regardless of case")
}

func TestClanService_GetAndList(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	owner := s.player(t, viperSteamID, "viper")
	clan := s.clan(t, owner, "ZRB", true)

	details, err := s.clans.Get(ctx, clan.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, details.Clan.OwnerID)
	require.Len(t, details.Members, 1)
	assert.Empty(t, details.Members[0].Presence, "presence needs a steam key")

	clans, err := s.clans.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, clans, 1)

	_, err = s.clans.Get(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClanService_UpdateAndDelete(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	owner := s.player(t, viperSteamID, "viper")
	stranger := s.player(t, wolfSteamID, "wolf")
	clan := s.clan(t, owner, "ZRB", true)

	in := ClanInput{Name: "Zaruba Elite", Tag: "ZRBE", Theme: domain.ThemeBlue}
	_, err := s.clans.Update(ctx, stranger.ID, clan.ID, in)
	require.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := s.clans.Update(ctx, owner.ID, clan.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "ZRBE", updated.Tag)
	assert.Equal(t, domain.ThemeBlue, updated.Theme)
	assert.False(t, updated.IsRecruiting())

	require.ErrorIs(t, s.clans.Delete(ctx, stranger.ID, clan.ID), domain.ErrForbidden)
	require.NoError(t, s.clans.Delete(ctx, owner.ID, clan.ID))

	p, err := s.players.Get(ctx, owner.ID)
	require.NoError(t, err)
	assert.False(t, p.InClan())
}

func TestClanService_Membership(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	owner := s.player(t, viperSteamID, "viper")
	member := s.player(t, wolfSteamID, "wolf")
	clan := s.clan(t, owner, "ZRB", true)

	app, err := s.applications.Apply(ctx, member.ID, clan.ID, "")
	require.NoError(t, err)
	require.NoError(t, s.applications.Approve(ctx, owner.ID, app.ID))

	require.ErrorIs(t, s.clans.Kick(ctx, member.ID, clan.ID, owner.ID), domain.ErrForbidden)
	require.ErrorIs(t, s.clans.Kick(ctx, owner.ID, clan.ID, owner.ID), domain.ErrInvalidState)
	require.ErrorIs(t, s.clans.Leave(ctx, owner.ID, clan.ID), domain.ErrInvalidState)

	require.ErrorIs(t, s.clans.TransferOwnership(ctx, owner.ID, clan.ID, owner.ID), domain.ErrInvalidInput)
	require.ErrorIs(t, s.clans.TransferOwnership(ctx, owner.ID, clan.ID, "nobody"), domain.ErrNotFound)
	require.NoError(t, s.clans.TransferOwnership(ctx, owner.ID, clan.ID, member.ID))

	require.NoError(t, s.clans.Leave(ctx, owner.ID, clan.ID), "former owner may leave")

	details, err := s.clans.Get(ctx, clan.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, details.Clan.OwnerID)
	assert.Equal(t, 1, details.Clan.MemberCount)
}

func TestClanService_Kick(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	owner := s.player(t, viperSteamID, "viper")
	member := s.player(t, wolfSteamID, "wolf")
	clan := s.clan(t, owner, "ZRB", true)

	app, err := s.applications.Apply(ctx, member.ID, clan.ID, "hi")
	require.NoError(t, err)
	require.NoError(t, s.applications.Approve(ctx, owner.ID, app.ID))

	require.NoError(t, s.clans.Kick(ctx, owner.ID, clan.ID, member.ID))

	p, err := s.players.Get(ctx, member.ID)
	require.NoError(t, err)
	assert.False(t, p.InClan())
}
