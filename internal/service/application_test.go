package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationService_Apply(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	owner := s.player(t, viperSteamID, "viper")
	applicant := s.player(t, wolfSteamID, "wolf")
	nobody := s.player(t, freshSteamID, "fresh")
	clan := s.clan(t, owner, "ZRB", true)

	app, err := s.applications.Apply(ctx, applicant.ID, clan.ID, "  let me in  ")
	require.NoError(t, err)
	assert.Equal(t, "let me in", app.Message)
	assert.Equal(t, "wolf", app.PlayerName)
	assert.Equal(t, wolfSteamID, app.PlayerSteamID)
	assert.Positive(t, app.StatsSnapshot.Games)

	_, err = s.applications.Apply(ctx, applicant.ID, clan.ID, "again")
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = s.applications.Apply(ctx, nobody.ID, clan.ID, "")
	require.ErrorIs(t, err, domain.ErrStatsNotFound)

	_, err = s.applications.Apply(ctx, owner.ID, clan.ID, "")
	require.ErrorIs(t, err, domain.ErrConflict, "members cannot apply")

	_, err = s.applications.Apply(ctx, applicant.ID, clan.ID, strings.Repeat("x", 501))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplicationService_ApplyClosedClan(t *testing.T) {
	s := newTestServices(t)

	owner := s.player(t, viperSteamID, "viper")
	applicant := s.player(t, wolfSteamID, "wolf")
	clan := s.clan(t, owner, "ZRB", false)

	_, err := s.applications.Apply(context.Background(), applicant.ID, clan.ID, "")
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestApplicationService_Review(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	owner := s.player(t, viperSteamID, "viper")
	wolf := s.player(t, wolfSteamID, "wolf")
	medic := s.player(t, medicSteamID, "medic")
	clan := s.clan(t, owner, "ZRB", true)

	wolfApp, err := s.applications.Apply(ctx, wolf.ID, clan.ID, "")
	require.NoError(t, err)
	medicApp, err := s.applications.Apply(ctx, medic.ID, clan.ID, "")
	require.NoError(t, err)

	_, err = s.applications.ListForClan(ctx, wolf.ID, clan.ID, "")
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = s.applications.ListForClan(ctx, owner.ID, clan.ID, "bogus")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	pending, err := s.applications.ListForClan(ctx, owner.ID, clan.ID, "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.ErrorIs(t, s.applications.Approve(ctx, wolf.ID, wolfApp.ID), domain.ErrForbidden)
	require.NoError(t, s.applications.Approve(ctx, owner.ID, wolfApp.ID))
	require.ErrorIs(t, s.applications.Approve(ctx, owner.ID, wolfApp.ID), domain.ErrInvalidState)

	require.NoError(t, s.applications.Reject(ctx, owner.ID, medicApp.ID))
	require.ErrorIs(t, s.applications.Withdraw(ctx, medic.ID, medicApp.ID), domain.ErrInvalidState)

	details, err := s.clans.Get(ctx, clan.ID)
	require.NoError(t, err)
	require.Len(t, details.Members, 2)
	joined := details.Members[1]
	assert.Equal(t, wolf.ID, joined.PlayerID)
	require.NotNil(t, joined.StatsSnapshot)
	assert.Equal(t, wolfApp.StatsSnapshot, *joined.StatsSnapshot)

	mine, err := s.applications.ListMine(ctx, medic.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.ApplicationRejected, mine[0].Status)
}

func TestApplicationService_Withdraw(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	owner := s.player(t, viperSteamID, "viper")
	wolf := s.player(t, wolfSteamID, "wolf")
	clan := s.clan(t, owner, "ZRB", true)

	app, err := s.applications.Apply(ctx, wolf.ID, clan.ID, "")
	require.NoError(t, err)

	require.ErrorIs(t, s.applications.Withdraw(ctx, owner.ID, app.ID), domain.ErrForbidden)
	require.NoError(t, s.applications.Withdraw(ctx, wolf.ID, app.ID))

	_, err = s.applications.Apply(ctx, wolf.ID, clan.ID, "")
	require.NoError(t, err, "withdrawn applications do not block a new one")
}
