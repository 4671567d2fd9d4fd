package service

import (
	"context"
	"testing"

	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvitationService_InviteAndAccept(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	owner := s.player(t, viperSteamID, "viper")
	target := s.player(t, freshSteamID, "fresh")
	clan := s.clan(t, owner, "ZRB", false)

	_, err := s.invitations.Invite(ctx, target.ID, clan.ID, owner.ID, "")
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = s.invitations.Invite(ctx, owner.ID, clan.ID, owner.ID, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	inv, err := s.invitations.Invite(ctx, owner.ID, clan.ID, target.ID, "join us")
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationPending, inv.Status)
	require.NotNil(t, inv.Clan)

	_, err = s.invitations.Invite(ctx, owner.ID, clan.ID, target.ID, "again")
	require.ErrorIs(t, err, domain.ErrConflict)

	mine, err := s.invitations.ListMine(ctx, target.ID, "pending")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "ZRB", mine[0].Clan.Tag)

	require.ErrorIs(t, s.invitations.Accept(ctx, owner.ID, inv.ID), domain.ErrForbidden)
	require.NoError(t, s.invitations.Accept(ctx, target.ID, inv.ID), "players without stats still join")

	details, err := s.clans.Get(ctx, clan.ID)
	require.NoError(t, err)
	require.Len(t, details.Members, 2)
	assert.Nil(t, details.Members[1].StatsSnapshot)
}

func TestInvitationService_AcceptCarriesSnapshot(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	owner := s.player(t, viperSteamID, "viper")
	target := s.player(t, wolfSteamID, "wolf")
	clan := s.clan(t, owner, "ZRB", true)

	inv, err := s.invitations.Invite(ctx, owner.ID, clan.ID, target.ID, "")
	require.NoError(t, err)
	require.NoError(t, s.invitations.Accept(ctx, target.ID, inv.ID))

	details, err := s.clans.Get(ctx, clan.ID)
	require.NoError(t, err)
	require.NotNil(t, details.Members[1].StatsSnapshot)
	assert.Positive(t, details.Members[1].StatsSnapshot.Kills)

	_, err = s.invitations.Invite(ctx, owner.ID, clan.ID, target.ID, "")
	require.ErrorIs(t, err, domain.ErrConflict, "members cannot be invited")
}

func TestInvitationService_RejectCancelReopen(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	owner := s.player(t, viperSteamID, "viper")
	target := s.player(t, wolfSteamID, "wolf")
	clan := s.clan(t, owner, "ZRB", true)

	inv, err := s.invitations.Invite(ctx, owner.ID, clan.ID, target.ID, "")
	require.NoError(t, err)

	require.ErrorIs(t, s.invitations.Cancel(ctx, target.ID, inv.ID), domain.ErrForbidden)
	require.NoError(t, s.invitations.Reject(ctx, target.ID, inv.ID))
	require.ErrorIs(t, s.invitations.Cancel(ctx, owner.ID, inv.ID), domain.ErrInvalidState)

	reopened, err := s.invitations.Invite(ctx, owner.ID, clan.ID, target.ID, "second try")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, reopened.ID)
	assert.Equal(t, "second try", reopened.Message)

	require.NoError(t, s.invitations.Cancel(ctx, owner.ID, reopened.ID))

	byClan, err := s.invitations.ListForClan(ctx, owner.ID, clan.ID, "cancelled")
	require.NoError(t, err)
	assert.Len(t, byClan, 1)

	_, err = s.invitations.ListForClan(ctx, target.ID, clan.ID, "")
	require.ErrorIs(t, err, domain.ErrForbidden)
}
