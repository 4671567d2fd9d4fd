package repository

import (
	"context"
	"testing"

	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, r repos, clan *domain.Clan, p *domain.Player) *domain.ClanApplication {
	t.Helper()
	app, err := r.applications.Create(context.Background(), &domain.ClanApplication{
		ClanID:        clan.ID,
		PlayerID:      p.ID,
		PlayerName:    p.Username,
		PlayerSteamID: p.SteamID,
		Message:       "let me in",
		StatsSnapshot: stats.Snapshot{Games: 89, Kills: 623, KD: 1.4, Hours: "14d 6h"},
	})
	require.NoError(t, err)
	return app
}

func TestApplicationRepository_CreateAndList(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	clan := seedClan(t, r, "ZRB", seedPlayer(t, r, "76561198000000001", "owner"))
	applicant := seedPlayer(t, r, "76561198000000002", "applicant")

	app := apply(t, r, clan, applicant)
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.NotEmpty(t, app.ID)

	pending, err := r.applications.HasPending(ctx, clan.ID, applicant.ID)
	require.NoError(t, err)
	assert.True(t, pending)

	listed, err := r.applications.ListByClan(ctx, clan.ID, domain.ApplicationPending)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "14d 6h", listed[0].StatsSnapshot.Hours)

	listed, err = r.applications.ListByClan(ctx, clan.ID, domain.ApplicationRejected)
	require.NoError(t, err)
	assert.Empty(t, listed)

	mine, err := r.applications.ListByPlayer(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestApplicationRepository_Approve(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	first := seedClan(t, r, "ONE", seedPlayer(t, r, "76561198000000001", "owner1"))
	second := seedClan(t, r, "TWO", seedPlayer(t, r, "76561198000000002", "owner2"))
	applicant := seedPlayer(t, r, "76561198000000003", "applicant")

	app := apply(t, r, first, applicant)
	other := apply(t, r, second, applicant)

	require.NoError(t, r.applications.Approve(ctx, app))

	got, err := r.applications.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationAccepted, got.Status)

	got, err = r.applications.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationWithdrawn, got.Status)

	member, err := r.clans.GetMember(ctx, first.ID, applicant.ID)
	require.NoError(t, err)
	require.NotNil(t, member.StatsSnapshot)
	assert.Equal(t, int64(623), member.StatsSnapshot.Kills)

	p, err := r.players.Get(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, p.CurrentClanID)

	err = r.applications.Approve(ctx, app)
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestApplicationRepository_Resolve(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	clan := seedClan(t, r, "ZRB", seedPlayer(t, r, "76561198000000001", "owner"))
	app := apply(t, r, clan, seedPlayer(t, r, "76561198000000002", "applicant"))

	require.NoError(t, r.applications.Resolve(ctx, app.ID, domain.ApplicationRejected))
	require.ErrorIs(t, r.applications.Resolve(ctx, app.ID, domain.ApplicationWithdrawn), domain.ErrInvalidState)

	_, err := r.applications.Get(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplicationRepository_OnePendingPerClan(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	clan := seedClan(t, r, "ZRB", seedPlayer(t, r, "76561198000000001", "owner"))
	applicant := seedPlayer(t, r, "76561198000000002", "applicant")

	first := apply(t, r, clan, applicant)

	_, err := r.applications.Create(ctx, &domain.ClanApplication{
		ClanID:        clan.ID,
		PlayerID:      applicant.ID,
		PlayerName:    applicant.Username,
		PlayerSteamID: applicant.SteamID,
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, r.applications.Resolve(ctx, first.ID, domain.ApplicationRejected))
	second := apply(t, r, clan, applicant)
	assert.NotEqual(t, first.ID, second.ID, "a resolved application does not block a new one")
}
