package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Ars145/ZarubaProfile-sub000/internal/database"
	"github.com/Ars145/ZarubaProfile-sub000/internal/db"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type repos struct {
	players      *PlayerRepository
	clans        *ClanRepository
	applications *ApplicationRepository
	invitations  *InvitationRepository
}

func newTestRepos(t *testing.T) repos {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on&_busy_timeout=5000"
	sqlDB, err := database.Open(database.DriverSQLite, dsn, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return newRepos(sqlDB, zerolog.Nop())
}

func newRepos(sqlDB *sql.DB, logger zerolog.Logger) repos {
	queries := db.New(sqlDB)
	return repos{
		players:      NewPlayerRepository(sqlDB, queries, logger),
		clans:        NewClanRepository(sqlDB, queries, logger),
		applications: NewApplicationRepository(sqlDB, queries, logger),
		invitations:  NewInvitationRepository(sqlDB, queries, logger),
	}
}

func seedPlayer(t *testing.T, r repos, steamID, username string) *domain.Player {
	t.Helper()
	p, err := r.players.Upsert(context.Background(), &domain.Player{SteamID: steamID, Username: username})
	require.NoError(t, err)
	return p
}

func seedClan(t *testing.T, r repos, tag string, owner *domain.Player) *domain.Clan {
	t.Helper()
	clan, err := r.clans.Create(context.Background(), &domain.Clan{
		Name:         tag + " squad",
		Tag:          tag,
		Theme:        domain.ThemeOrange,
		Requirements: domain.ClanRequirements{IsOpen: true},
	}, owner.ID)
	require.NoError(t, err)
	return clan
}
