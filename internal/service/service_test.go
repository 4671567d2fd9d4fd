package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Ars145/ZarubaProfile-sub000/internal/analytics"
	"github.com/Ars145/ZarubaProfile-sub000/internal/api"
	"github.com/Ars145/ZarubaProfile-sub000/internal/database"
	"github.com/Ars145/ZarubaProfile-sub000/internal/db"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/Ars145/ZarubaProfile-sub000/internal/repository"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Steam IDs present in the bundled analytics dataset.
const (
	viperSteamID = "76561197984957085"
	wolfSteamID  = "76561198160265727"
	medicSteamID = "76561198138043505"
	// valid, but unknown to analytics
	freshSteamID = "76561197960287930"
)

type services struct {
	players      *PlayerService
	clans        *ClanService
	applications *ApplicationService
	invitations  *InvitationService
	stats        *StatsService
}

func newTestServices(t *testing.T) services {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on&_busy_timeout=5000"
	sqlDB, err := database.Open(database.DriverSQLite, dsn, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	fallback, err := analytics.NewFallbackSource()
	require.NoError(t, err)

	logger := zerolog.Nop()
	queries := db.New(sqlDB)
	playerRepo := repository.NewPlayerRepository(sqlDB, queries, logger)
	clanRepo := repository.NewClanRepository(sqlDB, queries, logger)

	statsSvc := NewStatsService(fallback, stats.NewEngine(), logger)
	return services{
		players:      NewPlayerService(playerRepo, logger),
		clans:        NewClanService(clanRepo, playerRepo, api.NewSteamClientWithBaseURL("", "http://unused"), logger),
		applications: NewApplicationService(repository.NewApplicationRepository(sqlDB, queries, logger), clanRepo, playerRepo, statsSvc, logger),
		invitations:  NewInvitationService(repository.NewInvitationRepository(sqlDB, queries, logger), clanRepo, playerRepo, statsSvc, logger),
		stats:        statsSvc,
	}
}

func (s services) player(t *testing.T, steamID, username string) *domain.Player {
	t.Helper()
	p, err := s.players.Upsert(context.Background(), UpsertPlayerInput{SteamID: steamID, Username: username})
	require.NoError(t, err)
	return p
}

func (s services) clan(t *testing.T, owner *domain.Player, tag string, open bool) *domain.Clan {
	t.Helper()
	c, err := s.clans.Create(context.Background(), owner.ID, ClanInput{
		Name:         tag + " clan",
		Tag:          tag,
		Requirements: domain.ClanRequirements{IsOpen: open},
	})
	require.NoError(t, err)
	return c
}
