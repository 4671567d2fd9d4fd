package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Ars145/ZarubaProfile-sub000/internal/analytics"
	"github.com/Ars145/ZarubaProfile-sub000/internal/api"
	"github.com/Ars145/ZarubaProfile-sub000/internal/auth"
	"github.com/Ars145/ZarubaProfile-sub000/internal/config"
	"github.com/Ars145/ZarubaProfile-sub000/internal/database"
	"github.com/Ars145/ZarubaProfile-sub000/internal/db"
	"github.com/Ars145/ZarubaProfile-sub000/internal/middleware"
	"github.com/Ars145/ZarubaProfile-sub000/internal/repository"
	"github.com/Ars145/ZarubaProfile-sub000/internal/service"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	viperSteamID = "76561197984957085"
	wolfSteamID  = "76561198160265727"
	freshSteamID = "76561197960287930"
)

type testServer struct {
	handler http.Handler
	tokens  *auth.TokenService
	stats   *service.StatsService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on&_busy_timeout=5000"
	sqlDB, err := database.Open(database.DriverSQLite, dsn, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	fallback, err := analytics.NewFallbackSource()
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(strings.Repeat("ab", 32), time.Hour)
	require.NoError(t, err)

	reporter, err := middleware.NewReporter(&config.Config{}, zerolog.Nop())
	require.NoError(t, err)

	logger := zerolog.Nop()
	queries := db.New(sqlDB)
	playerRepo := repository.NewPlayerRepository(sqlDB, queries, logger)
	clanRepo := repository.NewClanRepository(sqlDB, queries, logger)
	statsSvc := service.NewStatsService(fallback, stats.NewEngine(), logger)

	a := NewAPI(
		service.NewPlayerService(playerRepo, logger),
		service.NewClanService(clanRepo, playerRepo, api.NewSteamClientWithBaseURL("", "http://unused"), logger),
		service.NewApplicationService(repository.NewApplicationRepository(sqlDB, queries, logger), clanRepo, playerRepo, statsSvc, logger),
		service.NewInvitationService(repository.NewInvitationRepository(sqlDB, queries, logger), clanRepo, playerRepo, statsSvc, logger),
		statsSvc,
		tokens,
		reporter,
		logger,
	)

	r := chi.NewRouter()
	r.Mount("/api", a.Routes())
	return &testServer{handler: r, tokens: tokens, stats: statsSvc}
}

// do sends a request and decodes the envelope's data into out when given.
func (s *testServer) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		env := struct {
			Data json.RawMessage `json:"data"`
		}{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return rec.Code
}

// login registers the player and returns their id and a bearer token.
func (s *testServer) login(t *testing.T, steamID, username string) (string, string) {
	t.Helper()

	var p playerResponse
	code := s.do(t, http.MethodPost, "/api/players", "", map[string]string{
		"steamId":  steamID,
		"username": username,
	}, &p)
	require.Equal(t, http.StatusOK, code)

	token, err := s.tokens.Issue(p.ID)
	require.NoError(t, err)
	return p.ID, token
}
