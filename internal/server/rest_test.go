package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ars145/ZarubaProfile-sub000/internal/analytics"
	"github.com/Ars145/ZarubaProfile-sub000/internal/config"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/Ars145/ZarubaProfile-sub000/internal/middleware"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", domain.ErrInvalidInput), http.StatusBadRequest},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrStatsNotFound, http.StatusNotFound},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrInvalidState, http.StatusUnprocessableEntity},
		{analytics.ErrSourceUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestPlayers(t *testing.T) {
	s := newTestServer(t)

	id, token := s.login(t, viperSteamID, "viper")

	var p playerResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/players/"+id, "", nil, &p))
	assert.Equal(t, viperSteamID, p.SteamID)
	assert.Nil(t, p.CurrentClanID)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/players/steam/"+viperSteamID, "", nil, &p))
	assert.Equal(t, id, p.ID)

	var found []playerResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/players/search?q=vip", "", nil, &found))
	require.Len(t, found, 1)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/players/missing", "", nil, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/players", "", map[string]string{"username": "x"}, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/players", "", map[string]string{"steamId": "nope", "username": "x"}, nil))

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPatch, "/api/me", token, map[string]string{"username": "viper2"}, &p))
	assert.Equal(t, "viper2", p.Username)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/me", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/me", "garbage", nil, nil))
}

func TestRejectsUnknownFields(t *testing.T) {
	s := newTestServer(t)

	code := s.do(t, http.MethodPost, "/api/players", "", map[string]string{
		"steamId":  viperSteamID,
		"username": "viper",
		"isAdmin":  "true",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStatsEndpoints(t *testing.T) {
	s := newTestServer(t)

	var view stats.PlayerView
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/stats/"+viperSteamID, "", nil, &view))
	assert.Equal(t, viperSteamID, view.ID)
	assert.Positive(t, view.Kills)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/stats/"+freshSteamID, "", nil, nil))

	var board []LeaderboardEntry
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/leaderboard?sort=kills&limit=2", "", nil, &board))
	require.Len(t, board, 2)
	assert.GreaterOrEqual(t, board[0].Kills, board[1].Kills)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 2, board[1].Rank)
	assert.Equal(t, stats.KillDeathRatio(board[0].Kills, board[0].Deaths), board[0].KD)
	assert.Equal(t, stats.WinRate(board[0].MatchesWon, board[0].MatchesPlayed), board[0].WinRate)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/leaderboard?sort=style", "", nil, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/stats/search", "", nil, nil))

	var ranks rankConfigResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/ranks", "", nil, &ranks))
	assert.NotEmpty(t, ranks.Icons)
	assert.Equal(t, []string{"1", "2", "3"}, ranks.Groups)
}

func TestToSummaryResponses(t *testing.T) {
	t.Parallel()

	entries := toSummaryResponses([]analytics.PlayerSummary{
		{ID: "a", DisplayName: "Flawless", Kills: 12, Deaths: 0, MatchesPlayed: 4, MatchesWon: 3},
		{ID: "b", DisplayName: "Trader", Kills: 10, Deaths: 4, MatchesPlayed: 0, MatchesWon: 0},
	})

	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 12.0, entries[0].KD, "kd is the kill count without deaths")
	assert.Equal(t, 75.0, entries[0].WinRate)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 2.5, entries[1].KD)
	assert.Equal(t, 0.0, entries[1].WinRate)
}

func TestClanLifecycle(t *testing.T) {
	s := newTestServer(t)

	ownerID, ownerToken := s.login(t, viperSteamID, "viper")
	wolfID, wolfToken := s.login(t, wolfSteamID, "wolf")

	body := map[string]any{
		"name":         "Zaruba",
		"tag":          "ZRB",
		"requirements": map[string]any{"isOpen": true},
	}
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/clans", "", body, nil))

	var clan clanResponse
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/clans", ownerToken, body, &clan))
	assert.Equal(t, ownerID, clan.OwnerID)
	assert.Equal(t, domain.ThemeOrange, clan.Theme)
	assert.True(t, clan.IsRecruiting)

	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/clans", wolfToken, body, nil), "tag taken")

	var app applicationResponse
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/clans/"+clan.ID+"/applications", wolfToken,
		map[string]string{"message": "let me in"}, &app))
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.Positive(t, app.StatsSnapshot.Kills, "snapshot taken at apply time")

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/clans/"+clan.ID+"/applications", wolfToken, nil, nil))

	var apps []applicationResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/clans/"+clan.ID+"/applications?status=pending", ownerToken, nil, &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/clans/"+clan.ID+"/applications?status=maybe", ownerToken, nil, nil))

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/applications/"+app.ID+"/approve", wolfToken, nil, nil))
	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, "/api/applications/"+app.ID+"/approve", ownerToken, nil, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, s.do(t, http.MethodPost, "/api/applications/"+app.ID+"/approve", ownerToken, nil, nil))

	var details clanDetailsResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/clans/"+clan.ID, "", nil, &details))
	assert.Equal(t, 2, details.MemberCount)
	require.Len(t, details.Members, 2)
	assert.Equal(t, ownerID, details.Members[0].PlayerID, "owner listed first")
	assert.Equal(t, wolfID, details.Members[1].PlayerID)
	require.NotNil(t, details.Members[1].StatsSnapshot)

	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, "/api/clans/"+clan.ID+"/transfer", ownerToken,
		map[string]string{"playerId": wolfID}, nil))
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/api/clans/"+clan.ID+"/members/"+wolfID, ownerToken, nil, nil))
	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, "/api/clans/"+clan.ID+"/leave", ownerToken, nil, nil))

	var me playerResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/me", ownerToken, nil, &me))
	assert.Nil(t, me.CurrentClanID)

	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/clans/"+clan.ID, wolfToken, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/clans/"+clan.ID, "", nil, nil))
}

func TestInvitationFlow(t *testing.T) {
	s := newTestServer(t)

	_, ownerToken := s.login(t, viperSteamID, "viper")
	wolfID, wolfToken := s.login(t, wolfSteamID, "wolf")

	var clan clanResponse
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/clans", ownerToken,
		map[string]any{"name": "Zaruba", "tag": "ZRB"}, &clan))

	var inv invitationResponse
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/clans/"+clan.ID+"/invitations", ownerToken,
		map[string]string{"playerId": wolfID}, &inv))
	assert.Equal(t, domain.InvitationPending, inv.Status)

	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/clans/"+clan.ID+"/invitations", ownerToken,
		map[string]string{"playerId": wolfID}, nil))

	var mine []invitationResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/me/invitations?status=pending", wolfToken, nil, &mine))
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Clan)
	assert.Equal(t, "ZRB", mine[0].Clan.Tag)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/invitations/"+inv.ID+"/accept", ownerToken, nil, nil))
	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, "/api/invitations/"+inv.ID+"/accept", wolfToken, nil, nil))

	var me playerResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/me", wolfToken, nil, &me))
	require.NotNil(t, me.CurrentClanID)
	assert.Equal(t, clan.ID, *me.CurrentClanID)
}

func TestServerErrorsAreHidden(t *testing.T) {
	t.Parallel()

	reporter, err := middleware.NewReporter(&config.Config{}, zerolog.Nop())
	require.NoError(t, err)
	a := &API{reporter: reporter, validator: NewValidator(), logger: zerolog.Nop()}

	rec := httptest.NewRecorder()
	a.fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("database exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "Internal Server Error", env.Error)
	assert.NotContains(t, rec.Body.String(), "exploded")

	rec = httptest.NewRecorder()
	a.fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("tag taken: %w", domain.ErrConflict))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "tag taken")
}
