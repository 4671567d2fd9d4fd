package server

import (
	"net/http"

	"github.com/Ars145/ZarubaProfile-sub000/internal/service"
	"github.com/go-chi/chi/v5"
)

func (a *API) upsertPlayer(w http.ResponseWriter, r *http.Request) {
	var req upsertPlayerRequest
	if err := a.validator.decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	player, err := a.players.Upsert(r.Context(), service.UpsertPlayerInput{
		SteamID:         req.SteamID,
		Username:        req.Username,
		DiscordID:       req.DiscordID,
		DiscordUsername: req.DiscordUsername,
		DiscordAvatar:   req.DiscordAvatar,
		AvatarURL:       req.AvatarURL,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toPlayerResponse(player))
}

func (a *API) getPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := a.players.Get(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toPlayerResponse(player))
}

func (a *API) getPlayerBySteamID(w http.ResponseWriter, r *http.Request) {
	player, err := a.players.GetBySteamID(r.Context(), chi.URLParam(r, "steamID"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toPlayerResponse(player))
}

func (a *API) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := a.players.List(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toPlayerResponses(players))
}

func (a *API) searchPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := a.players.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toPlayerResponses(players))
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	player, err := a.players.Get(r.Context(), actor(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toPlayerResponse(player))
}

func (a *API) updateMe(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := a.validator.decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	player, err := a.players.UpdateProfile(r.Context(), actor(r), req.Username, req.AvatarURL)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toPlayerResponse(player))
}

func (a *API) playerStats(w http.ResponseWriter, r *http.Request) {
	view, err := a.stats.PlayerStats(r.Context(), chi.URLParam(r, "steamID"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, view)
}

func (a *API) searchStats(w http.ResponseWriter, r *http.Request) {
	results, err := a.stats.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toSummaryResponses(results))
}

func (a *API) leaderboard(w http.ResponseWriter, r *http.Request) {
	results, err := a.stats.Leaderboard(r.Context(), r.URL.Query().Get("sort"), queryInt(r, "limit"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toSummaryResponses(results))
}

func (a *API) rankConfig(w http.ResponseWriter, r *http.Request) {
	tiers, err := a.stats.RankConfig(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toRankConfigResponse(tiers))
}
