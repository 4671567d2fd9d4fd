package server

import (
	"net/http"
	"strconv"

	"github.com/Ars145/ZarubaProfile-sub000/internal/middleware"
	"github.com/Ars145/ZarubaProfile-sub000/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type API struct {
	players      *service.PlayerService
	clans        *service.ClanService
	applications *service.ApplicationService
	invitations  *service.InvitationService
	stats        *service.StatsService
	verifier     middleware.TokenVerifier
	reporter     *middleware.Reporter
	validator    *Validator
	logger       zerolog.Logger
}

func NewAPI(
	players *service.PlayerService,
	clans *service.ClanService,
	applications *service.ApplicationService,
	invitations *service.InvitationService,
	stats *service.StatsService,
	verifier middleware.TokenVerifier,
	reporter *middleware.Reporter,
	logger zerolog.Logger,
) *API {
	return &API{
		players:      players,
		clans:        clans,
		applications: applications,
		invitations:  invitations,
		stats:        stats,
		verifier:     verifier,
		reporter:     reporter,
		validator:    NewValidator(),
		logger:       logger,
	}
}

// Routes mounts the REST surface. Reads are public; anything acting on behalf
// of a player needs a bearer token.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/players", a.upsertPlayer)
	r.Get("/players", a.listPlayers)
	r.Get("/players/search", a.searchPlayers)
	r.Get("/players/steam/{steamID}", a.getPlayerBySteamID)
	r.Get("/players/{playerID}", a.getPlayer)

	r.Get("/stats/search", a.searchStats)
	r.Get("/stats/{steamID}", a.playerStats)
	r.Get("/leaderboard", a.leaderboard)
	r.Get("/ranks", a.rankConfig)

	r.Get("/clans", a.listClans)
	r.Get("/clans/{clanID}", a.getClan)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(a.verifier))

		r.Get("/me", a.me)
		r.Patch("/me", a.updateMe)
		r.Get("/me/applications", a.myApplications)
		r.Get("/me/invitations", a.myInvitations)

		r.Post("/clans", a.createClan)
		r.Patch("/clans/{clanID}", a.updateClan)
		r.Delete("/clans/{clanID}", a.deleteClan)
		r.Post("/clans/{clanID}/leave", a.leaveClan)
		r.Post("/clans/{clanID}/transfer", a.transferClan)
		r.Delete("/clans/{clanID}/members/{playerID}", a.kickMember)

		r.Post("/clans/{clanID}/applications", a.apply)
		r.Get("/clans/{clanID}/applications", a.clanApplications)
		r.Post("/applications/{applicationID}/approve", a.approveApplication)
		r.Post("/applications/{applicationID}/reject", a.rejectApplication)
		r.Post("/applications/{applicationID}/withdraw", a.withdrawApplication)

		r.Post("/clans/{clanID}/invitations", a.invite)
		r.Get("/clans/{clanID}/invitations", a.clanInvitations)
		r.Post("/invitations/{invitationID}/accept", a.acceptInvitation)
		r.Post("/invitations/{invitationID}/reject", a.rejectInvitation)
		r.Post("/invitations/{invitationID}/cancel", a.cancelInvitation)
	})

	return r
}

// fail writes the error response. Server errors are reported and their
// details hidden from the client.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.reporter.Report(r.Context(), err)
		writeErrorMessage(w, r, status, http.StatusText(status))
		return
	}
	zerolog.Ctx(r.Context()).Debug().Err(err).Int("status", status).Msg("request rejected")
	writeErrorMessage(w, r, status, err.Error())
}

func actor(r *http.Request) string {
	id, _ := middleware.PlayerID(r.Context())
	return id
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
