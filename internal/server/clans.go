package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *API) listClans(w http.ResponseWriter, r *http.Request) {
	clans, err := a.clans.List(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		a.fail(w, r, err)
		return
	}

	result := make([]clanResponse, len(clans))
	for i := range clans {
		result[i] = toClanResponse(&clans[i])
	}
	ok(w, r, result)
}

func (a *API) getClan(w http.ResponseWriter, r *http.Request) {
	details, err := a.clans.Get(r.Context(), chi.URLParam(r, "clanID"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toClanDetailsResponse(details))
}

func (a *API) createClan(w http.ResponseWriter, r *http.Request) {
	var req clanRequest
	if err := a.validator.decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	clan, err := a.clans.Create(r.Context(), actor(r), req.input())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	created(w, r, toClanResponse(clan))
}

func (a *API) updateClan(w http.ResponseWriter, r *http.Request) {
	var req clanRequest
	if err := a.validator.decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	clan, err := a.clans.Update(r.Context(), actor(r), chi.URLParam(r, "clanID"), req.input())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toClanResponse(clan))
}

func (a *API) deleteClan(w http.ResponseWriter, r *http.Request) {
	if err := a.clans.Delete(r.Context(), actor(r), chi.URLParam(r, "clanID")); err != nil {
		a.fail(w, r, err)
		return
	}
	noContent(w)
}

func (a *API) leaveClan(w http.ResponseWriter, r *http.Request) {
	if err := a.clans.Leave(r.Context(), actor(r), chi.URLParam(r, "clanID")); err != nil {
		a.fail(w, r, err)
		return
	}
	noContent(w)
}

func (a *API) transferClan(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := a.validator.decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	if err := a.clans.TransferOwnership(r.Context(), actor(r), chi.URLParam(r, "clanID"), req.PlayerID); err != nil {
		a.fail(w, r, err)
		return
	}
	noContent(w)
}

func (a *API) kickMember(w http.ResponseWriter, r *http.Request) {
	err := a.clans.Kick(r.Context(), actor(r), chi.URLParam(r, "clanID"), chi.URLParam(r, "playerID"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	noContent(w)
}
