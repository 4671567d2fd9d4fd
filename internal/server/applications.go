package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *API) apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := a.validator.decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	app, err := a.applications.Apply(r.Context(), actor(r), chi.URLParam(r, "clanID"), req.Message)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	created(w, r, applicationResponse(*app))
}

func (a *API) clanApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := a.applications.ListForClan(r.Context(), actor(r), chi.URLParam(r, "clanID"), r.URL.Query().Get("status"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toApplicationResponses(apps))
}

func (a *API) myApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := a.applications.ListMine(r.Context(), actor(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toApplicationResponses(apps))
}

func (a *API) approveApplication(w http.ResponseWriter, r *http.Request) {
	if err := a.applications.Approve(r.Context(), actor(r), chi.URLParam(r, "applicationID")); err != nil {
		a.fail(w, r, err)
		return
	}
	noContent(w)
}

func (a *API) rejectApplication(w http.ResponseWriter, r *http.Request) {
	if err := a.applications.Reject(r.Context(), actor(r), chi.URLParam(r, "applicationID")); err != nil {
		a.fail(w, r, err)
		return
	}
	noContent(w)
}

func (a *API) withdrawApplication(w http.ResponseWriter, r *http.Request) {
	if err := a.applications.Withdraw(r.Context(), actor(r), chi.URLParam(r, "applicationID")); err != nil {
		a.fail(w, r, err)
		return
	}
	noContent(w)
}

func (a *API) invite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := a.validator.decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	inv, err := a.invitations.Invite(r.Context(), actor(r), chi.URLParam(r, "clanID"), req.PlayerID, req.Message)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	created(w, r, toInvitationResponse(inv))
}

func (a *API) clanInvitations(w http.ResponseWriter, r *http.Request) {
	invs, err := a.invitations.ListForClan(r.Context(), actor(r), chi.URLParam(r, "clanID"), r.URL.Query().Get("status"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toInvitationResponses(invs))
}

func (a *API) myInvitations(w http.ResponseWriter, r *http.Request) {
	invs, err := a.invitations.ListMine(r.Context(), actor(r), r.URL.Query().Get("status"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ok(w, r, toInvitationResponses(invs))
}

func (a *API) acceptInvitation(w http.ResponseWriter, r *http.Request) {
	if err := a.invitations.Accept(r.Context(), actor(r), chi.URLParam(r, "invitationID")); err != nil {
		a.fail(w, r, err)
		return
	}
	noContent(w)
}

func (a *API) rejectInvitation(w http.ResponseWriter, r *http.Request) {
	if err := a.invitations.Reject(r.Context(), actor(r), chi.URLParam(r, "invitationID")); err != nil {
		a.fail(w, r, err)
		return
	}
	noContent(w)
}

func (a *API) cancelInvitation(w http.ResponseWriter, r *http.Request) {
	if err := a.invitations.Cancel(r.Context(), actor(r), chi.URLParam(r, "invitationID")); err != nil {
		a.fail(w, r, err)
		return
	}
	noContent(w)
}
