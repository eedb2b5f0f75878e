package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/rfd-tracker/internal/errors"
	"github.com/pribylovaa/rfd-tracker/internal/http/middleware"
)

func (h *Handlers) Endorse(w http.ResponseWriter, r *http.Request) {
	id, err := rfdID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := h.svc.Endorse(r.Context(), middleware.UserFrom(r.Context()), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rfdFromModel(view))
}

func (h *Handlers) Unendorse(w http.ResponseWriter, r *http.Request) {
	id, err := rfdID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := h.svc.Unendorse(r.Context(), middleware.UserFrom(r.Context()), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rfdFromModel(view))
}

func (h *Handlers) Endorsers(w http.ResponseWriter, r *http.Request) {
	id, err := rfdID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	list, count, err := h.svc.Endorsers(r.Context(), middleware.UserFrom(r.Context()), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, endorsersResponse{Count: count, Endorsers: endorsersFromModel(list)})
}
