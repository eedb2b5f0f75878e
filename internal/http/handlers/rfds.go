package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	apierrors "github.com/pribylovaa/rfd-tracker/internal/errors"
	"github.com/pribylovaa/rfd-tracker/internal/http/middleware"
	"github.com/pribylovaa/rfd-tracker/internal/service"
)

// rfdID разбирает {id} из пути.
func rfdID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, invalidArgument(err)
	}
	return id, nil
}

func (h *Handlers) ListRFDs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := service.ListFilter{
		Status: q.Get("status"),
		Tag:    q.Get("tag"),
	}

	if v := q.Get("author"); v != "" {
		author, err := uuid.Parse(v)
		if err != nil {
			apierrors.WriteError(w, r, invalidArgument(err))
			return
		}
		f.AuthorID = &author
	}

	views, err := h.svc.List(r.Context(), middleware.UserFrom(r.Context()), f)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp := rfdListResponse{Items: make([]RFDResponse, 0, len(views))}
	for i := range views {
		resp.Items = append(resp.Items, rfdFromModel(&views[i]))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) CreateRFD(w http.ResponseWriter, r *http.Request) {
	var req createRFDRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := h.svc.CreateRFD(r.Context(), middleware.UserFrom(r.Context()), service.CreateRFDInput{
		Title:      req.Title,
		Summary:    req.Summary,
		TemplateID: req.TemplateID,
		Tags:       req.Tags,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, rfdFromModel(view))
}

func (h *Handlers) GetRFD(w http.ResponseWriter, r *http.Request) {
	id, err := rfdID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := h.svc.Get(r.Context(), middleware.UserFrom(r.Context()), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rfdFromModel(view))
}

func (h *Handlers) GetRFDByNumber(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil {
		apierrors.WriteError(w, r, invalidArgument(err))
		return
	}

	view, err := h.svc.GetByNumber(r.Context(), middleware.UserFrom(r.Context()), number)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rfdFromModel(view))
}

func (h *Handlers) UpdateRFD(w http.ResponseWriter, r *http.Request) {
	id, err := rfdID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var req updateRFDRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := h.svc.UpdateRFD(r.Context(), middleware.UserFrom(r.Context()), id, service.UpdateRFDInput{
		Title:   req.Title,
		Summary: req.Summary,
		Status:  req.Status,
		Tags:    req.Tags,
		Comment: req.Comment,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rfdFromModel(view))
}

// UpdateRFDStatus — упрощённая смена статуса только для админов.
func (h *Handlers) UpdateRFDStatus(w http.ResponseWriter, r *http.Request) {
	id, err := rfdID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var req statusRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if req.Status == "" {
		apierrors.WriteError(w, r, invalidArgument(errors.New("status is required")))
		return
	}

	view, err := h.svc.UpdateStatusAdminOnly(r.Context(), middleware.UserFrom(r.Context()), id, req.Status, req.Comment)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rfdFromModel(view))
}

func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	id, err := rfdID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	entries, err := h.svc.History(r.Context(), middleware.UserFrom(r.Context()), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, historyFromModel(entries))
}
