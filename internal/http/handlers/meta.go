package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/rfd-tracker/internal/errors"
	"github.com/pribylovaa/rfd-tracker/internal/http/middleware"
)

func (h *Handlers) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.Tags(r.Context(), middleware.UserFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if tags == nil {
		tags = []string{}
	}

	writeJSON(w, http.StatusOK, tagsResponse{Tags: tags})
}

func (h *Handlers) Templates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.svc.Templates(r.Context(), middleware.UserFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp := templatesResponse{Templates: make([]templateResponse, 0, len(templates))}
	for _, t := range templates {
		resp.Templates = append(resp.Templates, templateResponse{
			ID:         t.ID,
			Name:       t.Name,
			CreatedAt:  t.CreatedAt.Unix(),
			ModifiedAt: t.ModifiedAt.Unix(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
