package handlers

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/service"
)

func TestEndorse(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	u := member()
	v := viewOf(u, models.StatusOpenForReview)
	v.EndorsementCount = 1
	v.UserHasEndorsed = true
	svc.EXPECT().Endorse(gomock.Any(), u, v.ID).Return(v, nil)

	rr := do(t, routes(h, u), http.MethodPost, "/api/rfds/"+v.ID.String()+"/endorsement", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeBody[RFDResponse](t, rr)
	require.Equal(t, 1, resp.EndorsementCount)
	require.True(t, resp.UserHasEndorsed)
}

func TestEndorse_Twice(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	u := member()
	id := uuid.New()
	svc.EXPECT().Endorse(gomock.Any(), u, id).Return(nil, service.ErrAlreadyEndorsed)

	rr := do(t, routes(h, u), http.MethodPost, "/api/rfds/"+id.String()+"/endorsement", nil)
	requireAPIError(t, rr, http.StatusConflict, "already_endorsed")
}

func TestUnendorse_NotEndorsed(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	u := member()
	id := uuid.New()
	svc.EXPECT().Unendorse(gomock.Any(), u, id).Return(nil, service.ErrNotEndorsed)

	rr := do(t, routes(h, u), http.MethodDelete, "/api/rfds/"+id.String()+"/endorsement", nil)
	requireAPIError(t, rr, http.StatusConflict, "not_endorsed")
}

func TestUnendorse(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	u := member()
	v := viewOf(u, models.StatusOpenForReview)
	svc.EXPECT().Unendorse(gomock.Any(), u, v.ID).Return(v, nil)

	rr := do(t, routes(h, u), http.MethodDelete, "/api/rfds/"+v.ID.String()+"/endorsement", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeBody[RFDResponse](t, rr)
	require.False(t, resp.UserHasEndorsed)
	require.Zero(t, resp.EndorsementCount)
}

func TestEndorsers(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	u := member()
	id := uuid.New()
	svc.EXPECT().Endorsers(gomock.Any(), u, id).Return([]models.Endorser{
		{UserID: u.ID, Name: u.Name, Avatar: "https://cdn/a.png", CreatedAt: testNow},
	}, 1, nil)

	rr := do(t, routes(h, u), http.MethodGet, "/api/rfds/"+id.String()+"/endorsers", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeBody[endorsersResponse](t, rr)
	require.Equal(t, 1, resp.Count)
	require.Len(t, resp.Endorsers, 1)
	require.Equal(t, testNow.Unix(), resp.Endorsers[0].EndorsedAt)
}

func TestEndorsers_HiddenDraft(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	u := member()
	id := uuid.New()
	svc.EXPECT().Endorsers(gomock.Any(), u, id).Return(nil, 0, service.ErrNotFound)

	rr := do(t, routes(h, u), http.MethodGet, "/api/rfds/"+id.String()+"/endorsers", nil)
	requireAPIError(t, rr, http.StatusNotFound, "not_found")
}
