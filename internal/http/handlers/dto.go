package handlers

import (
	"github.com/pribylovaa/rfd-tracker/internal/models"
)

type authorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type endorserResponse struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	EndorsedAt int64  `json:"endorsed_at"` // Unix UTC
}

// RFDResponse — RFD на границе API.
type RFDResponse struct {
	ID               string             `json:"id"`
	Number           int64              `json:"number"`
	Title            string             `json:"title"`
	Summary          string             `json:"summary"`
	Status           string             `json:"status"`
	StatusLabel      string             `json:"status_label"`
	Author           authorResponse     `json:"author"`
	DocID            string             `json:"doc_id,omitempty"`
	DocURL           string             `json:"doc_url"`
	Tags             []string           `json:"tags"`
	CreatedAt        int64              `json:"created_at"` // Unix UTC
	UpdatedAt        int64              `json:"updated_at"` // Unix UTC
	LastSyncedAt     *int64             `json:"last_synced_at,omitempty"`
	EndorsementCount int                `json:"endorsement_count"`
	UserHasEndorsed  bool               `json:"user_has_endorsed"`
	Endorsers        []endorserResponse `json:"endorsers,omitempty"`
}

type rfdListResponse struct {
	Items []RFDResponse `json:"items"`
}

type historyEntryResponse struct {
	ID         string `json:"id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	ChangedBy  string `json:"changed_by"`
	Comment    string `json:"comment,omitempty"`
	CreatedAt  int64  `json:"created_at"` // Unix UTC
}

type historyResponse struct {
	Items []historyEntryResponse `json:"items"`
}

type endorsersResponse struct {
	Count     int                `json:"count"`
	Endorsers []endorserResponse `json:"endorsers"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

type templateResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CreatedAt  int64  `json:"created_at"`  // Unix UTC
	ModifiedAt int64  `json:"modified_at"` // Unix UTC
}

type templatesResponse struct {
	Templates []templateResponse `json:"templates"`
}

type userResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

type restrictedResponse struct {
	Email   string `json:"email,omitempty"`
	Message string `json:"message"`
}

type createRFDRequest struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	TemplateID string   `json:"template_id"`
	Tags       []string `json:"tags"`
}

type updateRFDRequest struct {
	Title   *string   `json:"title"`
	Summary *string   `json:"summary"`
	Status  *string   `json:"status"`
	Tags    *[]string `json:"tags"`
	Comment string    `json:"comment"`
}

type statusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

func rfdFromModel(v *models.RFDView) RFDResponse {
	out := RFDResponse{
		ID:          v.ID.String(),
		Number:      v.Number,
		Title:       v.Title,
		Summary:     v.Summary,
		Status:      string(v.Status),
		StatusLabel: v.Status.Label(),
		Author: authorResponse{
			ID:    v.AuthorID.String(),
			Name:  v.AuthorName,
			Email: v.AuthorEmail,
		},
		DocID:            v.Doc.ID,
		DocURL:           v.Doc.URL,
		Tags:             v.Tags,
		CreatedAt:        v.CreatedAt.Unix(),
		UpdatedAt:        v.UpdatedAt.Unix(),
		EndorsementCount: v.EndorsementCount,
		UserHasEndorsed:  v.UserHasEndorsed,
		Endorsers:        endorsersFromModel(v.Endorsers),
	}

	if out.Tags == nil {
		out.Tags = []string{}
	}

	if v.LastSyncedAt != nil {
		ts := v.LastSyncedAt.Unix()
		out.LastSyncedAt = &ts
	}

	return out
}

func endorsersFromModel(in []models.Endorser) []endorserResponse {
	out := make([]endorserResponse, 0, len(in))
	for _, e := range in {
		out = append(out, endorserResponse{
			UserID:     e.UserID.String(),
			Name:       e.Name,
			Avatar:     e.Avatar,
			EndorsedAt: e.CreatedAt.Unix(),
		})
	}
	return out
}

func historyFromModel(in []models.StatusHistoryEntry) historyResponse {
	out := historyResponse{Items: make([]historyEntryResponse, 0, len(in))}
	for _, h := range in {
		out.Items = append(out.Items, historyEntryResponse{
			ID:         h.ID,
			FromStatus: string(h.FromStatus),
			ToStatus:   string(h.ToStatus),
			ChangedBy:  h.ChangedBy.String(),
			Comment:    h.Comment,
			CreatedAt:  h.CreatedAt.Unix(),
		})
	}
	return out
}

func userFromModel(u *models.User) userResponse {
	return userResponse{
		ID:     u.ID.String(),
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
		Avatar: u.Avatar,
	}
}
