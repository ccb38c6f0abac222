package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskreg/pkg/domain/model"
	"github.com/grc-lab/riskreg/pkg/domain/types"
	"github.com/grc-lab/riskreg/pkg/usecase"
)

// parseActionStatus passes the raw value through; validation happens in the
// use case layer so API errors surface consistently
func parseActionStatus(s string) types.ActionStatus {
	return types.ActionStatus(s)
}

type actionResponse struct {
	ID          string    `json:"id"`
	RiskID      int64     `json:"riskId"`
	Description string    `json:"description"`
	Responsible string    `json:"responsible,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"` // effective status: may be overdue
	Progress    int       `json:"progress"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func actionResponseOf(a *model.RiskAction, now time.Time) *actionResponse {
	return &actionResponse{
		ID:          a.ID.String(),
		RiskID:      a.RiskID,
		Description: a.Description,
		Responsible: a.Responsible,
		DueDate:     a.DueDate,
		Status:      a.EffectiveStatus(now).String(),
		Progress:    a.Progress,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (s *Server) listActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	riskID, err := s.riskIDFrom(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	actions, err := s.uc.Risk.ListActions(ctx, riskID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	now := time.Now().UTC()
	result := make([]*actionResponse, 0, len(actions))
	for _, action := range actions {
		result = append(result, actionResponseOf(action, now))
	}

	respondJSON(ctx, w, http.StatusOK, result)
}

type addActionRequest struct {
	Description string     `json:"description"`
	Responsible string     `json:"responsible"`
	DueDate     *time.Time `json:"dueDate"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	Notes       string     `json:"notes"`
}

func (s *Server) addAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	riskID, err := s.riskIDFrom(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req addActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
		return
	}

	input := usecase.AddActionInput{
		Description: req.Description,
		Responsible: req.Responsible,
		Status:      parseActionStatus(req.Status),
		Progress:    req.Progress,
		Notes:       req.Notes,
	}
	if req.DueDate != nil {
		input.DueDate = *req.DueDate
	}

	created, err := s.uc.Risk.AddAction(ctx, actorFrom(ctx), riskID, input)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, actionResponseOf(created, time.Now().UTC()))
}

type updateActionRequest struct {
	Description *string    `json:"description"`
	Responsible *string    `json:"responsible"`
	DueDate     *time.Time `json:"dueDate"`
	Status      *string    `json:"status"`
	Progress    *int       `json:"progress"`
	Notes       *string    `json:"notes"`
}

func (s *Server) updateAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	riskID, err := s.riskIDFrom(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	actionID := model.ActionID(chi.URLParam(r, "actionID"))

	var req updateActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
		return
	}

	patch := usecase.UpdateActionInput{
		Description: req.Description,
		Responsible: req.Responsible,
		DueDate:     req.DueDate,
		Progress:    req.Progress,
		Notes:       req.Notes,
	}
	if req.Status != nil {
		status := parseActionStatus(*req.Status)
		patch.Status = &status
	}

	updated, err := s.uc.Risk.UpdateAction(ctx, actorFrom(ctx), riskID, actionID, patch)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, actionResponseOf(updated, time.Now().UTC()))
}

func (s *Server) removeAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	riskID, err := s.riskIDFrom(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	actionID := model.ActionID(chi.URLParam(r, "actionID"))

	if err := s.uc.Risk.RemoveAction(ctx, actorFrom(ctx), riskID, actionID); err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusNoContent, nil)
}

func (s *Server) getAuditLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid limit", goerr.V("value", raw)))
			return
		}
		limit = parsed
	}

	entries, err := s.uc.Audit.GetAuditLog(ctx, limit)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	result := make([]*auditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, auditEntryResponseOf(entry))
	}

	respondJSON(ctx, w, http.StatusOK, result)
}

type auditEntryResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	UserName  string         `json:"userName"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entityId"`
	Changes   map[string]any `json:"changes,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func auditEntryResponseOf(e *model.AuditLogEntry) *auditEntryResponse {
	return &auditEntryResponse{
		ID:        e.ID.String(),
		UserID:    e.UserID,
		UserName:  e.UserName,
		Action:    e.Action.String(),
		Entity:    e.Entity.String(),
		EntityID:  e.EntityID,
		Changes:   e.Changes,
		Timestamp: e.Timestamp,
	}
}
