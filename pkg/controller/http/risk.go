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

type riskResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Owner         string    `json:"owner"`
	OwnerName     string    `json:"ownerName,omitempty"`
	Status        string    `json:"status"`
	Treatment     string    `json:"treatment,omitempty"`
	Probability   int       `json:"probability"`
	Impact        int       `json:"impact"`
	Progress      int       `json:"progress"`
	InherentRisk  int       `json:"inherentRisk"`
	RiskScore     int       `json:"riskScore"`
	ResidualRisk  int       `json:"residualRisk"`
	RiskLevel     string    `json:"riskLevel"`
	ResidualLevel string    `json:"residualLevel"`
	IdentifiedAt  time.Time `json:"identifiedAt"`
	NextReviewAt  time.Time `json:"nextReviewAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (s *Server) toRiskResponse(r *model.Risk) *riskResponse {
	return &riskResponse{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Category:      r.Category.String(),
		Owner:         r.Owner,
		OwnerName:     s.uc.Risk.ResolveOwner(r.Owner),
		Status:        r.Status.String(),
		Treatment:     r.Treatment.String(),
		Probability:   r.Probability,
		Impact:        r.Impact,
		Progress:      r.Progress,
		InherentRisk:  r.InherentRisk,
		RiskScore:     r.Score,
		ResidualRisk:  r.ResidualRisk,
		RiskLevel:     r.Level().String(),
		ResidualLevel: r.ResidualLevel().String(),
		IdentifiedAt:  r.IdentifiedAt,
		NextReviewAt:  r.NextReviewAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type createRiskRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Owner        string     `json:"owner"`
	Probability  int        `json:"probability"`
	Impact       int        `json:"impact"`
	Progress     int        `json:"progress"`
	Treatment    string     `json:"treatment"`
	IdentifiedAt *time.Time `json:"identifiedAt"`
}

func (s *Server) createRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
		return
	}

	input := usecase.CreateRiskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    types.CategoryID(req.Category),
		Owner:       req.Owner,
		Probability: req.Probability,
		Impact:      req.Impact,
		Progress:    req.Progress,
		Treatment:   types.Treatment(req.Treatment),
	}
	if req.IdentifiedAt != nil {
		input.IdentifiedAt = *req.IdentifiedAt
	}

	created, err := s.uc.Risk.CreateRisk(ctx, actorFrom(ctx), input)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, s.toRiskResponse(created))
}

func (s *Server) listRisks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filters := model.RiskFilters{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		Status:    q.Get("status"),
		Priority:  q.Get("priority"),
		Owner:     q.Get("owner"),
		RiskLevel: q.Get("riskLevel"),
		Treatment: q.Get("treatment"),
	}

	risks, err := s.uc.Risk.QueryRisks(ctx, filters)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	result := make([]*riskResponse, 0, len(risks))
	for _, risk := range risks {
		result = append(result, s.toRiskResponse(risk))
	}

	respondJSON(ctx, w, http.StatusOK, result)
}

func (s *Server) riskIDFrom(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "riskID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(usecase.ErrInvalidInput, "invalid risk ID", goerr.V("value", raw))
	}
	return id, nil
}

func (s *Server) getRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := s.riskIDFrom(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	risk, err := s.uc.Risk.GetRisk(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, s.toRiskResponse(risk))
}

type updateRiskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Owner       *string `json:"owner"`
	Status      *string `json:"status"`
	Treatment   *string `json:"treatment"`
	Probability *int    `json:"probability"`
	Impact      *int    `json:"impact"`
	Progress    *int    `json:"progress"`
}

func (s *Server) updateRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := s.riskIDFrom(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req updateRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
		return
	}

	patch := usecase.UpdateRiskInput{
		Title:       req.Title,
		Description: req.Description,
		Owner:       req.Owner,
		Probability: req.Probability,
		Impact:      req.Impact,
		Progress:    req.Progress,
	}
	if req.Category != nil {
		category := types.CategoryID(*req.Category)
		patch.Category = &category
	}
	if req.Status != nil {
		status := types.RiskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Treatment != nil {
		treatment := types.Treatment(*req.Treatment)
		patch.Treatment = &treatment
	}

	updated, err := s.uc.Risk.UpdateRisk(ctx, actorFrom(ctx), id, patch)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, s.toRiskResponse(updated))
}

func (s *Server) deleteRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := s.riskIDFrom(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := s.uc.Risk.DeleteRisk(ctx, actorFrom(ctx), id); err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusNoContent, nil)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := s.uc.Risk.GetStats(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, statsResponseOf(stats))
}

type statsResponse struct {
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"byStatus"`
	ByCategory  map[string]int `json:"byCategory"`
	ByPriority  map[string]int `json:"byPriority"`
	ByRiskLevel map[string]int `json:"byRiskLevel"`
	AvgScore    float64        `json:"averageScore"`
	HighRisks   int            `json:"highRisks"`
	Overdue     int            `json:"overdue"`
}

func statsResponseOf(stats *model.RiskStats) *statsResponse {
	resp := &statsResponse{
		Total:       stats.Total,
		ByStatus:    make(map[string]int, len(stats.ByStatus)),
		ByCategory:  make(map[string]int, len(stats.ByCategory)),
		ByPriority:  make(map[string]int, len(stats.ByPriority)),
		ByRiskLevel: make(map[string]int, len(stats.ByRiskLevel)),
		AvgScore:    stats.AvgScore,
		HighRisks:   stats.HighRisks,
		Overdue:     stats.Overdue,
	}
	for k, v := range stats.ByStatus {
		resp.ByStatus[k.String()] = v
	}
	for k, v := range stats.ByCategory {
		resp.ByCategory[k.String()] = v
	}
	for k, v := range stats.ByPriority {
		resp.ByPriority[k.String()] = v
	}
	for k, v := range stats.ByRiskLevel {
		resp.ByRiskLevel[k.String()] = v
	}
	return resp
}
