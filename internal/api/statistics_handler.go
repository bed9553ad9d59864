package api

import (
	"net/http"

	"github.com/examhall/backend/internal/domain/statistics"
	"github.com/examhall/backend/internal/service"
)

type StatisticsResponse struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind" example:"subject"`
	Label      string  `json:"label" example:"Algebra"`
	TestsCount int     `json:"tests_count" example:"12"`
	MinScore   float64 `json:"min_score" example:"20"`
	MaxScore   float64 `json:"max_score" example:"100"`
	AvgScore   float64 `json:"avg_score" example:"64.5"`
}

// getStatistics summarizes test scores per scope.
// @Summary      Score statistics
// @Description  Admins see every scope; authors see their own subjects, parts and the users tested on them.
// @Tags         Statistics
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string  true  "subject, part or user"
// @Success      200   {array}   StatisticsResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /statistics/{kind} [get]
func (h *Handler) getStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, err := statistics.ParseKind(r.PathValue("kind"))
	if err != nil {
		h.handleError(w, &service.ValidationError{Index: -1, Field: "kind", Reason: err.Error()}, "statistics")
		return
	}

	stats, err := h.svc.Stats.Summarize(ctx, UserFrom(ctx), kind)
	if h.handleError(w, err, "statistics") {
		return
	}

	resp := make([]StatisticsResponse, 0, len(stats))
	for _, s := range stats {
		resp = append(resp, StatisticsResponse{
			ID:         s.ID,
			Kind:       string(s.Kind),
			Label:      s.Label,
			TestsCount: s.TestsCount,
			MinScore:   s.MinScore,
			MaxScore:   s.MaxScore,
			AvgScore:   s.AvgScore,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}
