package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/examhall/backend/internal/domain/quiz"
	"github.com/examhall/backend/internal/platform/logger"
	"github.com/examhall/backend/internal/service"
	"github.com/examhall/backend/internal/store"
)

const maxBodyBytes = 1 << 20

type testReader interface {
	GetTest(ctx context.Context, id string) (*quiz.Test, error)
}

// Services groups the engine components the handlers drive.
type Services struct {
	Builder   *service.Builder
	Intake    *service.Intake
	Stats     *service.Aggregator
	Questions *service.QuestionBank
	Access    *service.Access
}

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	svc    Services
	tests  testReader
	logger *logger.Logger
}

func NewHandler(svc Services, tests testReader, log *logger.Logger) *Handler {
	return &Handler{svc: svc, tests: tests, logger: log}
}

// ErrorResponse is the body of every non-2xx response. Index and Field
// are set for validation errors.
type ErrorResponse struct {
	Error string `json:"error" example:"test not found"`
	Index *int   `json:"index,omitempty" example:"1"`
	Field string `json:"field,omitempty" example:"answer_instance_id"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// decodeJSON reads the request body into v. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

type validator interface {
	Validate() error
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleError maps service and store errors to HTTP responses. Returns
// true if an error was handled (caller should return).
func (h *Handler) handleError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		resp := ErrorResponse{Error: ve.Error(), Field: ve.Field}
		if ve.Index >= 0 {
			resp.Index = &ve.Index
		}
		respondJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, service.ErrGenerationConflict):
		respondError(w, http.StatusConflict, "test could not be generated, retry the request")
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
	default:
		h.logger.Error("request failed", "entity", entity, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}

// health reports liveness.
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
