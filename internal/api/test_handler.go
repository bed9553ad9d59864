package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/examhall/backend/internal/domain/quiz"
	"github.com/examhall/backend/internal/domain/scope"
	"github.com/examhall/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type AnswerEntryRequest struct {
	QuestionInstanceID string `json:"question_instance_id" example:"5b0c..."`
	AnswerInstanceID   string `json:"answer_instance_id" example:"9f1e..."`
}

type TestAnswerResponse struct {
	ID      string `json:"id"`
	Ordinal int    `json:"ordinal" example:"1"`
	Title   string `json:"title" example:"Rome"`
}

type TestQuestionResponse struct {
	ID      string               `json:"id"`
	Ordinal int                  `json:"ordinal" example:"1"`
	Title   string               `json:"title" example:"Capital of Italy?"`
	Answers []TestAnswerResponse `json:"answers"`
}

// TestResponse is a freshly generated test. Correctness is never exposed.
type TestResponse struct {
	ID             string                 `json:"id"`
	Type           string                 `json:"type" example:"Intermediate"`
	UserID         string                 `json:"user_id"`
	Topic          string                 `json:"topic" example:"Linear equations"`
	QuestionsCount int                    `json:"questions_count" example:"5"`
	CreatedAt      time.Time              `json:"created_at"`
	Questions      []TestQuestionResponse `json:"questions"`
}

type ResultQuestionResponse struct {
	ID            string  `json:"id"`
	Ordinal       int     `json:"ordinal" example:"1"`
	Title         string  `json:"title" example:"Capital of Italy?"`
	Difficulty    int     `json:"difficulty" example:"3"`
	ChosenAnswer  *string `json:"chosen_answer"`
	CorrectAnswer *string `json:"correct_answer"`
	Correct       bool    `json:"correct"`
}

// ResultResponse is a graded test.
type ResultResponse struct {
	ID             string                   `json:"id"`
	Type           string                   `json:"type" example:"Final"`
	UserID         string                   `json:"user_id"`
	Topic          string                   `json:"topic" example:"Algebra"`
	QuestionsCount int                      `json:"questions_count" example:"5"`
	Score          float64                  `json:"score" example:"60"`
	ScoredAt       *time.Time               `json:"scored_at"`
	Questions      []ResultQuestionResponse `json:"questions"`
}

func toTestResponse(t *quiz.Test) TestResponse {
	resp := TestResponse{
		ID:             t.ID,
		Type:           t.Type.Label(),
		UserID:         t.UserID,
		Topic:          t.Topic,
		QuestionsCount: len(t.Questions),
		CreatedAt:      t.CreatedAt,
		Questions:      make([]TestQuestionResponse, 0, len(t.Questions)),
	}
	for _, qi := range t.Questions {
		q := TestQuestionResponse{
			ID:      qi.ID,
			Ordinal: qi.Ordinal,
			Title:   qi.Title,
			Answers: make([]TestAnswerResponse, 0, len(qi.Answers)),
		}
		for _, ai := range qi.Answers {
			q.Answers = append(q.Answers, TestAnswerResponse{ID: ai.ID, Ordinal: ai.Ordinal, Title: ai.Title})
		}
		resp.Questions = append(resp.Questions, q)
	}
	return resp
}

func toResultResponse(t *quiz.Test) ResultResponse {
	resp := ResultResponse{
		ID:             t.ID,
		Type:           t.Type.Label(),
		UserID:         t.UserID,
		Topic:          t.Topic,
		QuestionsCount: len(t.Questions),
		Score:          t.Score,
		ScoredAt:       t.ScoredAt,
		Questions:      make([]ResultQuestionResponse, 0, len(t.Questions)),
	}
	for i := range t.Questions {
		qi := &t.Questions[i]
		q := ResultQuestionResponse{
			ID:         qi.ID,
			Ordinal:    qi.Ordinal,
			Title:      qi.Title,
			Difficulty: qi.Difficulty,
			Correct:    qi.Correct,
		}
		if a := qi.ChosenAnswer(); a != nil {
			q.ChosenAnswer = &a.Title
		}
		if a := qi.CorrectAnswer(); a != nil {
			q.CorrectAnswer = &a.Title
		}
		resp.Questions = append(resp.Questions, q)
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// generateIntermediate creates a test over one part.
// @Summary      Generate an intermediate test
// @Description  Samples the part's questions and shuffles their answers. Requires authorship or a subscription.
// @Tags         Tests
// @Produce      json
// @Security     BearerAuth
// @Param        partID  path      string  true  "Part ID"
// @Success      201     {object}  TestResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse  "part not found"
// @Failure      409     {object}  ErrorResponse
// @Router       /tests/part/{partID} [post]
func (h *Handler) generateIntermediate(w http.ResponseWriter, r *http.Request) {
	partID := r.PathValue("partID")
	h.generate(w, r, quiz.TypeIntermediate, partID, scope.Part{ID: partID}, "part")
}

// generateFinal creates a test over every part of a subject.
// @Summary      Generate a final test
// @Description  Samples every part of the subject into one test. Requires authorship or a subscription.
// @Tags         Tests
// @Produce      json
// @Security     BearerAuth
// @Param        subjectID  path      string  true  "Subject ID"
// @Success      201        {object}  TestResponse
// @Failure      401        {object}  ErrorResponse
// @Failure      403        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse  "subject not found"
// @Failure      409        {object}  ErrorResponse
// @Router       /tests/subject/{subjectID} [post]
func (h *Handler) generateFinal(w http.ResponseWriter, r *http.Request) {
	subjectID := r.PathValue("subjectID")
	h.generate(w, r, quiz.TypeFinal, subjectID, scope.Subject{ID: subjectID}, "subject")
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, typ quiz.Type, targetID string, sc scope.Scope, entity string) {
	ctx := r.Context()
	u := UserFrom(ctx)

	ok, err := h.svc.Access.CanTakeTest(ctx, u, sc)
	if h.handleError(w, err, entity) {
		return
	}
	if !ok {
		respondError(w, http.StatusForbidden, "no access to this "+entity)
		return
	}

	test, err := h.svc.Builder.Generate(ctx, u.ID, typ, targetID)
	if h.handleError(w, err, entity) {
		return
	}
	respondJSON(w, http.StatusCreated, toTestResponse(test))
}

// getTest returns a test, graded if it has been answered.
// @Summary      Get a test
// @Description  Returns the generation view, or the result view once the test is scored.
// @Tags         Tests
// @Produce      json
// @Security     BearerAuth
// @Param        testID  path      string  true  "Test ID"
// @Success      200     {object}  ResultResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /tests/{testID} [get]
func (h *Handler) getTest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	test, err := h.tests.GetTest(ctx, r.PathValue("testID"))
	if h.handleError(w, err, "test") {
		return
	}
	if !h.svc.Access.CanViewTest(UserFrom(ctx), test) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}
	if test.Scored() {
		respondJSON(w, http.StatusOK, toResultResponse(test))
		return
	}
	respondJSON(w, http.StatusOK, toTestResponse(test))
}

// submitAnswers records answers and scores the test.
// @Summary      Answer a test
// @Description  Applies all answers or none, then grades the test.
// @Tags         Tests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        testID  path      string                true  "Test ID"
// @Param        body    body      []AnswerEntryRequest  true  "Chosen answers"
// @Success      200     {object}  ResultResponse
// @Failure      400     {object}  ErrorResponse  "offending entry index and field"
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /tests/{testID}/answer [patch]
func (h *Handler) submitAnswers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req []AnswerEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	entries := make([]service.AnswerEntry, 0, len(req))
	for _, e := range req {
		entries = append(entries, service.AnswerEntry{
			QuestionInstanceID: e.QuestionInstanceID,
			AnswerInstanceID:   e.AnswerInstanceID,
		})
	}

	test, err := h.svc.Intake.Submit(ctx, r.PathValue("testID"), UserFrom(ctx).ID, entries)
	if errors.Is(err, service.ErrForbidden) {
		respondError(w, http.StatusForbidden, "only the test owner can answer it")
		return
	}
	if h.handleError(w, err, "test") {
		return
	}
	respondJSON(w, http.StatusOK, toResultResponse(test))
}
