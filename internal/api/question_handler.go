package api

import (
	"errors"
	"net/http"

	"github.com/examhall/backend/internal/domain/question"
	"github.com/examhall/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type AnswerRequest struct {
	Title   string `json:"title" example:"Rome"`
	Correct bool   `json:"correct" example:"true"`
}

// QuestionRequest creates or updates a question. Send either answers or
// answers_input; in answers_input a leading "!" marks the correct option.
type QuestionRequest struct {
	Title        string          `json:"title" example:"Capital of Italy?"`
	Difficulty   int             `json:"difficulty" example:"2"`
	PartID       *string         `json:"part_id,omitempty"`
	Answers      []AnswerRequest `json:"answers,omitempty"`
	AnswersInput []string        `json:"answers_input,omitempty" example:"Paris,!Rome"`
}

func (r *QuestionRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

func (r *QuestionRequest) input() service.QuestionInput {
	in := service.QuestionInput{
		Title:        r.Title,
		Difficulty:   r.Difficulty,
		PartID:       r.PartID,
		AnswersInput: r.AnswersInput,
	}
	if r.Answers != nil {
		in.Answers = make([]question.AnswerInput, 0, len(r.Answers))
		for _, a := range r.Answers {
			in.Answers = append(in.Answers, question.AnswerInput{Title: a.Title, Correct: a.Correct})
		}
	}
	return in
}

type AnswerResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title" example:"Rome"`
	Correct  bool   `json:"correct" example:"true"`
	Position int    `json:"position" example:"2"`
}

type QuestionResponse struct {
	ID         string           `json:"id"`
	PartID     *string          `json:"part_id"`
	Title      string           `json:"title" example:"Capital of Italy?"`
	Difficulty int              `json:"difficulty" example:"2"`
	Answers    []AnswerResponse `json:"answers"`
}

func toQuestionResponse(q *question.Question) QuestionResponse {
	resp := QuestionResponse{
		ID:         q.ID,
		PartID:     q.PartID,
		Title:      q.Title,
		Difficulty: q.Difficulty,
		Answers:    make([]AnswerResponse, 0, len(q.Answers)),
	}
	for _, a := range q.Answers {
		resp.Answers = append(resp.Answers, AnswerResponse{ID: a.ID, Title: a.Title, Correct: a.Correct, Position: a.Position})
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createQuestion adds a question to the bank.
// @Summary      Create a question
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      QuestionRequest  true  "Question to create"
// @Success      201   {object}  QuestionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse  "part not found"
// @Router       /questions [post]
func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req QuestionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	q, err := h.svc.Questions.Create(ctx, UserFrom(ctx), req.input())
	if h.handleError(w, err, "part") {
		return
	}
	respondJSON(w, http.StatusCreated, toQuestionResponse(q))
}

// getQuestion returns a question with its answers.
// @Summary      Get a question
// @Tags         Questions
// @Produce      json
// @Security     BearerAuth
// @Param        questionID  path      string  true  "Question ID"
// @Success      200         {object}  QuestionResponse
// @Failure      403         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /questions/{questionID} [get]
func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q, err := h.svc.Questions.Get(ctx, UserFrom(ctx), r.PathValue("questionID"))
	if h.handleError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, toQuestionResponse(q))
}

// updateQuestion rewrites a question.
// @Summary      Update a question
// @Description  Replaces every answer when answers or answers_input is given.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        questionID  path      string           true  "Question ID"
// @Param        body        body      QuestionRequest  true  "New question content"
// @Success      200         {object}  QuestionResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      403         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /questions/{questionID} [put]
func (h *Handler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req QuestionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	q, err := h.svc.Questions.Update(ctx, UserFrom(ctx), r.PathValue("questionID"), req.input())
	if h.handleError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, toQuestionResponse(q))
}

// DELETE /questions/{questionID}
// @Summary      Delete a question
// @Tags         Questions
// @Security     BearerAuth
// @Param        questionID  path  string  true  "Question ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /questions/{questionID} [delete]
func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.handleError(w, h.svc.Questions.Delete(ctx, UserFrom(ctx), r.PathValue("questionID")), "question") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
