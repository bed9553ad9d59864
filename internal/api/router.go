package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RegisterRoutes wires every authenticated endpoint onto mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler, authn Middleware) {
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, authn(fn))
	}

	// Tests
	handle("POST /tests/part/{partID}", h.generateIntermediate)
	handle("POST /tests/subject/{subjectID}", h.generateFinal)
	handle("GET /tests/{testID}", h.getTest)
	handle("PATCH /tests/{testID}/answer", h.submitAnswers)

	// Statistics
	handle("GET /statistics/{kind}", h.getStatistics)

	// Questions
	handle("POST /questions", h.createQuestion)
	handle("GET /questions/{questionID}", h.getQuestion)
	handle("PUT /questions/{questionID}", h.updateQuestion)
	handle("DELETE /questions/{questionID}", h.deleteQuestion)
}

// NewRouter returns the complete HTTP handler.
// Middleware chain: Logging → CORS → mux.
func NewRouter(h *Handler, authn Middleware, corsOrigin string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	RegisterRoutes(mux, h, authn)
	return Logging(h.logger)(CORS(corsOrigin)(mux))
}
