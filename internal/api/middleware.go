package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/examhall/backend/internal/auth"
	"github.com/examhall/backend/internal/domain/user"
	"github.com/examhall/backend/internal/platform/logger"
	"github.com/examhall/backend/internal/store"
)

type Middleware func(http.Handler) http.Handler

type ctxKey int

const userKey ctxKey = iota

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFrom returns the authenticated user, or nil.
func UserFrom(ctx context.Context) *user.User {
	u, _ := ctx.Value(userKey).(*user.User)
	return u
}

type userLookup interface {
	GetUser(ctx context.Context, id string) (*user.User, error)
}

// Authenticate resolves the bearer token to a stored user. Requests
// without a valid token are rejected with 401.
func Authenticate(tokens *auth.Tokens, users userLookup, log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			userID, err := tokens.Parse(raw)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			u, err := users.GetUser(r.Context(), userID)
			if errors.Is(err, store.ErrNotFound) {
				respondError(w, http.StatusUnauthorized, "unknown user")
				return
			}
			if err != nil {
				log.Error("load user", "user_id", userID, "error", err)
				respondError(w, http.StatusInternalServerError, "internal error")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging logs one line per request.
func Logging(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}

// CORS allows browser clients served from origin.
func CORS(origin string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
