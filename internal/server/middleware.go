package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lealre/carsdb-backend/internal/api"
	"github.com/lealre/carsdb-backend/internal/auth"
	"github.com/lealre/carsdb-backend/internal/logx"
	"github.com/lealre/carsdb-backend/internal/metrics"
	"github.com/lealre/carsdb-backend/internal/mongodb"
	"github.com/lealre/carsdb-backend/internal/services/users"
	"github.com/rs/zerolog"
)

const RequestIdHeader = "X-Request-Id"

////////////////////////////////////////////////////////////////////////////
//  LOGGER MIDDLEWARE
////////////////////////////////////////////////////////////////////////////

// responseRecorder wraps http.ResponseWriter to capture status code
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rr *responseRecorder) WriteHeader(statusCode int) {
	rr.statusCode = statusCode
	rr.ResponseWriter.WriteHeader(statusCode)
}

/*
RequestIdMiddleware creates a unique request ID for each request and stores a
child logger carrying it in the context.
- Logs when it receives a request
- Logs when it returns the response with the elapsed time and status code
- Records the request in the HTTP metrics under its route pattern

Handlers can retrieve the logger using logx.FromContext(r.Context()).
*/
func RequestIdMiddleware(base zerolog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestId := r.Header.Get(RequestIdHeader)
			if requestId == "" {
				requestId = uuid.NewString()
			}
			startTime := time.Now()

			logger := base.With().
				Str("request_id", requestId).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Logger()
			logger.Debug().Msg("request received")

			w.Header().Set(RequestIdHeader, requestId)
			r = r.WithContext(logx.WithLogger(r.Context(), logger))

			recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(recorder, r)

			duration := time.Since(startTime)
			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(r.Method, route, recorder.statusCode, duration)

			logger.Info().
				Int("status", recorder.statusCode).
				Dur("duration", duration).
				Msg("request completed")
		})
	}
}

// Recoverer turns a handler panic into a logged 500.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logx.FromContext(r.Context()).Error().
					Err(fmt.Errorf("panic: %v", rec)).
					Msg("panic recovered")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"statusCode":500,"errorMessage":"Unexpected error occurred"}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

////////////////////////////////////////////////////////////////////////////
//  AUTHENTICATION MIDDLEWARE
////////////////////////////////////////////////////////////////////////////

func AuthMiddleware(tokenSecret string, db *mongodb.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logx.FromContext(r.Context())

			// Skip authentication for public endpoints
			if api.PublicPaths[r.Method+" "+r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, err := auth.GetBearerToken(r.Header)
			if err != nil {
				api.RespondWithUnauthorized(w, err)
				return
			}

			claims, err := auth.ValidateJWT(tokenString, tokenSecret)
			if err != nil {
				api.RespondWithUnauthorized(w, err)
				return
			}

			revoked, err := users.IsTokenRevoked(db, r.Context(), claims.TokenID)
			if err != nil {
				logger.Error().Err(err).Msg("failed to check token revocation")
				http.Error(w, "Unexpected error occurred", http.StatusInternalServerError)
				return
			}
			if revoked {
				api.RespondWithUnauthorized(w, auth.ErrTokenRevoked)
				return
			}

			profile, err := users.GetProfile(db, r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, users.ErrUserNotFound) {
					api.RespondWithUnauthorized(w, auth.ErrInvalidToken)
					return
				}
				logger.Error().Err(err).Msg("failed to load session profile")
				http.Error(w, "Unexpected error occurred", http.StatusInternalServerError)
				return
			}

			ctx := auth.WithUser(r.Context(), profile)
			ctx = auth.WithClaims(ctx, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects sessions without isAdmin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := auth.GetUserFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			api.RespondWithForbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
