package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lealre/carsdb-backend/internal/api"
	"github.com/lealre/carsdb-backend/internal/config"
	"github.com/lealre/carsdb-backend/internal/metrics"
	"github.com/lealre/carsdb-backend/internal/mongodb"
	"github.com/rs/zerolog"
)

func NewServer(db *mongodb.DB, cfg config.Config, logger zerolog.Logger) http.Handler {
	m := metrics.New()
	apiCfg := api.NewAPI(db, cfg.JWT, m)
	authLimiter := newKeyedLimiter(cfg.HTTP.AuthRateLimit, cfg.HTTP.AuthRateBurst)

	r := chi.NewRouter()
	r.Use(
		RequestIdMiddleware(logger, m),
		Recoverer,
		cors.New(cors.Options{
			AllowedOrigins:   cfg.HTTP.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIdHeader},
			ExposedHeaders:   []string{RequestIdHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}).Handler,
		chimiddleware.Timeout(cfg.HTTP.RequestTimeout),
		AuthMiddleware(cfg.JWT.Secret, db),
	)

	r.Get("/healthz", apiCfg.Healthz)
	r.Get("/metrics", apiCfg.ServeMetrics)

	r.With(AuthRateLimit(authLimiter)).Post("/signup", apiCfg.SignUp)
	r.With(AuthRateLimit(authLimiter)).Post("/signin", apiCfg.SignIn)
	r.Post("/signout", apiCfg.SignOut)
	r.Get("/me", apiCfg.Me)

	r.Route("/cars", func(r chi.Router) {
		r.Get("/", apiCfg.ListCars)
		r.Get("/view", apiCfg.GetCarsView)
		r.Get("/{id}", apiCfg.GetCar)
		r.Put("/{id}/rating", apiCfg.SetRating)
		r.Post("/{id}/collections/{collection}", apiCfg.ToggleCollection)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Post("/", apiCfg.CreateCar)
			r.Patch("/{id}", apiCfg.UpdateCar)
			r.Post("/tags", apiCfg.ApplyTag)
		})
	})

	r.Get("/users/{id}", apiCfg.GetUserPage)

	return r
}

// ListenAndServe serves handler until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
