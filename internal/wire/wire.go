package wire

import (
	"context"
	"net/http"
	"time"

	"filmorate/internal/adaptor"
	"filmorate/internal/data/repository"
	"filmorate/internal/usecase"
	"filmorate/pkg/cache"
	"filmorate/pkg/middleware"
	"filmorate/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the assembled HTTP surface.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router. popularCache may be nil.
func Wiring(repo *repository.Repository, popularCache cache.PopularCache, db Pinger, config *utils.Config, logger *zap.Logger) *App {
	validator := utils.NewValidator(config.Rules)
	service := usecase.NewService(repo, popularCache, validator, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, db, config, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, db Pinger, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(config.HTTP.CORSOrigins))

	r.Get("/health", healthHandler(db, logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(config.HTTP.RateLimitRequests, config.HTTP.RateLimitWindow))

		wireUser(r, handler.User)
		wireFilm(r, handler.Film)
		wireDirector(r, handler.Director)
		wireReview(r, handler.Review)
		wireCatalog(r, handler.Catalog)
	})

	return r
}

func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				logger.Warn("Health check failed", zap.Error(err))
				utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "database unavailable", nil, nil)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
