package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/tradedir-backend/api/controllers"
	"github.com/angelmondragon/tradedir-backend/api/middleware"
	"github.com/angelmondragon/tradedir-backend/internal/directory"
	"github.com/angelmondragon/tradedir-backend/pkg/config"
	"github.com/angelmondragon/tradedir-backend/pkg/logger"
	"github.com/angelmondragon/tradedir-backend/pkg/metrics"
)

// Deps carries what the router needs beyond config and logging.
type Deps struct {
	Directory   directory.Service
	DB          controllers.Pinger
	Redis       controllers.Pinger
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.NotFound(controllers.NotFound(logg))
	r.MethodNotAllowed(controllers.MethodNotAllowed(logg))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"db":    deps.DB,
			"redis": deps.Redis,
		}))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/directory", func(r chi.Router) {
		r.Get("/products", controllers.DirectoryProducts(deps.Directory, logg))
		r.Get("/tiers", controllers.DirectoryTiers(deps.Directory, logg))
	})

	return r
}
