package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Flarenzy/preghierine/internal/domain"
	httpSwagger "github.com/swaggo/http-swagger"
)

// HealthChecker reports whether the service can currently answer requests.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type API struct {
	Logger  *slog.Logger
	Health  HealthChecker
	Service domain.DispatchService
}

func NewAPI(logger *slog.Logger, health HealthChecker, service domain.DispatchService) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		Logger:  logger,
		Health:  health,
		Service: service,
	}
}

func (a *API) Router() http.Handler {
	return a.requestIDMiddleware(a.mux())
}

func (a *API) mux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", a.handleIndex)
	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /readyz", a.handleReadyz)
	mux.HandleFunc("POST /api/send-random", a.handleSendRandom)
	mux.HandleFunc("POST /api/v1/send-random", a.handleSendRandom)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return mux
}
