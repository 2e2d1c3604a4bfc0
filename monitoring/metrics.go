package monitoring

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by route and outcome",
		},
		[]string{"method", "route", "outcome"},
	)

	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total authentication attempts by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	ticketsPurchased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_purchased_total",
			Help: "Total tickets sold through the purchase endpoint",
		},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "login_rate_limited_total",
			Help: "Total login requests rejected by the rate limiter",
		},
	)
)

// TrackRoute wraps a handler and counts its requests by outcome.
func TrackRoute(method, route string, next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		err := next(e)
		httpRequests.WithLabelValues(method, route, outcome(err)).Inc()
		return err
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}

	var apiErr *router.ApiError
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
		return "client_error"
	}
	return "server_error"
}

// TrackAuthAttempt records a register/login/admin-login outcome.
func TrackAuthAttempt(kind, outcome string) {
	authAttempts.WithLabelValues(kind, outcome).Inc()
}

// TrackPurchase records sold ticket counts.
func TrackPurchase(quantity int) {
	ticketsPurchased.Add(float64(quantity))
}

// TrackRateLimited records a rejected login attempt.
func TrackRateLimited() {
	rateLimited.Inc()
}

// StartServer exposes /metrics on its own port so the scrape endpoint stays
// off the public API listener.
func StartServer(port string) {
	e := echo.New()
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		if err := http.ListenAndServe(":"+port, e); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server stopped", "error", err)
		}
	}()
}
