package api

import (
	"net/http"

	_ "cryptoexchange/docs"
	orderhandler "cryptoexchange/internal/order/handler"
	ratehandler "cryptoexchange/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Rates   *ratehandler.Handler
	Orders  *orderhandler.Handler
	RatesWS http.HandlerFunc
}

func NewRouter(h Handlers, gatherer prometheus.Gatherer) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	if h.RatesWS != nil {
		router.Get("/ws/rates", h.RatesWS)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/rates/supported-currencies", h.Rates.GetSupportedCodes)
		r.Get("/rates/{from:[A-Za-z0-9]{2,10}}/{to:[A-Za-z0-9]{2,10}}", h.Rates.GetRate)

		r.Post("/orders/quote", h.Orders.QuoteOrder)
		r.Post("/orders", h.Orders.CreateOrder)
		r.Get("/orders/{id}", h.Orders.GetOrder)
		r.Patch("/orders/{id}/status", h.Orders.UpdateOrderStatus)
	})
	return router
}
