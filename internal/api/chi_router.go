// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ishubhamdubey/KAPAS/internal/middleware"
)

// slowRequestThreshold is the duration above which requests are logged at warn.
const slowRequestThreshold = time.Second

// Router builds the chi router for a handler set.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil middleware configuration is derived from
// the handler's security settings.
func NewRouter(handler *Handler, mwConfig *ChiMiddlewareConfig) *Router {
	if mwConfig == nil {
		mwConfig = ChiMiddlewareConfigFrom(&handler.config.Security)
	}
	return &Router{handler: handler, chiMiddleware: NewChiMiddleware(mwConfig)}
}

// SetupChi returns the HTTP handler serving every route.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(slowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)
	if timeout := h.config.Server.Timeout; timeout > 0 {
		r.Use(chimiddleware.Timeout(timeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("no route for " + r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeBadRequest, r.Method+" is not allowed on "+r.URL.Path)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(APISecurityHeaders)
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/health", h.Health)

			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimit())
				r.Use(Authenticate(h.jwt))

				r.Get("/products", h.Products)
				r.Get("/products/{id}", h.Product)
				r.Get("/products/{id}/similar", h.Similar)
				r.Get("/recommendations", h.Recommendations)
				r.Post("/recommendations/rebuild", h.RebuildIndex)
				r.Get("/delivery/{pin}", h.Delivery)

				r.Route("/cart", func(r chi.Router) {
					r.Get("/", h.Cart)
					r.Delete("/", h.ClearCart)
					r.Post("/items", h.AddCartItem)
					r.Patch("/items/{id}", h.UpdateCartItem)
					r.Delete("/items/{id}", h.RemoveCartItem)
					r.Post("/adopt", h.AdoptCart)
				})
			})
		})

		r.Route("/rest/v1", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Get("/{table}", h.SelectRows)
			r.Post("/{table}", h.InsertRow)
			r.Patch("/{table}", h.UpdateRows)
			r.Delete("/{table}", h.DeleteRows)
		})

		r.Get("/auth/v1/user", h.CurrentUser)
	})

	return r
}
