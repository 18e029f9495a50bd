package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/honlnm/biztime/docs" // swagger docs
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors, mw.Metrics)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.HealthHandler)
		r.Handle("/metrics", promhttp.Handler())
		r.HandleFunc("/swagger/*", httpSwagger.Handler())
	})

	mux.Route("/companies", func(r chi.Router) {
		r.Get("/", h.Companies)
		r.Post("/", h.CreateCompany)
		r.Get("/{code}", h.Company)
		r.Post("/{code}", h.LinkIndustry)
		r.Put("/{code}", h.UpdateCompany)
		r.Delete("/{code}", h.DeleteCompany)
	})

	mux.Route("/industries", func(r chi.Router) {
		r.Get("/", h.Industries)
		r.Post("/", h.CreateIndustry)
	})

	mux.Route("/invoices", func(r chi.Router) {
		r.Get("/", h.Invoices)
		r.Post("/", h.CreateInvoice)
		r.Get("/{id}", h.Invoice)
		r.Put("/{id}", h.UpdateInvoice)
		r.Delete("/{id}", h.DeleteInvoice)
	})

	return mux
}
