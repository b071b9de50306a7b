package main

import (
	"encoding/gob"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"donation-campaign-platform/internal/config"
	"donation-campaign-platform/internal/handlers"
	"donation-campaign-platform/internal/middleware"
	"donation-campaign-platform/internal/models"
	"donation-campaign-platform/internal/services"
)

func main() {
	// Register types for session serialization
	gob.Register(models.CheckoutSession{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create session store
	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
	}

	// Campaign backend client
	api := services.NewCampaignAPIService(services.CampaignAPIConfig{
		BaseURL:         cfg.API.BaseURL,
		Timeout:         cfg.API.Timeout,
		SandboxPayments: cfg.Square.IsSandbox(),
	})
	log.Printf("Campaign API: %s (sandbox payments: %v)", cfg.API.BaseURL, cfg.Square.IsSandbox())

	// Services
	passportService := services.NewPassportService(api)
	checkoutService := services.NewCheckoutService(api)

	// Handlers
	campaignHandler := handlers.NewCampaignHandler(api, cfg.Campaign)
	passportHandler := handlers.NewPassportHandler(passportService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, store, cfg.Square, cfg.Campaign)

	paymentLimiter := middleware.NewRateLimiter(10, 5*time.Minute)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(middleware.SecureHeaders)

	r.Get("/", campaignHandler.CampaignPage)
	r.Get("/campaigns/light-up", campaignHandler.CampaignPage)

	r.Get("/passport/{id}", passportHandler.PassportPage)
	r.Post("/passport/{id}/email", passportHandler.SendRedemptionEmail)

	r.Route("/checkout", func(r chi.Router) {
		r.Get("/", checkoutHandler.CheckoutPage)
		r.Post("/open", checkoutHandler.Open)
		r.Post("/field", checkoutHandler.Field)
		r.Post("/advance", checkoutHandler.Advance)
		r.Post("/back", checkoutHandler.Back)
		r.Post("/close", checkoutHandler.Close)
		r.With(middleware.RateLimitPayments(paymentLimiter)).Post("/submit", checkoutHandler.Submit)
	})

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("Server starting on http://%s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
