package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Pesokrava/autospares/internal/config"
	"github.com/Pesokrava/autospares/internal/delivery/http/handler"
	"github.com/Pesokrava/autospares/internal/delivery/http/middleware"
	"github.com/Pesokrava/autospares/internal/delivery/http/request"
	"github.com/Pesokrava/autospares/internal/delivery/http/response"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
	Basket  *handler.BasketHandler
	Payment *handler.PaymentHandler
	Admin   *handler.AdminHandler
}

// Router holds HTTP handlers and router configuration
type Router struct {
	handlers Handlers
	logger   *logger.Logger
	cfg      *config.Config
}

// NewRouter creates a new HTTP router
func NewRouter(handlers Handlers, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   log,
		cfg:      cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			request.HeaderUserID, request.HeaderActorID, request.HeaderSessionID,
			handler.SignatureHeader,
		},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	h := rt.handlers
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", h.Product.Create)
			r.Get("/", h.Product.List)
			r.Get("/{id}", h.Product.GetByID)
			r.Put("/{id}", h.Product.Update)
			r.Delete("/{id}", h.Product.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Order.Create)
			r.Get("/", h.Order.ListMine)
			r.Get("/number/{number}", h.Order.GetByNumber)
			r.Get("/{id}", h.Order.GetByID)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Basket.GetCart)
			r.Delete("/", h.Basket.ClearCart)
			r.Post("/items", h.Basket.AddToCart)
			r.Put("/items/{productId}", h.Basket.UpdateCartItem)
			r.Delete("/items/{productId}", h.Basket.RemoveCartItem)
			r.Post("/checkout", h.Basket.Checkout)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.Basket.GetWishlist)
			r.Delete("/", h.Basket.ClearWishlist)
			r.Post("/items", h.Basket.AddToWishlist)
			r.Delete("/items/{productId}", h.Basket.RemoveFromWishlist)
			r.Post("/items/{productId}/move-to-cart", h.Basket.MoveToCart)
		})

		r.Route("/comparison", func(r chi.Router) {
			r.Get("/", h.Basket.GetComparison)
			r.Delete("/", h.Basket.ClearComparison)
			r.Post("/items", h.Basket.AddToComparison)
			r.Delete("/items/{productId}", h.Basket.RemoveFromComparison)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/intents", h.Payment.CreateIntent)
			r.Post("/confirm", h.Payment.Confirm)
			r.Post("/webhook", h.Payment.Webhook)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/dashboard", h.Admin.Dashboard)
			r.Get("/orders", h.Order.ListAll)
			r.Put("/orders/{id}/status", h.Order.UpdateStatus)
			r.Get("/products/low-stock", h.Product.LowStock)
			r.Put("/products/{id}/stock", h.Product.UpdateStock)
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
