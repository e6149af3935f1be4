package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig bundles everything the router needs. AdminMiddleware gates
// every /admin route except login.
type RouterConfig struct {
	Carts           CartService
	Checkout        CheckoutSubmitter
	Orders          OrderGetter
	Catalog         *CatalogHandler
	Admin           *AdminHandler
	AdminMiddleware func(http.Handler) http.Handler
	RequestTimeout  time.Duration
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	cartHandler := NewCartHandler(cfg.Carts, cfg.RequestTimeout)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout, cfg.RequestTimeout)
	ordersHandler := NewOrdersHandler(cfg.Orders, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", cfg.Catalog.ListProducts)
		r.Get("/products/{id}", cfg.Catalog.GetProduct)
		r.Get("/categories", cfg.Catalog.ListCategories)
		r.Get("/categories/{id}", cfg.Catalog.GetCategory)
		r.Get("/hero-slides", cfg.Catalog.ListHeroSlides)

		r.Route("/cart", func(r chi.Router) {
			r.Use(CartIDMiddleware)
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddLine)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveLine)
			r.Post("/clear", cartHandler.ClearCart)
		})

		r.With(CartIDMiddleware).Post("/checkout", checkoutHandler.Submit)

		r.Get("/orders/{order_id}", ordersHandler.Track)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", cfg.Admin.Login)

			r.Group(func(r chi.Router) {
				r.Use(cfg.AdminMiddleware)
				r.Get("/orders", cfg.Admin.ListOrders)
				r.Put("/orders/{order_id}/status", cfg.Admin.UpdateOrderStatus)

				r.Post("/products", cfg.Catalog.CreateProduct)
				r.Put("/products/{id}", cfg.Catalog.UpdateProduct)
				r.Delete("/products/{id}", cfg.Catalog.DeleteProduct)

				r.Post("/categories", cfg.Catalog.CreateCategory)
				r.Put("/categories/{id}", cfg.Catalog.UpdateCategory)
				r.Delete("/categories/{id}", cfg.Catalog.DeleteCategory)

				r.Post("/hero-slides", cfg.Catalog.CreateHeroSlide)
				r.Delete("/hero-slides/{id}", cfg.Catalog.DeleteHeroSlide)
			})
		})
	})

	return r
}
