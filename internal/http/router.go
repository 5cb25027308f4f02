package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the REST surface. The paths mirror the storefront API:
// catalog under /api/products, the cart aggregate under /api/carts.
func NewRouter(products *ProductHandler, carts *CartHandler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.ListProducts)
			r.Post("/", products.CreateProduct)
			r.Get("/{pid}", products.GetProduct)
			r.Put("/{pid}", products.UpdateProduct)
			r.Delete("/{pid}", products.DeleteProduct)
		})

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", carts.CreateCart)
			r.Get("/{cid}", carts.GetCart)
			r.Put("/{cid}", carts.ReplaceItems)
			r.Delete("/{cid}", carts.ClearCart)
			r.Post("/{cid}/products/{pid}", carts.AddItem)
			// PUT increments rather than replaces the quantity. That
			// matches the storefront's historical behavior and is kept
			// on purpose; see DESIGN.md.
			r.Put("/{cid}/products/{pid}", carts.AddItem)
			r.Delete("/{cid}/products/{pid}", carts.RemoveItem)
		})
	})

	return r
}
