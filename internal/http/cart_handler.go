package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/diazmg/phone-store/internal/domain"
	"github.com/diazmg/phone-store/internal/repository"
	"github.com/diazmg/phone-store/internal/service"
	"github.com/go-chi/chi/v5"
)

// Carts is the cart surface this handler consumes.
type Carts interface {
	CreateCart(ctx context.Context) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (*domain.ResolvedCart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) (repository.AddOutcome, error)
	ReplaceItems(ctx context.Context, cartID string, items []service.ItemInput) (*domain.ResolvedCart, error)
	RemoveItem(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) (*domain.ResolvedCart, error)
}

type CartHandler struct {
	carts Carts
}

func NewCartHandler(carts Carts) *CartHandler {
	return &CartHandler{carts: carts}
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

type addItemResult struct {
	Outcome string `json:"outcome"`
}

func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.CreateCart(r.Context())
	if err != nil {
		respondServiceError(w, err, nil)
		return
	}

	respondPayload(w, http.StatusCreated, cart)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cid := chi.URLParam(r, "cid")

	cart, err := h.carts.GetCart(r.Context(), cid)
	if err != nil {
		respondServiceError(w, err, func(error) string {
			return fmt.Sprintf("cart %s not found", cid)
		})
		return
	}

	respondPayload(w, http.StatusOK, cart.Products)
}

// AddItem handles both POST and PUT on a cart item. The PUT keeps the same
// increment semantics as POST; see the route comment in router.go.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cid := chi.URLParam(r, "cid")
	pid := chi.URLParam(r, "pid")

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	outcome, err := h.carts.AddItem(r.Context(), cid, pid, quantity)
	if err != nil {
		respondServiceError(w, err, func(error) string {
			return fmt.Sprintf("cart %s not found", cid)
		})
		return
	}

	message := fmt.Sprintf("product %s added to cart %s", pid, cid)
	if outcome == repository.OutcomeIncremented {
		message = fmt.Sprintf("quantity of product %s incremented in cart %s", pid, cid)
	}

	respondJSON(w, http.StatusOK, envelope{
		Status:  "success",
		Payload: addItemResult{Outcome: outcome.String()},
		Message: message,
	})
}

func (h *CartHandler) ReplaceItems(w http.ResponseWriter, r *http.Request) {
	cid := chi.URLParam(r, "cid")

	var items []service.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		respondError(w, http.StatusBadRequest, "request body must be an array of line items")
		return
	}

	cart, err := h.carts.ReplaceItems(r.Context(), cid, items)
	if err != nil {
		respondServiceError(w, err, func(error) string {
			return fmt.Sprintf("cart %s not found", cid)
		})
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		Status:  "success",
		Payload: cart,
		Message: "cart updated",
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cid := chi.URLParam(r, "cid")
	pid := chi.URLParam(r, "pid")

	err := h.carts.RemoveItem(r.Context(), cid, pid)
	if err != nil {
		respondServiceError(w, err, func(err error) string {
			if errors.Is(err, repository.ErrItemNotFound) {
				return fmt.Sprintf("product %s not found in cart %s", pid, cid)
			}
			return fmt.Sprintf("cart %s not found", cid)
		})
		return
	}

	respondMessage(w, http.StatusOK, fmt.Sprintf("product %s removed from cart %s", pid, cid))
}

// ClearCart empties the cart; the document itself is kept.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cid := chi.URLParam(r, "cid")

	cart, err := h.carts.Clear(r.Context(), cid)
	if err != nil {
		respondServiceError(w, err, func(error) string {
			return fmt.Sprintf("cart %s not found", cid)
		})
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		Status:  "success",
		Payload: cart,
		Message: fmt.Sprintf("all products removed from cart %s", cid),
	})
}
