package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/diazmg/phone-store/internal/domain"
	"github.com/diazmg/phone-store/internal/service"
	"github.com/go-chi/chi/v5"
)

// Catalog is the product surface this handler consumes.
type Catalog interface {
	ListProducts(ctx context.Context, params service.ListParams) (*service.ProductPage, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, update domain.ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) (*domain.Product, error)
}

type ProductHandler struct {
	catalog Catalog
}

func NewProductHandler(catalog Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// listResponse is the flat page shape: pagination metadata and links sit
// next to the payload, not nested under it.
type listResponse struct {
	Status      string           `json:"status"`
	Payload     []domain.Product `json:"payload"`
	TotalPages  int              `json:"totalPages"`
	PrevPage    *int             `json:"prevPage"`
	NextPage    *int             `json:"nextPage"`
	Page        int              `json:"page"`
	HasPrevPage bool             `json:"hasPrevPage"`
	HasNextPage bool             `json:"hasNextPage"`
	PrevLink    *string          `json:"prevLink"`
	NextLink    *string          `json:"nextLink"`
}

// productRequest decodes a create request. Status needs a pointer so an
// absent field defaults to true, matching the catalog schema.
type productRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	Stock           int      `json:"stock"`
	Status          *bool    `json:"status"`
	Code            string   `json:"code"`
	Thumbnails      []string `json:"thumbnails"`
	Brand           string   `json:"brand"`
	ModelName       string   `json:"modelName"`
	Model           string   `json:"model"`
	ScreenSize      float64  `json:"screenSize"`
	Storage         float64  `json:"storage"`
	RAM             float64  `json:"ram"`
	Camera          string   `json:"camera"`
	Battery         string   `json:"battery"`
	Color           string   `json:"color"`
	OperativeSystem string   `json:"operativeSystem"`
}

func (req *productRequest) toDomain() domain.Product {
	status := true
	if req.Status != nil {
		status = *req.Status
	}
	return domain.Product{
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		Stock:           req.Stock,
		Status:          status,
		Code:            req.Code,
		Thumbnails:      req.Thumbnails,
		Brand:           req.Brand,
		ModelName:       req.ModelName,
		Model:           req.Model,
		ScreenSize:      req.ScreenSize,
		Storage:         req.Storage,
		RAM:             req.RAM,
		Camera:          req.Camera,
		Battery:         req.Battery,
		Color:           req.Color,
		OperativeSystem: req.OperativeSystem,
	}
}

// queryInt mirrors the permissive paging input contract: anything that is
// not a positive integer falls back to the default.
func queryInt(r *http.Request, key string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := service.ListParams{
		Limit: queryInt(r, "limit", service.DefaultLimit),
		Page:  queryInt(r, "page", service.DefaultPage),
		Sort:  r.URL.Query().Get("sort"),
		Query: r.URL.Query().Get("query"),
	}

	page, err := h.catalog.ListProducts(r.Context(), params)
	if err != nil {
		respondServiceError(w, err, nil)
		return
	}

	links := BuildPageLinks(requestBase(r), r.URL.Query(), page)

	respondJSON(w, http.StatusOK, listResponse{
		Status:      "success",
		Payload:     page.Payload,
		TotalPages:  page.TotalPages,
		PrevPage:    page.PrevPage,
		NextPage:    page.NextPage,
		Page:        page.Page,
		HasPrevPage: page.HasPrevPage,
		HasNextPage: page.HasNextPage,
		PrevLink:    links.Prev,
		NextLink:    links.Next,
	})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "pid")

	product, err := h.catalog.GetProduct(r.Context(), pid)
	if err != nil {
		respondServiceError(w, err, func(error) string {
			return "product not found"
		})
		return
	}

	respondPayload(w, http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), req.toDomain())
	if err != nil {
		respondServiceError(w, err, nil)
		return
	}

	respondPayload(w, http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "pid")

	var update domain.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), pid, update)
	if err != nil {
		respondServiceError(w, err, func(error) string {
			return "product not found"
		})
		return
	}

	respondPayload(w, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "pid")

	product, err := h.catalog.DeleteProduct(r.Context(), pid)
	if err != nil {
		respondServiceError(w, err, func(error) string {
			return "product not found"
		})
		return
	}

	respondPayload(w, http.StatusOK, product)
}
