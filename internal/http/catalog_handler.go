package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/takkat/storefront/internal/catalog/domain"
	"github.com/takkat/storefront/internal/catalog/repository"
)

// CatalogHandler serves the public read endpoints and the admin CRUD for
// products, categories and hero slides. Handlers talk to the repository
// directly; the catalog has no business rules that would earn a service layer.
type CatalogHandler struct {
	catalog repository.CatalogRepository
	timeout time.Duration
}

func NewCatalogHandler(catalog repository.CatalogRepository, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, timeout: timeout}
}

// ListProducts is the public listing: hidden products never appear here,
// regardless of query parameters.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	filter := repository.ProductFilter{
		CategoryID:     r.URL.Query().Get("category"),
		TopSellersOnly: r.URL.Query().Get("top_sellers") == "true",
		VisibleOnly:    true,
	}
	products, err := h.catalog.ListProducts(ctx, filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.GetProduct(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	category, err := h.catalog.GetCategory(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load category")
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *CatalogHandler) ListHeroSlides(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slides, err := h.catalog.ListHeroSlides(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list hero slides")
		return
	}
	respondJSON(w, http.StatusOK, slides)
}

// Admin CRUD below. These sit behind the admin JWT middleware.

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if product.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_product", "name is required")
		return
	}
	if err := h.catalog.CreateProduct(ctx, &product); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	product.ID = chi.URLParam(r, "id")
	if err := h.catalog.UpdateProduct(ctx, &product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.catalog.DeleteProduct(ctx, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if category.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_category", "name is required")
		return
	}
	if err := h.catalog.CreateCategory(ctx, &category); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create category")
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	category.ID = chi.URLParam(r, "id")
	if err := h.catalog.UpdateCategory(ctx, &category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update category")
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.catalog.DeleteCategory(ctx, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) CreateHeroSlide(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var slide domain.HeroSlide
	if err := json.NewDecoder(r.Body).Decode(&slide); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if slide.ImageURL == "" {
		respondError(w, http.StatusBadRequest, "invalid_slide", "image_url is required")
		return
	}
	if err := h.catalog.CreateHeroSlide(ctx, &slide); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create hero slide")
		return
	}
	respondJSON(w, http.StatusCreated, slide)
}

func (h *CatalogHandler) DeleteHeroSlide(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.catalog.DeleteHeroSlide(ctx, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "hero slide not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete hero slide")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
