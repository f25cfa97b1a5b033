package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/ecofinds/internal/auth"
	"github.com/sakif/ecofinds/internal/model"
	"github.com/sakif/ecofinds/internal/service"
)

// ProductHandler exposes the product catalog routes. Reads are public;
// writes require an authenticated owner.
type ProductHandler struct {
	products *service.ProductService
	logger   *slog.Logger
}

func NewProductHandler(products *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// HandleList returns the catalog, newest first. Supports two optional
// filters that combine with AND:
//
//	?q=lamp            substring match on title, case-insensitive
//	?category=Books    exact category match
//
// HTTP: GET /api/products
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := model.Category(r.URL.Query().Get("category"))

	products, err := h.products.List(r.Context(), query, category)
	if err != nil {
		writeError(w, err)
		return
	}

	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// HandleGet returns a single product by ID.
//
// HTTP: GET /api/products/{id}
func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// HandleCreate lists a new product owned by the authenticated user.
//
// HTTP: POST /api/products
// Auth: required
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	var req model.CreateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.products.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("product created",
		slog.String("productID", product.ID),
		slog.String("ownerID", userID),
	)
	writeJSON(w, http.StatusCreated, product)
}

// HandleUpdate patches a product. Only the owner may update; only the
// fields present in the body change.
//
// HTTP: PUT /api/products/{id}
// Auth: required
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}
	id := chi.URLParam(r, "id")

	var patch model.UpdateProductRequest
	if !decodeJSON(w, r, &patch) {
		return
	}

	product, err := h.products.Update(r.Context(), id, userID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// HandleDelete removes a product and echoes the removed record so the
// client can offer an undo-style confirmation.
//
// HTTP: DELETE /api/products/{id}
// Auth: required
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}
	id := chi.URLParam(r, "id")

	removed, err := h.products.Delete(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("product deleted",
		slog.String("productID", id),
		slog.String("ownerID", userID),
	)
	writeJSON(w, http.StatusOK, model.DeleteProductResponse{OK: true, Removed: removed})
}
