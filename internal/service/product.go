package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/sakif/ecofinds/internal/apperror"
	"github.com/sakif/ecofinds/internal/model"
	"github.com/sakif/ecofinds/internal/repository"
)

// Validation constants for product listings.
const (
	MaxTitleLength       = 140
	MaxDescriptionLength = 5000
	DefaultImageURL      = "/placeholder.svg"
)

// ProductService handles business logic for catalog listings: validation,
// price normalization, and ownership checks on mutations.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a ProductService.
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// roundPrice normalizes a price: clamped to ≥0 and rounded to 2 decimal
// places (half away from zero, so 19.999 → 20.00).
func roundPrice(price float64) float64 {
	if price < 0 {
		return 0
	}
	return math.Round(price*100) / 100
}

// List returns catalog listings newest-first, optionally filtered by a
// case-insensitive title substring and an exact category. Both filters
// are ANDed when present. An unknown category simply matches nothing —
// it is a filter, not input to validate.
func (s *ProductService) List(ctx context.Context, query string, category model.Category) ([]model.Product, error) {
	products, err := s.repo.List(ctx, repository.ProductFilter{
		Query:    strings.TrimSpace(query),
		Category: category,
	})
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// Get retrieves a single product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.ValidationFailed("id", "product ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// Create validates and saves a new listing for ownerID.
//
// Title, description, category, and price are all required; the price
// pointer distinguishes an explicit 0 (valid, a free item) from an
// absent field (invalid).
func (s *ProductService) Create(ctx context.Context, ownerID string, req model.CreateProductRequest) (*model.Product, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	if description == "" {
		return nil, apperror.ValidationFailed("description", "description is required")
	}
	if len(description) > MaxDescriptionLength {
		return nil, apperror.ValidationFailed("description",
			fmt.Sprintf("description must be %d characters or less", MaxDescriptionLength))
	}
	if req.Category == "" {
		return nil, apperror.ValidationFailed("category", "category is required")
	}
	if !model.ValidCategory(req.Category) {
		return nil, apperror.ValidationFailed("category",
			fmt.Sprintf("unknown category %q", req.Category))
	}
	if req.Price == nil {
		return nil, apperror.ValidationFailed("price", "price is required")
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		imageURL = DefaultImageURL
	}

	product := &model.Product{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Category:    req.Category,
		Price:       roundPrice(*req.Price),
		ImageURL:    imageURL,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	s.logger.Info("product listed",
		slog.String("productID", product.ID),
		slog.String("ownerID", ownerID),
		slog.String("category", string(product.Category)),
		slog.Float64("price", product.Price),
	)

	return product, nil
}

// Update merges a partial patch into an existing listing.
// Only the owner may mutate a product; anyone else gets ErrForbidden and
// the record is left untouched. A present price is re-rounded.
func (s *ProductService) Update(ctx context.Context, id, requesterID string, patch model.UpdateProductRequest) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != requesterID {
		return nil, apperror.Forbidden("only the owner may edit this product")
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperror.ValidationFailed("title", "title must not be empty")
		}
		if len(title) > MaxTitleLength {
			return nil, apperror.ValidationFailed("title",
				fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
		}
		product.Title = title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return nil, apperror.ValidationFailed("description", "description must not be empty")
		}
		product.Description = description
	}
	if patch.Category != nil {
		if !model.ValidCategory(*patch.Category) {
			return nil, apperror.ValidationFailed("category",
				fmt.Sprintf("unknown category %q", *patch.Category))
		}
		product.Category = *patch.Category
	}
	if patch.Price != nil {
		product.Price = roundPrice(*patch.Price)
	}
	if patch.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("updating product %s: %w", id, err)
	}

	return product, nil
}

// Delete removes a listing, returning the removed record. Same ownership
// rule as Update.
func (s *ProductService) Delete(ctx context.Context, id, requesterID string) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != requesterID {
		return nil, apperror.Forbidden("only the owner may delete this product")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("deleting product %s: %w", id, err)
	}

	s.logger.Info("product removed",
		slog.String("productID", id),
		slog.String("ownerID", requesterID),
	)

	return product, nil
}
