package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"marketplace/internal/common"
	"marketplace/internal/domain/model"
	"marketplace/internal/domain/repository"
)

type ProductService struct {
	productRepo repository.ProductRepository
	publisher   ListingPublisher
	logger      *zap.Logger
}

func NewProductService(productRepo repository.ProductRepository, publisher ListingPublisher, logger *zap.Logger) *ProductService {
	if publisher == nil {
		publisher = NopListingPublisher{}
	}
	return &ProductService{productRepo: productRepo, publisher: publisher, logger: logger}
}

type ListProductRequest struct {
	Name        string       `json:"name" validate:"required,max=200"`
	Description string       `json:"description" validate:"required,max=5000"`
	Price       *model.Price `json:"price" validate:"required,gt=0"`
	ImageURL    string       `json:"imageUrl" validate:"omitempty,max=2048"`
}

// List creates a product owned by ownerID.
func (s *ProductService) List(ctx context.Context, ownerID string, req ListProductRequest) (*model.Product, error) {
	if ownerID == "" {
		return nil, common.New(common.ErrUnauthorized, "missing product owner")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        req.Name,
		Slug:        productSlug(req.Name),
		Description: req.Description,
		Price:       *req.Price,
	}
	if req.ImageURL != "" {
		product.ImageURL = &req.ImageURL
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to list product: %w", err)
	}

	// Listing succeeded; a lost event must not fail the request.
	if err := s.publisher.PublishProductListed(ctx, product); err != nil {
		s.logger.Warn("failed to publish listing event",
			zap.String("product_id", product.ID),
			zap.Error(err))
	}
	return product, nil
}

// UserProducts returns the products owned by ownerID, newest first.
func (s *ProductService) UserProducts(ctx context.Context, ownerID string) ([]model.Product, error) {
	products, err := s.productRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user products: %w", err)
	}
	return nonNil(products), nil
}

// AllProducts returns every product, newest first. The result is unbounded.
func (s *ProductService) AllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return nonNil(products), nil
}

// FilterSearch returns products whose name or description contains query,
// ignoring case, newest first. A blank query returns all products.
func (s *ProductService) FilterSearch(ctx context.Context, query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.AllProducts(ctx)
	}
	products, err := s.productRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return nonNil(products), nil
}

func productSlug(name string) string {
	if s := slug.Make(name); s != "" {
		return s
	}
	return "product"
}

func nonNil(products []model.Product) []model.Product {
	if products == nil {
		return []model.Product{}
	}
	return products
}
