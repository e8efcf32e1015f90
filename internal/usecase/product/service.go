package product

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
	"github.com/Pesokrava/autospares/internal/pkg/validator"
	"github.com/Pesokrava/autospares/internal/repository/cache"
)

// Cache is the read-through cache the service keeps in front of the catalog
type Cache interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	GetProductList(ctx context.Context, filter domain.ProductFilter, limit, offset int) (*cache.ProductPage, error)
	SetProductList(ctx context.Context, filter domain.ProductFilter, limit, offset int, page *cache.ProductPage) error
	InvalidateProducts(ctx context.Context, ids ...uuid.UUID) error
	InvalidateDashboard(ctx context.Context) error
}

// Service handles product business logic
type Service struct {
	repo   domain.ProductRepository
	cache  Cache
	logger *logger.Logger
}

// NewService creates a new product service
func NewService(repo domain.ProductRepository, cache Cache, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func normalize(p *domain.Product) {
	p.ProductCode = strings.ToUpper(strings.TrimSpace(p.ProductCode))
	p.SKU = strings.ToUpper(strings.TrimSpace(p.SKU))
	p.Name = strings.TrimSpace(p.Name)
}

// Create creates a new product
func (s *Service) Create(ctx context.Context, product *domain.Product) error {
	normalize(product)
	if err := validator.Struct(product); err != nil {
		s.logger.Debugf("Product validation failed: %v", err)
		return err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", err)
		return err
	}

	s.invalidate(ctx)

	s.logger.WithFields(logger.Fields{
		"product_id":   product.ID,
		"product_code": product.ProductCode,
	}).Info("Product created successfully")

	return nil
}

// GetByID retrieves a product by ID, serving from cache when possible
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if cached, err := s.cache.GetProduct(ctx, id); err == nil {
		return cached, nil
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Product not found: %s", id)
		} else {
			s.logger.Error("Failed to get product", err)
		}
		return nil, err
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.logger.Warnf("Failed to cache product %s: %v", id, err)
	}

	return product, nil
}

// List retrieves a paginated list of products
func (s *Service) List(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]*domain.Product, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	if page, err := s.cache.GetProductList(ctx, filter, limit, offset); err == nil {
		s.logger.Debugf("Cache hit for product list (limit=%d, offset=%d)", limit, offset)
		return page.Products, page.Total, nil
	}

	products, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count products", err)
		return nil, 0, err
	}

	page := &cache.ProductPage{Products: products, Total: total}
	if err := s.cache.SetProductList(ctx, filter, limit, offset, page); err != nil {
		s.logger.Warnf("Failed to cache product list: %v", err)
	}

	return products, total, nil
}

// Update updates catalog fields; stock is changed only through UpdateStock
func (s *Service) Update(ctx context.Context, product *domain.Product) error {
	normalize(product)
	if err := validator.Struct(product); err != nil {
		s.logger.Debugf("Product validation failed: %v", err)
		return err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrConflict) {
			s.logger.Error("Failed to update product", err)
		}
		return err
	}

	s.invalidate(ctx, product.ID)

	s.logger.WithFields(logger.Fields{
		"product_id": product.ID,
		"version":    product.Version,
	}).Info("Product updated successfully")

	return nil
}

// Delete deactivates a product. Products referenced by orders are never removed.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to deactivate product", err)
		}
		return err
	}

	s.invalidate(ctx, id)

	s.logger.WithFields(logger.Fields{"product_id": id}).Info("Product deactivated")
	return nil
}

// UpdateStock sets the absolute stock level of a product
func (s *Service) UpdateStock(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error) {
	if quantity < 0 {
		return nil, domain.NewValidationError(domain.FieldError{
			Field:   "stock_quantity",
			Message: "must be 0 or greater",
		})
	}

	product, err := s.repo.SetStock(ctx, id, quantity)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to update stock", err)
		}
		return nil, err
	}

	s.invalidate(ctx, id)

	s.logger.WithFields(logger.Fields{
		"product_id":   id,
		"stock":        product.StockQuantity,
		"stock_status": product.StockStatus(),
	}).Info("Product stock updated")

	return product, nil
}

// ListLowStock returns active products at or below their low-stock threshold
func (s *Service) ListLowStock(ctx context.Context, limit int) ([]*domain.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	products, err := s.repo.ListLowStock(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list low-stock products", err)
		return nil, err
	}
	return products, nil
}

// invalidate drops cached entries touched by a catalog change
func (s *Service) invalidate(ctx context.Context, ids ...uuid.UUID) {
	if err := s.cache.InvalidateProducts(ctx, ids...); err != nil {
		s.logger.Warnf("Failed to invalidate product cache: %v", err)
	}
	if err := s.cache.InvalidateDashboard(ctx); err != nil {
		s.logger.Warnf("Failed to invalidate dashboard cache: %v", err)
	}
}
