package catalog

import (
	"context"
	"strings"

	"github.com/ayustore/backend/internal/domain/catalog"
	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/ayustore/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
)

// ProductService handles catalog business operations. Public reads go
// through the catalog cache; admin writes invalidate it after commit.
type ProductService struct {
	productRepo catalog.ProductRepository
	cache       cache.CatalogCache
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, catalogCache cache.CatalogCache) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       catalogCache,
	}
}

// List returns active products, optionally filtered by category or a
// case-insensitive search query. Only the unfiltered listing is cached;
// category and search reads always hit the database.
func (s *ProductService) List(ctx context.Context, category, search string) ([]ProductResponse, error) {
	search = strings.TrimSpace(search)
	if search != "" {
		products, err := s.productRepo.SearchActive(ctx, search)
		if err != nil {
			return nil, err
		}
		return ToProductResponses(products), nil
	}
	if category != "" {
		products, err := s.productRepo.FindActiveByCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		return ToProductResponses(products), nil
	}

	if cached, ok := s.cache.GetProducts(ctx, cache.KeyAllProducts); ok {
		return ToProductResponses(cached), nil
	}

	products, err := s.productRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetProducts(ctx, cache.KeyAllProducts, products)
	return ToProductResponses(products), nil
}

// Get returns an active product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	if cached, ok := s.cache.GetProduct(ctx, id); ok {
		return ToProductResponse(cached), nil
	}

	product, err := s.productRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetProduct(ctx, product)
	return ToProductResponse(product), nil
}

// Categories returns the distinct categories of active products
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	if cached, ok := s.cache.GetCategories(ctx); ok {
		return cached, nil
	}

	categories, err := s.productRepo.FindCategories(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetCategories(ctx, categories)
	return categories, nil
}

// Create creates a new product and invalidates the catalog cache
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Price, req.Category)
	if err != nil {
		return nil, err
	}

	product.Description = req.Description
	product.Image = req.Image
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.cache.InvalidateProducts(ctx)
	return ToProductResponse(product), nil
}

// Update partially updates a product and invalidates the catalog cache
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
		}
		product.Name = name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
		}
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = strings.TrimSpace(*req.Category)
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	product.Touch()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.cache.InvalidateProducts(ctx)
	return ToProductResponse(product), nil
}

// Delete soft-deletes a product and invalidates the catalog cache.
// The row is kept so historical order items stay resolvable.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.Deactivate()
	if err := s.productRepo.Update(ctx, product); err != nil {
		return err
	}

	s.cache.InvalidateProducts(ctx)
	return nil
}

// CountActive returns the number of active products for the dashboard
func (s *ProductService) CountActive(ctx context.Context) (int64, error) {
	return s.productRepo.CountActive(ctx)
}
