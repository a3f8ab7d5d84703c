package persistence

import (
	"context"
	"errors"

	"github.com/ayustore/backend/internal/domain/catalog"
	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/ayustore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID regardless of active state
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByID finds an active product by its ID
func (r *GormProductRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllActive returns all active products ordered by creation time
func (r *GormProductRepository) FindAllActive(ctx context.Context) ([]catalog.Product, error) {
	var list []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(list), nil
}

// FindActiveByCategory returns active products in the given category
func (r *GormProductRepository) FindActiveByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	var list []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND category = ?", true, category).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(list), nil
}

// SearchActive returns active products whose name or description matches the query
func (r *GormProductRepository) SearchActive(ctx context.Context, query string) ([]catalog.Product, error) {
	var list []models.ProductModel
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND (name ILIKE ? OR description ILIKE ?)", true, pattern, pattern).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(list), nil
}

// FindCategories returns the distinct categories of active products
func (r *GormProductRepository) FindCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CountActive returns the number of active products
func (r *GormProductRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("is_active = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a new product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing product
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", model.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DecrementStock atomically decrements stock if enough is available.
// Returns shared.ErrInsufficientStock when the conditional update matches
// no row because stock fell below the requested quantity.
func (r *GormProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND is_active = ? AND stock >= ?", id, true, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrInsufficientStock
	}
	return nil
}

func toDomainProducts(list []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(list))
	for i := range list {
		products[i] = *list[i].ToDomain()
	}
	return products
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
