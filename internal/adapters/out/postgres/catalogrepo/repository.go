package catalogrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// GormStyleRepository implements ports.StyleRepository using GORM.
type GormStyleRepository struct {
	db *gorm.DB
}

// NewGormStyleRepository creates a new GORM style repository.
func NewGormStyleRepository(db *gorm.DB) *GormStyleRepository {
	return &GormStyleRepository{db: db}
}

// Get retrieves a catalog style by identifier.
func (r *GormStyleRepository) Get(ctx context.Context, id kernel.UUID) (*ports.Style, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StyleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("styleId", id.String())
		}
		return nil, err
	}

	return styleToPort(dto)
}

// IncrementOrders bumps the style's popularity counter atomically.
func (r *GormStyleRepository) IncrementOrders(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&StyleDTO{}).
		Where("id = ?", id.Bytes()).
		UpdateColumn("orders_count", gorm.Expr("orders_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("styleId", id.String())
	}

	return nil
}

// GormFabricRepository implements ports.FabricRepository using GORM.
type GormFabricRepository struct {
	db *gorm.DB
}

// NewGormFabricRepository creates a new GORM fabric repository.
func NewGormFabricRepository(db *gorm.DB) *GormFabricRepository {
	return &GormFabricRepository{db: db}
}

// Get retrieves an inventory item by identifier.
func (r *GormFabricRepository) Get(ctx context.Context, id kernel.UUID) (*ports.FabricItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FabricDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("fabricId", id.String())
		}
		return nil, err
	}

	return fabricToPort(dto)
}
