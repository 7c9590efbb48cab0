// Package catalogrepo persists the style catalog and fabric inventory
// slices that order intake prices from.
package catalogrepo

import (
	"github.com/google/uuid"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/ports"
)

// StyleDTO represents the database structure for catalog styles.
type StyleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	BasePrice   float64   `gorm:"not null"`
	OrdersCount int
}

// TableName overrides GORM's default naming to use "styles".
func (StyleDTO) TableName() string {
	return "styles"
}

// FabricDTO represents the database structure for fabric inventory items.
type FabricDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"not null"`
	PricePerMeter float64   `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "fabrics".
func (FabricDTO) TableName() string {
	return "fabrics"
}

func styleToPort(dto StyleDTO) (*ports.Style, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &ports.Style{
		ID:          id,
		Name:        dto.Name,
		BasePrice:   dto.BasePrice,
		OrdersCount: dto.OrdersCount,
	}, nil
}

func fabricToPort(dto FabricDTO) (*ports.FabricItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &ports.FabricItem{
		ID:            id,
		Name:          dto.Name,
		PricePerMeter: dto.PricePerMeter,
	}, nil
}
