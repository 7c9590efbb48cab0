// Package orderrepo persists order aggregates with their append-only
// progress ledgers and the year-scoped order number sequence.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Ledger rows live in their own table and are loaded eagerly:
// an order without its history cannot project a status.
type OrderDTO struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber             string     `gorm:"uniqueIndex;not null"`
	CustomerID              uuid.UUID  `gorm:"type:uuid;index;not null"`
	StyleID                 *uuid.UUID `gorm:"type:uuid"`
	FabricSource            string     `gorm:"not null"`
	FabricInventoryID       *uuid.UUID `gorm:"type:uuid"`
	MeasurementProfileID    uuid.UUID  `gorm:"type:uuid;not null"`
	AssignedWorkerID        *uuid.UUID `gorm:"type:uuid;index"`
	AssignedManagerID       *uuid.UUID `gorm:"type:uuid"`
	BasePrice               float64
	FabricCost              float64
	AdditionalCharges       float64
	Discount                float64
	TotalAmount             float64
	AmountPaid              float64
	Urgency                 string `gorm:"not null"`
	Status                  string `gorm:"index;not null"`
	EstimatedCompletionDate time.Time
	Notes                   string
	Progress                []ProgressEntryDTO `gorm:"foreignKey:OrderID"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ProgressEntryDTO represents one immutable row of an order's progress
// ledger.
type ProgressEntryDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	Stage       string     `gorm:"not null"`
	CompletedBy *uuid.UUID `gorm:"type:uuid"`
	Notes       string
	Images      pq.StringArray `gorm:"type:text[]"`
	RecordedAt  time.Time
}

// TableName overrides GORM's default naming to use "order_progress".
func (ProgressEntryDTO) TableName() string {
	return "order_progress"
}

// OrderCounterDTO backs the year-scoped order number sequence.
type OrderCounterDTO struct {
	Year      int `gorm:"primaryKey"`
	LastValue int `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "order_counters".
func (OrderCounterDTO) TableName() string {
	return "order_counters"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	progress := make([]ProgressEntryDTO, 0, len(aggregate.Progress()))
	for _, entry := range aggregate.Progress() {
		progress = append(progress, progressFromDomain(entry))
	}

	return OrderDTO{
		ID:                      aggregate.ID().Bytes(),
		OrderNumber:             aggregate.OrderNumber(),
		CustomerID:              aggregate.CustomerID().Bytes(),
		StyleID:                 optionalBytes(aggregate.StyleID()),
		FabricSource:            aggregate.FabricSource().String(),
		FabricInventoryID:       optionalBytes(aggregate.FabricInventoryID()),
		MeasurementProfileID:    aggregate.MeasurementProfileID().Bytes(),
		AssignedWorkerID:        optionalBytes(aggregate.AssignedWorkerID()),
		AssignedManagerID:       optionalBytes(aggregate.AssignedManagerID()),
		BasePrice:               aggregate.BasePrice(),
		FabricCost:              aggregate.FabricCost(),
		AdditionalCharges:       aggregate.AdditionalCharges(),
		Discount:                aggregate.Discount(),
		TotalAmount:             aggregate.TotalAmount(),
		AmountPaid:              aggregate.AmountPaid(),
		Urgency:                 aggregate.Urgency().String(),
		Status:                  aggregate.Status().String(),
		EstimatedCompletionDate: aggregate.EstimatedCompletionDate(),
		Notes:                   aggregate.Notes(),
		Progress:                progress,
		CreatedAt:               aggregate.CreatedAt(),
		UpdatedAt:               aggregate.UpdatedAt(),
	}
}

func progressFromDomain(entry *order.ProgressEntry) ProgressEntryDTO {
	return ProgressEntryDTO{
		ID:          entry.ID().Bytes(),
		OrderID:     entry.OrderID().Bytes(),
		Stage:       entry.Stage().String(),
		CompletedBy: optionalBytes(entry.CompletedBy()),
		Notes:       entry.Notes(),
		Images:      entry.Images(),
		RecordedAt:  entry.RecordedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	measurementProfileID, err := kernel.UUIDFromBytes(dto.MeasurementProfileID[:])
	if err != nil {
		return nil, err
	}
	styleID, err := optionalUUID(dto.StyleID)
	if err != nil {
		return nil, err
	}
	fabricInventoryID, err := optionalUUID(dto.FabricInventoryID)
	if err != nil {
		return nil, err
	}
	assignedWorkerID, err := optionalUUID(dto.AssignedWorkerID)
	if err != nil {
		return nil, err
	}
	assignedManagerID, err := optionalUUID(dto.AssignedManagerID)
	if err != nil {
		return nil, err
	}
	fabricSource, err := order.FabricSourceFromString(dto.FabricSource)
	if err != nil {
		return nil, err
	}
	urgency, err := order.UrgencyFromString(dto.Urgency)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	progress := make([]*order.ProgressEntry, 0, len(dto.Progress))
	for _, entryDTO := range dto.Progress {
		entry, entryErr := progressToDomain(entryDTO)
		if entryErr != nil {
			return nil, entryErr
		}
		progress = append(progress, entry)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		measurementProfileID,
		styleID,
		fabricSource,
		fabricInventoryID,
		assignedWorkerID,
		assignedManagerID,
		dto.BasePrice,
		dto.FabricCost,
		dto.AdditionalCharges,
		dto.Discount,
		dto.TotalAmount,
		dto.AmountPaid,
		urgency,
		status,
		dto.EstimatedCompletionDate,
		dto.Notes,
		progress,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func progressToDomain(dto ProgressEntryDTO) (*order.ProgressEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	completedBy, err := optionalUUID(dto.CompletedBy)
	if err != nil {
		return nil, err
	}
	stage, err := order.StatusFromString(dto.Stage)
	if err != nil {
		return nil, err
	}

	return order.RestoreProgressEntry(id, orderID, stage, completedBy, dto.Notes, dto.Images, dto.RecordedAt)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil //nil represents an absent reference
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
