package orderrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its initial ledger entries.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves order changes and inserts any ledger entries appended since
// the aggregate was loaded. Existing ledger rows are never touched; the
// insert skips conflicts on already-persisted entry IDs.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	progress := dto.Progress
	dto.Progress = nil

	// Select("*") writes zero-valued fields too, so references the domain
	// cleared (a manager stamp dropped on reassignment) become NULL instead
	// of keeping their stale value.
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at", "Progress").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
	}

	if len(progress) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&progress).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its full ledger and locks the order row for
// the duration of the surrounding transaction.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	if err = r.loadProgress(ctx, &dto); err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// NextOrderSequence claims the next number in the year's sequence with an
// atomic upsert, so concurrent claims never collide.
func (r *GormOrderRepository) NextOrderSequence(ctx context.Context, year int) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO order_counters (year, last_value)
		VALUES (?, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = order_counters.last_value + 1
		RETURNING last_value
	`, year).Scan(&next).Error
	if err != nil {
		return 0, err
	}

	return next, nil
}

// GetActiveDueBefore retrieves non-terminal orders due before the deadline,
// soonest first. Ledgers are not loaded: the reminder job only needs the
// header fields.
func (r *GormOrderRepository) GetActiveDueBefore(ctx context.Context, deadline time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("estimated_completion_date < ?", deadline).
		Where("status NOT IN (?, ?)", order.StatusDelivered.String(), order.StatusCancelled.String()).
		Order("estimated_completion_date").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, dtoErr := toDomain(dto)
		if dtoErr != nil {
			return nil, dtoErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

func (r *GormOrderRepository) loadProgress(ctx context.Context, dto *OrderDTO) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("recorded_at, id").
		Find(&dto.Progress).Error
}
