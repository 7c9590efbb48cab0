package workerrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/worker"
	"atelier/internal/pkg/errs"
)

// GormWorkerRepository implements ports.WorkerRepository using GORM.
type GormWorkerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkerRepository creates a new GORM worker repository.
func NewGormWorkerRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkerRepository {
	return &GormWorkerRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddProfile saves a freshly provisioned profile.
func (r *GormWorkerRepository) AddProfile(ctx context.Context, profile *worker.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := profileFromDomain(profile)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("workerProfile", profile.UserID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(profile.ID(), profile)
	return nil
}

// UpdateProfile saves profile changes.
func (r *GormWorkerRepository) UpdateProfile(ctx context.Context, profile *worker.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := profileFromDomain(profile)
	result := r.db.WithContext(ctx).
		Model(&ProfileDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("workerProfileId", profile.ID().String())
	}

	r.tracker.TrackAggregate(profile.ID(), profile)
	return nil
}

// GetProfileByUserID retrieves the profile owned by a user.
func (r *GormWorkerRepository) GetProfileByUserID(ctx context.Context, userID kernel.UUID) (*worker.Profile, error) {
	return r.getProfile(ctx, userID, false)
}

// GetProfileByUserIDForUpdate retrieves the profile and locks its row until
// the surrounding transaction ends. The capacity check-then-increment and
// the reputation recompute both run under this lock.
func (r *GormWorkerRepository) GetProfileByUserIDForUpdate(
	ctx context.Context,
	userID kernel.UUID,
) (*worker.Profile, error) {
	return r.getProfile(ctx, userID, true)
}

func (r *GormWorkerRepository) getProfile(
	ctx context.Context,
	userID kernel.UUID,
	forUpdate bool,
) (*worker.Profile, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto ProfileDTO
	if err := db.First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("userId", userID.String())
		}
		return nil, err
	}

	return profileToDomain(dto)
}

// AddRating inserts an immutable rating row. The unique index on order_id
// turns a concurrent duplicate into an already-exists error.
func (r *GormWorkerRepository) AddRating(ctx context.Context, rating *worker.Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}

	dto := ratingFromDomain(rating)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("rating", rating.OrderID().String())
		}
		return err
	}

	return nil
}

// GetRatingByOrderID retrieves the rating left on an order.
func (r *GormWorkerRepository) GetRatingByOrderID(ctx context.Context, orderID kernel.UUID) (*worker.Rating, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto RatingDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
		}
		return nil, err
	}

	return ratingToDomain(dto)
}

// GetRatingsByWorkerID retrieves a worker's complete rating history,
// oldest first.
func (r *GormWorkerRepository) GetRatingsByWorkerID(
	ctx context.Context,
	workerID kernel.UUID,
) ([]*worker.Rating, error) {
	if err := workerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RatingDTO
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	ratings := make([]*worker.Rating, 0, len(dtos))
	for _, dto := range dtos {
		rating, dtoErr := ratingToDomain(dto)
		if dtoErr != nil {
			return nil, dtoErr
		}
		ratings = append(ratings, rating)
	}

	return ratings, nil
}
