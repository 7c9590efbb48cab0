// Package workerrepo persists worker profiles and their immutable rating
// history.
package workerrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/worker"
)

// ProfileDTO represents the database structure for persisting worker
// profiles.
type ProfileDTO struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null"`
	Specializations      pq.StringArray `gorm:"type:text[]"`
	Rating               float64
	TotalCompletedOrders int
	Badges               pq.StringArray `gorm:"type:text[]"`
	IsAvailable          bool
	CurrentWorkload      int
	MaxWorkload          int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName overrides GORM's default naming to use "worker_profiles".
func (ProfileDTO) TableName() string {
	return "worker_profiles"
}

// RatingDTO represents one immutable rating row. The unique index on
// order_id enforces one rating per order at the storage level.
type RatingDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	WorkerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null"`
	Score      int       `gorm:"not null"`
	Accuracy   int       `gorm:"not null"`
	Timeliness int       `gorm:"not null"`
	Quality    int       `gorm:"not null"`
	Comment    string
	CreatedAt  time.Time
}

// TableName overrides GORM's default naming to use "worker_ratings".
func (RatingDTO) TableName() string {
	return "worker_ratings"
}

func profileFromDomain(profile *worker.Profile) ProfileDTO {
	badges := make(pq.StringArray, 0, len(profile.Badges()))
	for _, badge := range profile.Badges() {
		badges = append(badges, badge.String())
	}

	return ProfileDTO{
		ID:                   profile.ID().Bytes(),
		UserID:               profile.UserID().Bytes(),
		Specializations:      profile.Specializations(),
		Rating:               profile.Rating(),
		TotalCompletedOrders: profile.TotalCompletedOrders(),
		Badges:               badges,
		IsAvailable:          profile.IsAvailable(),
		CurrentWorkload:      profile.CurrentWorkload(),
		MaxWorkload:          profile.MaxWorkload(),
		CreatedAt:            profile.CreatedAt(),
		UpdatedAt:            profile.UpdatedAt(),
	}
}

func profileToDomain(dto ProfileDTO) (*worker.Profile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	badges := make([]worker.Badge, 0, len(dto.Badges))
	for _, name := range dto.Badges {
		badge, badgeErr := worker.BadgeFromString(name)
		if badgeErr != nil {
			return nil, badgeErr
		}
		badges = append(badges, badge)
	}

	return worker.RestoreProfile(
		id,
		userID,
		dto.Specializations,
		dto.Rating,
		dto.TotalCompletedOrders,
		badges,
		dto.IsAvailable,
		dto.CurrentWorkload,
		dto.MaxWorkload,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func ratingFromDomain(rating *worker.Rating) RatingDTO {
	return RatingDTO{
		ID:         rating.ID().Bytes(),
		OrderID:    rating.OrderID().Bytes(),
		WorkerID:   rating.WorkerID().Bytes(),
		CustomerID: rating.CustomerID().Bytes(),
		Score:      rating.Score(),
		Accuracy:   rating.Accuracy(),
		Timeliness: rating.Timeliness(),
		Quality:    rating.Quality(),
		Comment:    rating.Comment(),
		CreatedAt:  rating.CreatedAt(),
	}
}

func ratingToDomain(dto RatingDTO) (*worker.Rating, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	workerID, err := kernel.UUIDFromBytes(dto.WorkerID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return worker.RestoreRating(
		id,
		orderID,
		workerID,
		customerID,
		dto.Score,
		dto.Accuracy,
		dto.Timeliness,
		dto.Quality,
		dto.Comment,
		dto.CreatedAt,
	)
}
