package ports

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for worker profiles
// and their rating history.
type WorkerRepository interface {
	// AddProfile persists a freshly provisioned worker profile.
	AddProfile(ctx context.Context, profile *worker.Profile) error

	// UpdateProfile persists changes to an existing profile.
	UpdateProfile(ctx context.Context, profile *worker.Profile) error

	// GetProfileByUserID retrieves the profile owned by a user.
	GetProfileByUserID(ctx context.Context, userID kernel.UUID) (*worker.Profile, error)

	// GetProfileByUserIDForUpdate retrieves the profile and locks its row
	// until the surrounding transaction ends. Capacity check-then-increment
	// and reputation recompute run under this lock.
	GetProfileByUserIDForUpdate(ctx context.Context, userID kernel.UUID) (*worker.Profile, error)

	// AddRating inserts an immutable rating row. A second rating for the
	// same order fails with an already-exists error.
	AddRating(ctx context.Context, rating *worker.Rating) error

	// GetRatingByOrderID retrieves the rating left on an order, or a
	// not-found error when the order is unrated.
	GetRatingByOrderID(ctx context.Context, orderID kernel.UUID) (*worker.Rating, error)

	// GetRatingsByWorkerID retrieves a worker's complete rating history.
	GetRatingsByWorkerID(ctx context.Context, workerID kernel.UUID) ([]*worker.Rating, error)
}
