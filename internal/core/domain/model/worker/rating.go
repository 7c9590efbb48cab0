package worker

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

// ErrRatingIsNotConstructed is returned when a Rating instance was not
// created through NewRating or RestoreRating.
var ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating or RestoreRating constructor")

// Rating score bounds.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating is the immutable review a customer leaves on a delivered order.
// At most one rating exists per order; uniqueness is enforced by the
// persistence layer inside the rating transaction.
type Rating struct {
	id         kernel.UUID
	orderID    kernel.UUID
	workerID   kernel.UUID
	customerID kernel.UUID
	score      int
	accuracy   int
	timeliness int
	quality    int
	comment    string
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// NewRating creates a rating with all four scores on the 1..5 scale.
func NewRating(
	id kernel.UUID,
	orderID kernel.UUID,
	workerID kernel.UUID,
	customerID kernel.UUID,
	score, accuracy, timeliness, quality int,
	comment string,
	createdAt time.Time,
) (*Rating, error) {
	r := &Rating{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setWorkerID(workerID),
		r.setCustomerID(customerID),
		r.setScore("rating", score, &r.score),
		r.setScore("accuracy", accuracy, &r.accuracy),
		r.setScore("timeliness", timeliness, &r.timeliness),
		r.setScore("quality", quality, &r.quality),
		r.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRating reconstructs a rating from persistence.
func RestoreRating(
	id kernel.UUID,
	orderID kernel.UUID,
	workerID kernel.UUID,
	customerID kernel.UUID,
	score, accuracy, timeliness, quality int,
	comment string,
	createdAt time.Time,
) (*Rating, error) {
	return NewRating(id, orderID, workerID, customerID, score, accuracy, timeliness, quality, comment, createdAt)
}

// Validate ensures the Rating was created through a constructor.
func (r *Rating) Validate() error {
	if r == nil {
		return ErrRatingIsNotConstructed
	}
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

// ID returns the rating's unique identifier.
func (r *Rating) ID() kernel.UUID {
	return r.id
}

// OrderID returns the rated order.
func (r *Rating) OrderID() kernel.UUID {
	return r.orderID
}

// WorkerID returns the rated worker's user identifier.
func (r *Rating) WorkerID() kernel.UUID {
	return r.workerID
}

// CustomerID returns the rating author.
func (r *Rating) CustomerID() kernel.UUID {
	return r.customerID
}

// Score returns the overall rating on the 1..5 scale.
func (r *Rating) Score() int {
	return r.score
}

// Accuracy returns the fit-accuracy score.
func (r *Rating) Accuracy() int {
	return r.accuracy
}

// Timeliness returns the on-time score.
func (r *Rating) Timeliness() int {
	return r.timeliness
}

// Quality returns the craftsmanship score.
func (r *Rating) Quality() int {
	return r.quality
}

// Comment returns the optional free-text review.
func (r *Rating) Comment() string {
	return r.comment
}

// CreatedAt returns when the rating was left.
func (r *Rating) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Rating) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rating) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Rating) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	r.workerID = workerID
	return nil
}

func (r *Rating) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	r.customerID = customerID
	return nil
}

func (r *Rating) setScore(name string, value int, target *int) error {
	if value < MinScore || value > MaxScore {
		return errs.NewValueIsOutOfRangeError(name, value, MinScore, MaxScore)
	}
	*target = value
	return nil
}

func (r *Rating) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	r.createdAt = createdAt
	return nil
}
