package worker

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

// ErrProfileIsNotConstructed is returned when a Profile instance was not
// created through NewProfile or RestoreProfile.
var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile or RestoreProfile constructor")

// DefaultMaxWorkload is the assignment ceiling given to fresh profiles.
const DefaultMaxWorkload = 5

// Profile is the aggregate root for a worker's production state: current
// assignment load against a hard ceiling, the self-reported availability
// flag, and the reputation derived from ratings.
//
// Invariants:
//   - 0 <= currentWorkload, and TakeAssignment never pushes it past
//     maxWorkload
//   - badges form a set and only ever grow
//   - aggregate rating is whatever the rating engine last computed from
//     the full rating history
type Profile struct {
	id                   kernel.UUID
	userID               kernel.UUID
	specializations      []string
	rating               float64
	totalCompletedOrders int
	badges               []Badge
	isAvailable          bool
	currentWorkload      int
	maxWorkload          int
	createdAt            time.Time
	updatedAt            time.Time

	guard guard.ConstructorGuard
}

// NewProfile provisions a fresh profile with the standard defaults: no
// reputation, no badges, available, zero workload against the default
// ceiling.
func NewProfile(id kernel.UUID, userID kernel.UUID, now time.Time) (*Profile, error) {
	p := &Profile{
		isAvailable: true,
		maxWorkload: DefaultMaxWorkload,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setUserID(userID),
		p.setCreatedAt(now),
	); err != nil {
		return nil, err
	}

	p.updatedAt = now
	return p, nil
}

// RestoreProfile reconstructs a profile from persistence.
func RestoreProfile(
	id kernel.UUID,
	userID kernel.UUID,
	specializations []string,
	rating float64,
	totalCompletedOrders int,
	badges []Badge,
	isAvailable bool,
	currentWorkload int,
	maxWorkload int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Profile, error) {
	p := &Profile{
		specializations: specializations,
		isAvailable:     isAvailable,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setUserID(userID),
		p.setWorkload(currentWorkload, maxWorkload),
		p.setReputation(rating, totalCompletedOrders),
		p.setBadges(badges),
		p.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	p.updatedAt = updatedAt
	return p, nil
}

// Validate ensures the Profile was created through a constructor.
func (p *Profile) Validate() error {
	if p == nil {
		return ErrProfileIsNotConstructed
	}
	return p.guard.Validate(ErrProfileIsNotConstructed)
}

// IsEqual compares two profiles by identity.
func (p *Profile) IsEqual(other *Profile) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the profile's unique identifier.
func (p *Profile) ID() kernel.UUID {
	return p.id
}

// UserID returns the owning user's identifier.
func (p *Profile) UserID() kernel.UUID {
	return p.userID
}

// Specializations returns the worker's declared skills.
func (p *Profile) Specializations() []string {
	return p.specializations
}

// Rating returns the aggregate rating last computed from history.
func (p *Profile) Rating() float64 {
	return p.rating
}

// TotalCompletedOrders returns the lifetime completed-order count.
func (p *Profile) TotalCompletedOrders() int {
	return p.totalCompletedOrders
}

// Badges returns the earned badge set.
func (p *Profile) Badges() []Badge {
	return p.badges
}

// HasBadge reports whether the badge was already earned.
func (p *Profile) HasBadge(badge Badge) bool {
	for _, b := range p.badges {
		if b == badge {
			return true
		}
	}
	return false
}

// IsAvailable returns the self-reported availability flag. It is
// informational only and never gates assignment.
func (p *Profile) IsAvailable() bool {
	return p.isAvailable
}

// CurrentWorkload returns the number of open assignments.
func (p *Profile) CurrentWorkload() int {
	return p.currentWorkload
}

// MaxWorkload returns the hard assignment ceiling.
func (p *Profile) MaxWorkload() int {
	return p.maxWorkload
}

// CreatedAt returns the provisioning timestamp.
func (p *Profile) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

// TakeAssignment claims one unit of capacity. The caller must hold the
// profile's row lock for the duration of the surrounding transaction so
// two concurrent assignments cannot both pass the ceiling check.
func (p *Profile) TakeAssignment(now time.Time) error {
	if p.currentWorkload >= p.maxWorkload {
		return errs.NewCapacityExceededError(p.currentWorkload, p.maxWorkload)
	}

	p.currentWorkload++
	p.updatedAt = now
	return nil
}

// ReleaseAssignment returns one unit of capacity when an order reaches a
// terminal state. The count never goes below zero, so releasing an
// already-empty profile is a no-op rather than an error.
func (p *Profile) ReleaseAssignment(now time.Time) {
	if p.currentWorkload > 0 {
		p.currentWorkload--
		p.updatedAt = now
	}
}

// ApplyReputation stores the freshly recomputed aggregate rating and
// counts the rated order as completed.
func (p *Profile) ApplyReputation(aggregateRating float64, now time.Time) error {
	if aggregateRating < 0 || aggregateRating > MaxScore {
		return errs.NewValueIsOutOfRangeError("rating", aggregateRating, 0, MaxScore)
	}

	p.rating = aggregateRating
	p.totalCompletedOrders++
	p.updatedAt = now
	return nil
}

// AwardBadge adds a badge with set semantics. It reports whether the badge
// was newly earned; re-awarding an existing badge changes nothing.
func (p *Profile) AwardBadge(badge Badge, now time.Time) (bool, error) {
	if err := badge.Validate(); err != nil {
		return false, err
	}
	if p.HasBadge(badge) {
		return false, nil
	}

	p.badges = append(p.badges, badge)
	p.updatedAt = now
	return true, nil
}

// SetAvailability records the worker's self-reported availability.
func (p *Profile) SetAvailability(isAvailable bool, now time.Time) {
	p.isAvailable = isAvailable
	p.updatedAt = now
}

func (p *Profile) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Profile) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	p.userID = userID
	return nil
}

func (p *Profile) setWorkload(current, max int) error {
	if max <= 0 {
		return errs.NewValueIsInvalidError("maxWorkload")
	}
	if current < 0 || current > max {
		return errs.NewValueIsOutOfRangeError("currentWorkload", current, 0, max)
	}
	p.currentWorkload = current
	p.maxWorkload = max
	return nil
}

func (p *Profile) setReputation(rating float64, totalCompletedOrders int) error {
	if rating < 0 || rating > MaxScore {
		return errs.NewValueIsOutOfRangeError("rating", rating, 0, MaxScore)
	}
	if totalCompletedOrders < 0 {
		return errs.NewValueIsInvalidError("totalCompletedOrders")
	}
	p.rating = rating
	p.totalCompletedOrders = totalCompletedOrders
	return nil
}

func (p *Profile) setBadges(badges []Badge) error {
	for _, badge := range badges {
		if err := badge.Validate(); err != nil {
			return err
		}
	}
	p.badges = badges
	return nil
}

func (p *Profile) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	p.createdAt = createdAt
	return nil
}
