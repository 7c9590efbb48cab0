package services

import (
	"time"

	"atelier/internal/core/domain/model/worker"
)

// Badge derivation thresholds.
const (
	// BadgeScoreThreshold is the minimum qualifying score or average.
	BadgeScoreThreshold = 4.5

	// BadgeCountThreshold is how many qualifying ratings the volume-based
	// badges require.
	BadgeCountThreshold = 10
)

// RatingBoard is a domain service that recomputes a worker's reputation
// from their complete rating history.
//
// The aggregate rating is a full recompute over all ratings, not an
// incremental update; at this system's scale the O(n) cost is acceptable
// and it keeps the stored aggregate trivially consistent with history.
// Badge evaluation is idempotent and additive-only: it reports which
// badges the history currently qualifies for, and the profile's set
// semantics guarantee a badge is added at most once and never removed.
type RatingBoard struct{}

// NewRatingBoard creates a new RatingBoard instance.
func NewRatingBoard() RatingBoard {
	return RatingBoard{}
}

// AggregateRating returns the arithmetic mean of the overall score across
// all ratings. An empty history yields zero.
func (rb RatingBoard) AggregateRating(ratings []*worker.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Score()
	}
	return float64(sum) / float64(len(ratings))
}

// QualifyingBadges evaluates the badge rules against the full history:
//
//   - customer_favorite: aggregate rating at or above the threshold
//   - fastest: at least ten ratings with timeliness at or above it
//   - most_accurate: at least ten ratings with accuracy at or above it
func (rb RatingBoard) QualifyingBadges(ratings []*worker.Rating) []worker.Badge {
	var badges []worker.Badge

	if rb.AggregateRating(ratings) >= BadgeScoreThreshold && len(ratings) > 0 {
		badges = append(badges, worker.BadgeCustomerFavorite)
	}

	timely := 0
	accurate := 0
	for _, r := range ratings {
		if float64(r.Timeliness()) >= BadgeScoreThreshold {
			timely++
		}
		if float64(r.Accuracy()) >= BadgeScoreThreshold {
			accurate++
		}
	}

	if timely >= BadgeCountThreshold {
		badges = append(badges, worker.BadgeFastest)
	}
	if accurate >= BadgeCountThreshold {
		badges = append(badges, worker.BadgeMostAccurate)
	}

	return badges
}

// Reapply recomputes the aggregate from history, stores it on the profile
// together with the completed-order increment, and awards any newly
// qualifying badges.
func (rb RatingBoard) Reapply(profile *worker.Profile, ratings []*worker.Rating, now time.Time) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	if err := profile.ApplyReputation(rb.AggregateRating(ratings), now); err != nil {
		return err
	}

	for _, badge := range rb.QualifyingBadges(ratings) {
		if _, err := profile.AwardBadge(badge, now); err != nil {
			return err
		}
	}

	return nil
}
