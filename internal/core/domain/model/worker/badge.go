package worker

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// Badge is a permanent recognition earned from rating history. Badges are
// additive-only: once earned they are never revoked, even if the
// qualifying average later drops.
type Badge int

const (
	// BadgeUnknown represents an invalid or undefined badge.
	BadgeUnknown Badge = iota

	// BadgeCustomerFavorite marks an aggregate rating of 4.5 or above.
	BadgeCustomerFavorite

	// BadgeFastest marks at least ten ratings with high timeliness.
	BadgeFastest

	// BadgeMostAccurate marks at least ten ratings with high accuracy.
	BadgeMostAccurate
)

func getValidBadgeStrings() map[Badge]string {
	//nolint:exhaustive // BadgeUnknown is intentionally excluded as it's invalid
	return map[Badge]string{
		BadgeCustomerFavorite: "customer_favorite",
		BadgeFastest:          "fastest",
		BadgeMostAccurate:     "most_accurate",
	}
}

// BadgeFromString parses a badge name as stored in persistence.
func BadgeFromString(s string) (Badge, error) {
	for badge, str := range getValidBadgeStrings() {
		if str == s {
			return badge, nil
		}
	}
	return BadgeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"badge is invalid", fmt.Errorf("%q is not a valid badge", s))
}

// Validate rejects BadgeUnknown and out-of-range values.
func (b Badge) Validate() error {
	if _, ok := getValidBadgeStrings()[b]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"badge is invalid", fmt.Errorf("%d is not a valid badge", b))
	}
	return nil
}

// String returns the snake_case badge name.
func (b Badge) String() string {
	if str, ok := getValidBadgeStrings()[b]; ok {
		return str
	}
	return "unknown"
}
