package order

import (
	"fmt"
	"time"

	"atelier/internal/pkg/errs"
)

// Urgency is the service tier chosen at creation. It fixes both the price
// multiplier and the due-date offset; neither is recomputed after creation.
type Urgency int

const (
	// UrgencyUnknown represents an invalid or undefined urgency.
	UrgencyUnknown Urgency = iota

	// UrgencyStandard is the default tier: no surcharge, 14-day due date.
	UrgencyStandard

	// UrgencyRush halves the lead time for a 1.5x surcharge.
	UrgencyRush

	// UrgencyExpress is the fastest tier: 3 days at double price.
	UrgencyExpress
)

func getUrgencyStrings() map[Urgency]string {
	return map[Urgency]string{
		UrgencyUnknown:  "unknown",
		UrgencyStandard: "standard",
		UrgencyRush:     "rush",
		UrgencyExpress:  "express",
	}
}

func getValidUrgencyStrings() map[Urgency]string {
	//nolint:exhaustive // UrgencyUnknown is intentionally excluded as it's invalid
	return map[Urgency]string{
		UrgencyStandard: "standard",
		UrgencyRush:     "rush",
		UrgencyExpress:  "express",
	}
}

// UrgencyFromString parses an urgency name as stored in persistence or
// received from external callers.
func UrgencyFromString(s string) (Urgency, error) {
	for urgency, str := range getValidUrgencyStrings() {
		if str == s {
			return urgency, nil
		}
	}
	return UrgencyUnknown, errs.NewValueIsInvalidErrorWithCause(
		"urgency is invalid", fmt.Errorf("%q is not a valid urgency", s))
}

// Validate rejects UrgencyUnknown and out-of-range values.
func (u Urgency) Validate() error {
	if _, ok := getValidUrgencyStrings()[u]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"urgency is invalid", fmt.Errorf("%d is not a valid urgency", u))
	}
	return nil
}

// String returns the lowercase urgency name.
func (u Urgency) String() string {
	if str, ok := getUrgencyStrings()[u]; ok {
		return str
	}
	return "unknown"
}

// Multiplier returns the total-price scaling factor for the tier.
func (u Urgency) Multiplier() float64 {
	switch u {
	case UrgencyRush:
		return 1.5
	case UrgencyExpress:
		return 2.0
	default:
		return 1.0
	}
}

// DueOffset returns how far from creation the estimated completion date
// lies for the tier.
func (u Urgency) DueOffset() time.Duration {
	switch u {
	case UrgencyRush:
		return 7 * 24 * time.Hour
	case UrgencyExpress:
		return 3 * 24 * time.Hour
	default:
		return 14 * 24 * time.Hour
	}
}
