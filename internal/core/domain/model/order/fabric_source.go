package order

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// FabricSource states where the fabric for an order comes from. Inventory
// fabric is priced from stock at creation; customer-provided fabric is
// priced outside this system and carries zero fabric cost here.
type FabricSource int

const (
	// FabricSourceUnknown represents an invalid or undefined source.
	FabricSourceUnknown FabricSource = iota

	// FabricSourceInventory draws fabric from the atelier's stock.
	FabricSourceInventory

	// FabricSourceCustomer means the customer supplies their own fabric.
	FabricSourceCustomer
)

func getValidFabricSourceStrings() map[FabricSource]string {
	//nolint:exhaustive // FabricSourceUnknown is intentionally excluded as it's invalid
	return map[FabricSource]string{
		FabricSourceInventory: "inventory",
		FabricSourceCustomer:  "customer",
	}
}

// FabricSourceFromString parses a fabric source name.
func FabricSourceFromString(s string) (FabricSource, error) {
	for source, str := range getValidFabricSourceStrings() {
		if str == s {
			return source, nil
		}
	}
	return FabricSourceUnknown, errs.NewValueIsInvalidErrorWithCause(
		"fabricSource is invalid", fmt.Errorf("%q is not a valid fabric source", s))
}

// Validate rejects FabricSourceUnknown and out-of-range values.
func (f FabricSource) Validate() error {
	if _, ok := getValidFabricSourceStrings()[f]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"fabricSource is invalid", fmt.Errorf("%d is not a valid fabric source", f))
	}
	return nil
}

// String returns the lowercase source name.
func (f FabricSource) String() string {
	if str, ok := getValidFabricSourceStrings()[f]; ok {
		return str
	}
	return "unknown"
}
