package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Pricing constants applied at creation.
const (
	// FlatCustomOrderFee is the base price for orders not referencing a
	// catalog style.
	FlatCustomOrderFee = 5000.0

	// FabricYardageMeters is the standard yardage assumption used to price
	// inventory-sourced fabric.
	FabricYardageMeters = 2.5
)

// FormatOrderNumber renders the human-readable order number for a
// year-scoped sequence value, e.g. "ORD-2026-000042".
func FormatOrderNumber(year, sequence int) string {
	return fmt.Sprintf("ORD-%d-%06d", year, sequence)
}

// Order is the aggregate root for a tailoring order.
//
// Invariants:
//   - orderNumber, customerId, and the pricing breakdown are fixed at
//     creation; totalAmount = (basePrice + fabricCost) * urgency multiplier
//     and is never recomputed
//   - balance = totalAmount - amountPaid after every payment application
//   - status always equals the stage of the latest ledger entry, except
//     for pending (pre-confirmation) and cancelled
//   - once terminal, no progress, assignment, or cancellation is accepted
type Order struct {
	id                   kernel.UUID
	orderNumber          string
	customerID           kernel.UUID
	styleID              *kernel.UUID
	fabricSource         FabricSource
	fabricInventoryID    *kernel.UUID
	measurementProfileID kernel.UUID
	assignedWorkerID     *kernel.UUID
	assignedManagerID    *kernel.UUID

	basePrice         float64
	fabricCost        float64
	additionalCharges float64
	discount          float64
	totalAmount       float64
	amountPaid        float64
	balance           float64

	urgency                 Urgency
	status                  Status
	estimatedCompletionDate time.Time
	notes                   string
	progress                []*ProgressEntry

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order at status pending with its pricing breakdown
// computed from the resolved base price, the resolved fabric cost, and the
// urgency tier. The first ledger entry (stage confirmed) is appended
// immediately, so a fresh order already carries one progress row.
//
// basePrice and fabricCost arrive already resolved: the caller looks up the
// style price (or applies FlatCustomOrderFee) and prices inventory fabric
// at unit price times FabricYardageMeters.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	measurementProfileID kernel.UUID,
	styleID *kernel.UUID,
	fabricSource FabricSource,
	fabricInventoryID *kernel.UUID,
	urgency Urgency,
	basePrice float64,
	fabricCost float64,
	notes string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status: StatusPending,
		notes:  notes,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setMeasurementProfileID(measurementProfileID),
		o.setStyleID(styleID),
		o.setFabric(fabricSource, fabricInventoryID),
		o.setUrgency(urgency),
		o.setPricing(basePrice, fabricCost),
		o.setCreatedAt(now),
	); err != nil {
		return nil, err
	}

	o.totalAmount = (o.basePrice + o.fabricCost) * o.urgency.Multiplier()
	o.balance = o.totalAmount
	o.estimatedCompletionDate = now.Add(o.urgency.DueOffset())
	o.updatedAt = now

	entry, err := NewProgressEntry(kernel.NewUUID(), o.id, StatusConfirmed, nil, "", nil, now)
	if err != nil {
		return nil, err
	}
	o.progress = append(o.progress, entry)

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence with its stored
// pricing, assignments, status, and ledger.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	measurementProfileID kernel.UUID,
	styleID *kernel.UUID,
	fabricSource FabricSource,
	fabricInventoryID *kernel.UUID,
	assignedWorkerID *kernel.UUID,
	assignedManagerID *kernel.UUID,
	basePrice float64,
	fabricCost float64,
	additionalCharges float64,
	discount float64,
	totalAmount float64,
	amountPaid float64,
	urgency Urgency,
	status Status,
	estimatedCompletionDate time.Time,
	notes string,
	progress []*ProgressEntry,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setMeasurementProfileID(measurementProfileID),
		o.setStyleID(styleID),
		o.setFabric(fabricSource, fabricInventoryID),
		o.setUrgency(urgency),
		o.setPricing(basePrice, fabricCost),
		o.setStatus(status),
		o.setAssignedWorkerID(assignedWorkerID),
		o.setAssignedManagerID(assignedManagerID),
		o.setCreatedAt(createdAt),
		o.setProgress(progress),
	); err != nil {
		return nil, err
	}

	o.additionalCharges = additionalCharges
	o.discount = discount
	o.totalAmount = totalAmount
	o.amountPaid = amountPaid
	o.balance = totalAmount - amountPaid
	o.estimatedCompletionDate = estimatedCompletionDate
	o.updatedAt = updatedAt

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the immutable human-readable number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// StyleID returns the referenced catalog style, or nil for custom orders.
func (o *Order) StyleID() *kernel.UUID {
	return o.styleID
}

// FabricSource returns where the fabric comes from.
func (o *Order) FabricSource() FabricSource {
	return o.fabricSource
}

// FabricInventoryID returns the inventory item the fabric was priced from,
// or nil for customer-provided fabric.
func (o *Order) FabricInventoryID() *kernel.UUID {
	return o.fabricInventoryID
}

// MeasurementProfileID returns the measurement profile bound at creation.
func (o *Order) MeasurementProfileID() kernel.UUID {
	return o.measurementProfileID
}

// AssignedWorkerID returns the assigned worker, or nil if unassigned.
func (o *Order) AssignedWorkerID() *kernel.UUID {
	return o.assignedWorkerID
}

// AssignedManagerID returns the manager who made the assignment, or nil.
func (o *Order) AssignedManagerID() *kernel.UUID {
	return o.assignedManagerID
}

// BasePrice returns the style or flat-fee component of the price.
func (o *Order) BasePrice() float64 {
	return o.basePrice
}

// FabricCost returns the fabric component of the price.
func (o *Order) FabricCost() float64 {
	return o.fabricCost
}

// AdditionalCharges returns extra charges applied after creation.
func (o *Order) AdditionalCharges() float64 {
	return o.additionalCharges
}

// Discount returns the discount applied to the order.
func (o *Order) Discount() float64 {
	return o.discount
}

// TotalAmount returns the creation-time total.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// AmountPaid returns the sum of applied payments.
func (o *Order) AmountPaid() float64 {
	return o.amountPaid
}

// Balance returns totalAmount minus amountPaid.
func (o *Order) Balance() float64 {
	return o.balance
}

// Urgency returns the service tier chosen at creation.
func (o *Order) Urgency() Urgency {
	return o.urgency
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// EstimatedCompletionDate returns the due date fixed at creation.
func (o *Order) EstimatedCompletionDate() time.Time {
	return o.estimatedCompletionDate
}

// Notes returns the customer's creation-time notes.
func (o *Order) Notes() string {
	return o.notes
}

// Progress returns the append-only ledger, oldest first.
func (o *Order) Progress() []*ProgressEntry {
	return o.progress
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsOwnedBy reports whether the user is the order's customer.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.customerID.IsEqual(userID)
}

// IsAssignedTo reports whether the user is the assigned worker.
func (o *Order) IsAssignedTo(userID kernel.UUID) bool {
	return o.assignedWorkerID != nil && o.assignedWorkerID.IsEqual(userID)
}

// ViewableBy reports whether the actor may read this order: managers and
// admins always, the owning customer, and the assigned worker.
func (o *Order) ViewableBy(actor *user.User) bool {
	if actor == nil {
		return false
	}
	switch actor.Role() {
	case user.RoleManager, user.RoleAdmin:
		return true
	case user.RoleCustomer:
		return o.IsOwnedBy(actor.ID())
	case user.RoleWorker:
		return o.IsAssignedTo(actor.ID())
	default:
		return false
	}
}

// ProgressRecordableBy reports whether the actor may append progress:
// managers and admins always, workers only on their own assignment.
func (o *Order) ProgressRecordableBy(actor *user.User) bool {
	if actor == nil {
		return false
	}
	switch actor.Role() {
	case user.RoleManager, user.RoleAdmin:
		return true
	case user.RoleWorker:
		return o.IsAssignedTo(actor.ID())
	default:
		return false
	}
}

// RecordProgress appends a ledger entry for the target stage and projects
// the status onto it. Terminal orders reject further progress; any
// production stage is otherwise accepted as a target.
func (o *Order) RecordProgress(
	stage Status,
	completedBy *kernel.UUID,
	notes string,
	images []string,
	now time.Time,
) error {
	newStatus, err := o.status.Advance(stage)
	if err != nil {
		return err
	}

	entry, err := NewProgressEntry(kernel.NewUUID(), o.id, stage, completedBy, notes, images, now)
	if err != nil {
		return err
	}

	o.progress = append(o.progress, entry)
	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Cancel moves the order to the cancelled terminal state. Cancellation is
// a status change only; it writes no ledger entry.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// AssignWorker binds the order to a worker. managerID stamps the assigning
// manager and is nil when an admin performs the assignment. Reassignment
// of a non-terminal order is allowed.
func (o *Order) AssignWorker(workerID kernel.UUID, managerID *kernel.UUID, now time.Time) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("order", o.status.String())
	}
	if err := o.setAssignedManagerID(managerID); err != nil {
		return err
	}

	o.assignedWorkerID = &workerID
	o.updatedAt = now
	return nil
}

// ApplyPayment records a payment against the balance. The payment amount
// must be positive and must not exceed the outstanding balance.
func (o *Order) ApplyPayment(amount float64, now time.Time) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid", fmt.Errorf("%v is not greater than 0", amount))
	}
	if amount > o.balance {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, o.balance)
	}

	o.amountPaid += amount
	o.balance = o.totalAmount - o.amountPaid
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setMeasurementProfileID(measurementProfileID kernel.UUID) error {
	if err := measurementProfileID.Validate(); err != nil {
		return err
	}
	o.measurementProfileID = measurementProfileID
	return nil
}

func (o *Order) setStyleID(styleID *kernel.UUID) error {
	if styleID != nil {
		if err := styleID.Validate(); err != nil {
			return err
		}
	}
	o.styleID = styleID
	return nil
}

// setFabric keeps the source and the inventory reference consistent:
// inventory-sourced fabric requires the inventory item, customer-provided
// fabric must not carry one.
func (o *Order) setFabric(source FabricSource, fabricInventoryID *kernel.UUID) error {
	if err := source.Validate(); err != nil {
		return err
	}
	if source == FabricSourceInventory && fabricInventoryID == nil {
		return errs.NewValueIsRequiredError("fabricInventoryId")
	}
	if source == FabricSourceCustomer && fabricInventoryID != nil {
		return errs.NewValueIsInvalidError("fabricInventoryId")
	}
	if fabricInventoryID != nil {
		if err := fabricInventoryID.Validate(); err != nil {
			return err
		}
	}

	o.fabricSource = source
	o.fabricInventoryID = fabricInventoryID
	return nil
}

func (o *Order) setUrgency(urgency Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}
	o.urgency = urgency
	return nil
}

func (o *Order) setPricing(basePrice, fabricCost float64) error {
	if basePrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"basePrice is invalid", fmt.Errorf("%v is not greater than 0", basePrice))
	}
	if fabricCost < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"fabricCost is invalid", fmt.Errorf("%v is negative", fabricCost))
	}
	o.basePrice = basePrice
	o.fabricCost = fabricCost
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setAssignedWorkerID(assignedWorkerID *kernel.UUID) error {
	if assignedWorkerID != nil {
		if err := assignedWorkerID.Validate(); err != nil {
			return err
		}
	}
	o.assignedWorkerID = assignedWorkerID
	return nil
}

func (o *Order) setAssignedManagerID(assignedManagerID *kernel.UUID) error {
	if assignedManagerID != nil {
		if err := assignedManagerID.Validate(); err != nil {
			return err
		}
	}
	o.assignedManagerID = assignedManagerID
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setProgress(progress []*ProgressEntry) error {
	for _, entry := range progress {
		if err := entry.Validate(); err != nil {
			return err
		}
	}
	o.progress = progress
	return nil
}
