package order

import (
	"errors"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

// ErrProgressEntryIsNotConstructed is returned when a ProgressEntry was not
// created through NewProgressEntry or RestoreProgressEntry.
var ErrProgressEntryIsNotConstructed = errors.New(
	"ProgressEntry must be created via NewProgressEntry or RestoreProgressEntry constructor")

// ProgressEntry is one immutable row of an order's progress ledger. Entries
// are appended when a stage is reached and never mutated or deleted; they
// form the durable audit trail behind the order's denormalized status.
type ProgressEntry struct {
	id          kernel.UUID
	orderID     kernel.UUID
	stage       Status
	completedBy *kernel.UUID
	notes       string
	images      []string
	recordedAt  time.Time

	guard guard.ConstructorGuard
}

// NewProgressEntry records that an order reached a stage. completedBy is
// nil for system-recorded entries such as the creation-time confirmation.
func NewProgressEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	stage Status,
	completedBy *kernel.UUID,
	notes string,
	images []string,
	recordedAt time.Time,
) (*ProgressEntry, error) {
	entry := &ProgressEntry{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setOrderID(orderID),
		entry.setStage(stage),
		entry.setCompletedBy(completedBy),
		entry.setRecordedAt(recordedAt),
	); err != nil {
		return nil, err
	}

	entry.notes = notes
	entry.images = images
	return entry, nil
}

// RestoreProgressEntry reconstructs a ledger row from persistence.
func RestoreProgressEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	stage Status,
	completedBy *kernel.UUID,
	notes string,
	images []string,
	recordedAt time.Time,
) (*ProgressEntry, error) {
	return NewProgressEntry(id, orderID, stage, completedBy, notes, images, recordedAt)
}

// Validate ensures the entry was created through a constructor.
func (p *ProgressEntry) Validate() error {
	if p == nil {
		return ErrProgressEntryIsNotConstructed
	}
	return p.guard.Validate(ErrProgressEntryIsNotConstructed)
}

// ID returns the ledger row identifier.
func (p *ProgressEntry) ID() kernel.UUID {
	return p.id
}

// OrderID returns the owning order's identifier.
func (p *ProgressEntry) OrderID() kernel.UUID {
	return p.orderID
}

// Stage returns the production stage this entry records.
func (p *ProgressEntry) Stage() Status {
	return p.stage
}

// CompletedBy returns the recording user, or nil for system entries.
func (p *ProgressEntry) CompletedBy() *kernel.UUID {
	return p.completedBy
}

// Notes returns the free-text note attached to the entry.
func (p *ProgressEntry) Notes() string {
	return p.notes
}

// Images returns references to photos attached to the entry.
func (p *ProgressEntry) Images() []string {
	return p.images
}

// RecordedAt returns when the stage was recorded.
func (p *ProgressEntry) RecordedAt() time.Time {
	return p.recordedAt
}

func (p *ProgressEntry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *ProgressEntry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *ProgressEntry) setStage(stage Status) error {
	if !stage.IsProgressStage() {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid", fmt.Errorf("%s is not a valid progress stage", stage))
	}
	p.stage = stage
	return nil
}

func (p *ProgressEntry) setCompletedBy(completedBy *kernel.UUID) error {
	if completedBy != nil {
		if err := completedBy.Validate(); err != nil {
			return err
		}
	}
	p.completedBy = completedBy
	return nil
}

func (p *ProgressEntry) setRecordedAt(recordedAt time.Time) error {
	if recordedAt.IsZero() {
		return errs.NewValueIsRequiredError("recordedAt")
	}
	p.recordedAt = recordedAt
	return nil
}
