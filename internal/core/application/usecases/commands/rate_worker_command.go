package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/worker"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrRateWorkerCommandIsNotConstructed = errors.New(
	"RateWorkerCommand must be created via NewRateWorkerCommand constructor",
)

// RateWorkerCommand represents a customer's review of a delivered order.
type RateWorkerCommand struct { //nolint:recvcheck //using for validation
	actorExternalID string
	orderID         kernel.UUID
	score           int
	accuracy        int
	timeliness      int
	quality         int
	comment         string

	guard guard.ConstructorGuard
}

// NewRateWorkerCommand creates a command to rate the worker of an order.
// All four scores must be on the 1..5 scale.
func NewRateWorkerCommand(
	actorExternalID string,
	orderID kernel.UUID,
	score, accuracy, timeliness, quality int,
	comment string,
) (RateWorkerCommand, error) {
	cmd := RateWorkerCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorExternalID(actorExternalID),
		cmd.setOrderID(orderID),
		cmd.setScore("rating", score, &cmd.score),
		cmd.setScore("accuracy", accuracy, &cmd.accuracy),
		cmd.setScore("timeliness", timeliness, &cmd.timeliness),
		cmd.setScore("quality", quality, &cmd.quality),
	); err != nil {
		return RateWorkerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateWorkerCommand) Validate() error {
	return c.guard.Validate(ErrRateWorkerCommandIsNotConstructed)
}

// ActorExternalID returns the caller's external identity.
func (c RateWorkerCommand) ActorExternalID() string {
	return c.actorExternalID
}

// OrderID returns the order being rated.
func (c RateWorkerCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Score returns the overall rating.
func (c RateWorkerCommand) Score() int {
	return c.score
}

// Accuracy returns the fit-accuracy score.
func (c RateWorkerCommand) Accuracy() int {
	return c.accuracy
}

// Timeliness returns the on-time score.
func (c RateWorkerCommand) Timeliness() int {
	return c.timeliness
}

// Quality returns the craftsmanship score.
func (c RateWorkerCommand) Quality() int {
	return c.quality
}

// Comment returns the optional free-text review.
func (c RateWorkerCommand) Comment() string {
	return c.comment
}

func (c *RateWorkerCommand) setActorExternalID(actorExternalID string) error {
	if actorExternalID == "" {
		return errs.NewValueIsRequiredError("actorExternalID")
	}
	c.actorExternalID = actorExternalID
	return nil
}

func (c *RateWorkerCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RateWorkerCommand) setScore(name string, value int, target *int) error {
	if value < worker.MinScore || value > worker.MaxScore {
		return errs.NewValueIsOutOfRangeError(name, value, worker.MinScore, worker.MaxScore)
	}
	*target = value
	return nil
}
