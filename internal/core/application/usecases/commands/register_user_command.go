package commands

import (
	"errors"
	"strings"

	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand represents a self-service registration request.
// Fresh accounts always start as active customers.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	externalID string
	name       string
	email      string

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand creates a command to register a new identity.
func NewRegisterUserCommand(externalID, name, email string) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setExternalID(externalID),
		cmd.setName(name),
		cmd.setEmail(email),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// ExternalID returns the identity-provider subject to register.
func (c RegisterUserCommand) ExternalID() string {
	return c.externalID
}

// Name returns the display name.
func (c RegisterUserCommand) Name() string {
	return c.name
}

// Email returns the email address.
func (c RegisterUserCommand) Email() string {
	return c.email
}

func (c *RegisterUserCommand) setExternalID(externalID string) error {
	if strings.TrimSpace(externalID) == "" {
		return errs.NewValueIsRequiredError("externalID")
	}
	c.externalID = externalID
	return nil
}

func (c *RegisterUserCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *RegisterUserCommand) setEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errs.NewValueIsRequiredError("email")
	}
	c.email = email
	return nil
}
