// Package userrepo persists user aggregates, handling the conversion
// between the domain model and its relational representation.
package userrepo

import (
	"time"

	"github.com/google/uuid"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/user"
)

// UserDTO represents the database structure for persisting user aggregates.
type UserDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExternalID string    `gorm:"uniqueIndex;not null"`
	Name       string    `gorm:"not null"`
	Email      string    `gorm:"not null"`
	Role       string    `gorm:"not null"`
	Status     string    `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(aggregate *user.User) UserDTO {
	return UserDTO{
		ID:         aggregate.ID().Bytes(),
		ExternalID: aggregate.ExternalID(),
		Name:       aggregate.Name(),
		Email:      aggregate.Email(),
		Role:       aggregate.Role().String(),
		Status:     aggregate.Status().String(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := user.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}
	status, err := user.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.ExternalID, dto.Name, dto.Email, role, status)
}
