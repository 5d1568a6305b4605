package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name       string    `json:"name"`
	Email      string    `gorm:"uniqueIndex" json:"email"`
	Password   string    `json:"-"`
	Role       string    `json:"role"` // user, admin
	Position   string    `json:"position,omitempty"`
	Department string    `json:"department,omitempty"`
	HireDate   time.Time `json:"hire_date"`
	IsVerified bool      `json:"is_verified"`

	Timestamp
}
