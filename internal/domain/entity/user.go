// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront account. The password hash never leaves the
// persistence and usecase layers.
type User struct {
	ID           uuid.UUID // The global unique identifier for the user.
	Email        string    // Login identifier, unique.
	Name         string    // Display name.
	PasswordHash string    // bcrypt hash of the password.
	Role         Role      // customer or admin.
	Phone        string    // Optional contact phone.
	Address      string    // Optional default delivery address.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
