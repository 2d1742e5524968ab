package domain

import (
	"context"
	"time"
)

// Role is the coarse permission level attached to a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered member of the community.
type User struct {
	ID           int64     // Unique identifier
	Name         string    // Display name
	Username     string    // Login username (unique)
	Password     string    // Bcrypt hashed password
	Role         Role      // user or admin
	ProfileImage string    // Display-only, filled by ImageURLResolver
	CreatedAt    time.Time // Account creation timestamp
	UpdatedAt    time.Time // Last profile update timestamp
}

// Identity is the resolved caller of a request. The zero value is an
// anonymous caller.
type Identity struct {
	UserID int64
	Role   Role
}

// Anonymous reports whether no identity was resolved for the request.
func (i Identity) Anonymous() bool {
	return i.UserID == 0
}

// Admin reports whether the caller holds the administrator role.
func (i Identity) Admin() bool {
	return !i.Anonymous() && i.Role == RoleAdmin
}

// ImageURLResolver maps a target to an optional public image URL.
// It only decorates profile data attached to responses; nothing in the
// write path depends on it.
type ImageURLResolver interface {
	Resolve(targetType string, targetID int64) (url string, ok bool)
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// GetByIDs retrieves users by the given IDs, used for batch
	// author filling on list views.
	GetByIDs(ctx context.Context, ids []int64) ([]User, error)

	// GetByUsername retrieves a user by their username.
	// Used during login to verify credentials.
	GetByUsername(ctx context.Context, username string) (User, error)

	// Insert creates a new user account.
	// Backfills the ID in the provided User object upon success.
	Insert(ctx context.Context, u *User) error

	// Update modifies an existing user's information.
	Update(ctx context.Context, u *User) error
}

// UserUsecase defines the business logic contract for user operations.
type UserUsecase interface {
	// Register creates a new user account.
	// Returns ErrConflict if the username already exists.
	Register(ctx context.Context, name, username, password string) error

	// Login verifies user credentials and returns a signed token.
	// Returns ErrNotFound if the user doesn't exist.
	// Returns ErrBadParamInput if the password is incorrect.
	Login(ctx context.Context, username, password string) (string, error)
}
