package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Account roles. Role is free-form in storage; these are the values the
// service itself assigns.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is a registered user account. PasswordHash is a bcrypt hash;
// the plaintext password never reaches this struct.
type Account struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountRepository is the persistence boundary for accounts.
// Name and email are unique across accounts; Insert and Update surface
// ErrDuplicateEmail/ErrDuplicateName when the store's unique constraints
// fire, which closes the check-then-insert race on registration.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByName(ctx context.Context, name string) (*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
	Insert(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id uuid.UUID) error
}
