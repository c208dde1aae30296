package service

import (
	"errors"

	"fuelpos/internal/model"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserExists            = errors.New("username already taken")
	ErrShiftAlreadyOpen      = errors.New("a shift is already open")
	ErrNoOpenShift           = errors.New("no open shift")
	ErrNotShiftOwner         = errors.New("the open shift belongs to another user")
	ErrShiftOpen             = errors.New("a shift is still open; end it before shutting down")
	ErrShiftNotFound         = errors.New("shift not found")
	ErrInvalidVolume         = errors.New("invalid volume")
	ErrUnknownPump           = errors.New("unknown pump")
	ErrPriceNotSet           = errors.New("no price set")
	ErrInvalidPrice          = errors.New("invalid price")
	ErrUnknownBucket         = errors.New("unknown price bucket")
	ErrNoEntries             = errors.New("no transaction entries")
	ErrNotConfirmed          = errors.New("submission not confirmed")
	ErrInvalidFilter         = errors.New("invalid filter")
	ErrAdminPasswordRequired = errors.New("admin password is required for first-run setup")
)

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID       uuid.UUID
	Username string
	Role     string
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }
