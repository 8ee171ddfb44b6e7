package store

import "errors"

// Sentinel errors returned by repositories. Services and handlers match on
// these with errors.Is to translate storage outcomes into caller-visible
// results.
var (
	// ErrEmailAlreadyExists is returned when an INSERT violates the unique
	// constraint on users.email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrReferralCodeExists is returned when assigning a referral code that
	// is already taken.
	ErrReferralCodeExists = errors.New("referral code already exists")

	// ErrNoUserWasFound is returned when a user lookup matches no rows.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNotFound is returned when a non-user entity lookup matches no rows
	// (task, focus session, notification, account event).
	ErrNotFound = errors.New("entity not found")
)
