package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("invalid credentials")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrAccountLocked           = errors.New("account is locked")
	ErrAccountDeactivated      = errors.New("account is deactivated")

	ErrUnknownReferralCode = errors.New("unknown referral code")

	ErrRecoveryCodeInvalid = errors.New("recovery code is invalid or already used")

	ErrPasswordChangeNotRequired = errors.New("password change is not required")

	ErrSessionAlreadyStopped = errors.New("focus session is already stopped")
)
