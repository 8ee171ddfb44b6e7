package adapter

import "errors"

var (
	// ErrSendFailed wraps any provider-side delivery failure (non-2xx
	// response or transport error).
	ErrSendFailed = errors.New("email send failed")
)
