package http

import (
	"errors"
	"net/http"

	"github.com/akarimullin/tasktrack/internal/service"
	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:       http.StatusBadRequest,
	service.ErrUnknownReferralCode:       http.StatusBadRequest,
	service.ErrWrongPassword:             http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid:   http.StatusUnauthorized,
	service.ErrRecoveryCodeInvalid:       http.StatusUnauthorized,
	service.ErrAccountLocked:             http.StatusForbidden,
	service.ErrAccountDeactivated:        http.StatusForbidden,
	service.ErrPasswordChangeNotRequired: http.StatusConflict,
	service.ErrSessionAlreadyStopped:     http.StatusConflict,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrReferralCodeExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrNotFound:           http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError maps err to its HTTP status and writes a {"message": ...}
// body. Unmapped errors are reported as a bare 500 without leaking the
// underlying message.
func respondError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return
	}
	utils.WriteMessage(w, err.Error(), status)
}
