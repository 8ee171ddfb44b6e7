package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/akarimullin/tasktrack/internal/service"
	"github.com/akarimullin/tasktrack/internal/utils"
	"github.com/go-chi/chi/v5"
)

// decodeJSON binds the request body into dst. A malformed body is the
// caller's problem: the handler should reject with 400.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid JSON was passed")
	}
	return nil
}

// pathID parses the named chi URL parameter as a positive int64.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id in path")
	}
	return id, nil
}

// authedUserID returns the user ID placed in the context by the auth
// middleware. A missing value means the route was wired without the
// middleware, which is a programming error surfaced as 401.
func authedUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// requestMeta extracts the client IP and user agent for login forensics.
// X-Forwarded-For wins over RemoteAddr when a proxy supplied it.
func requestMeta(r *http.Request) service.RequestMeta {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		ip = host
	}
	return service.RequestMeta{
		IP:        ip,
		UserAgent: r.UserAgent(),
	}
}

// queryInt parses an optional integer query parameter, returning 0 when the
// parameter is absent or malformed so the service layer applies its default.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
