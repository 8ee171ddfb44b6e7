package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the claim set embedded in every issued session token.
//
// In addition to the standard registered claims (iss, sub, iat, exp) it
// carries the account role and the token-version counter sampled at issuance.
// A token whose TokenVersion no longer matches the account's current value is
// rejected, which is the global "log out everywhere" mechanism.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Role is the account role at issuance time (RoleMember or RoleAdmin).
	Role string `json:"role"`

	// TokenVersion is the account's token-version counter at issuance time.
	TokenVersion int64 `json:"token_version"`
}

// Token wraps a parsed or freshly signed session token.
//
// SignedString holds the compact serialized form (header.payload.signature)
// ready to be transmitted in HTTP headers or stored on the client side.
// UserID, Role and TokenVersion are cached copies of the corresponding claims
// so that callers do not re-parse the claim set.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON because only the compact string form is meaningful
	// outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`

	// Role is the role claim carried by the token.
	Role string `json:"-"`

	// TokenVersion is the token-version claim carried by the token.
	TokenVersion int64 `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
