package auth

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the signed content of the session cookie. The JWT ID is the
// server-side session identifier; Subject is the user it was issued for.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionID returns the server-side session identifier.
func (c SessionClaims) SessionID() string {
	return c.ID
}

// UserID returns the user the session was issued for.
func (c SessionClaims) UserID() string {
	return c.Subject
}
