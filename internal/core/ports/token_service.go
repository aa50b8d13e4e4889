package ports

// TokenClaims is the identity carried by a verified auth token.
type TokenClaims struct {
	UserID string
	Role   string
}

// TokenIssuer mints signed, time-limited identity tokens.
type TokenIssuer interface {
	Issue(userID, role string) (string, error)
}

// TokenVerifier checks a raw token's signature and expiry and extracts the
// embedded identity. Any failure is reported as domain.ErrTokenInvalid.
type TokenVerifier interface {
	Verify(raw string) (*TokenClaims, error)
}
