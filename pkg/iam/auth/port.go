package auth

import (
	"context"
	"time"

	"github.com/somGabriel/Proago/pkg/iam"
	"github.com/somGabriel/Proago/pkg/kernel"
)

// Account is an authenticated operator identity.
type Account struct {
	ID       kernel.UserID `json:"id"`
	Username string        `json:"username"`
	Name     string        `json:"name"`
	Role     iam.Role      `json:"role"`
}

// CredentialVerifier checks a username/password pair against an identity
// source and returns the matched account.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*Account, error)
}

// TokenClaims is the decoded content of an access token.
type TokenClaims struct {
	UserID    kernel.UserID
	Username  string
	Name      string
	Role      iam.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and validates the token pair of a login session.
type TokenService interface {
	GenerateAccessToken(account Account) (string, error)
	GenerateRefreshToken(userID kernel.UserID) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (kernel.UserID, error)
	AccessTokenTTL() time.Duration
}

// Session binds a refresh token to the account it was issued for.
type Session struct {
	RefreshToken string    `json:"refresh_token"`
	Account      Account   `json:"account"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionStore persists refresh-token sessions.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Find(ctx context.Context, refreshToken string) (*Session, error)
	Delete(ctx context.Context, refreshToken string) error
}
