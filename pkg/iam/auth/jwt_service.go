package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/somGabriel/Proago/pkg/config"
	"github.com/somGabriel/Proago/pkg/iam"
	"github.com/somGabriel/Proago/pkg/kernel"
)

// JWTService is the TokenService implementation on HS256 JWTs.
type JWTService struct {
	secretKey       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	issuer          string
	audience        []string
}

// NewJWTServiceFromConfig creates a JWT token service from configuration.
func NewJWTServiceFromConfig(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		secretKey:       []byte(cfg.SecretKey),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		issuer:          cfg.Issuer,
		audience:        cfg.Audience,
	}
}

// JWTClaims carries the operator identity inside an access token.
type JWTClaims struct {
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Role     iam.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a signed access token for an account.
func (j *JWTService) GenerateAccessToken(account Account) (string, error) {
	now := time.Now()

	claims := JWTClaims{
		Username: account.Username,
		Name:     account.Name,
		Role:     account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   account.ID.String(),
			Audience:  j.audience,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", iam.ErrInvalidToken().WithDetail("error", err.Error())
	}

	return tokenString, nil
}

// ValidateAccessToken validates and decodes an access token.
func (j *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	})
	if err != nil {
		return nil, iam.ErrInvalidToken().WithDetail("error", err.Error())
	}

	if !token.Valid {
		return nil, iam.ErrInvalidToken()
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, iam.ErrInvalidToken().WithDetail("error", "invalid claims type")
	}

	return &TokenClaims{
		UserID:    kernel.NewUserID(claims.Subject),
		Username:  claims.Username,
		Name:      claims.Name,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// GenerateRefreshToken issues a signed refresh token.
func (j *JWTService) GenerateRefreshToken(userID kernel.UserID) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    j.issuer,
		Subject:   userID.String(),
		Audience:  j.audience,
		ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTokenTTL)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", iam.ErrInvalidToken().WithDetail("error", err.Error())
	}

	return tokenString, nil
}

// ValidateRefreshToken validates a refresh token and returns its subject.
func (j *JWTService) ValidateRefreshToken(tokenString string) (kernel.UserID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	})
	if err != nil || !token.Valid {
		return kernel.UserID(""), iam.ErrInvalidToken()
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return kernel.UserID(""), iam.ErrInvalidToken()
	}

	return kernel.NewUserID(claims.Subject), nil
}

// AccessTokenTTL returns the configured access token lifetime.
func (j *JWTService) AccessTokenTTL() time.Duration {
	return j.accessTokenTTL
}
