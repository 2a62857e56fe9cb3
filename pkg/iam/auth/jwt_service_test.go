package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somGabriel/Proago/pkg/config"
	"github.com/somGabriel/Proago/pkg/iam"
	"github.com/somGabriel/Proago/pkg/kernel"
)

func testJWTService() *JWTService {
	return NewJWTServiceFromConfig(&config.JWTConfig{
		SecretKey:       "test-secret-key-that-is-long-enough-000",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "proago-world",
		Audience:        []string{"proago-portal"},
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := testJWTService()

	account := Account{
		ID:       kernel.NewUserID("demo-recruiter"),
		Username: "xxx",
		Name:     "Demo Recruiter",
		Role:     iam.RoleRecruiter,
	}

	token, err := svc.GenerateAccessToken(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.UserID)
	assert.Equal(t, "xxx", claims.Username)
	assert.Equal(t, "Demo Recruiter", claims.Name)
	assert.Equal(t, iam.RoleRecruiter, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	svc := testJWTService()

	_, err := svc.ValidateAccessToken("not.a.token")
	require.Error(t, err)
}

func TestValidateAccessTokenRejectsForeignSignature(t *testing.T) {
	svc := testJWTService()
	other := NewJWTServiceFromConfig(&config.JWTConfig{
		SecretKey:       "another-secret-key-that-is-long-enough",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "proago-world",
	})

	token, err := other.GenerateAccessToken(Account{
		ID:   kernel.NewUserID("demo-worker"),
		Role: iam.RoleWorker,
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := testJWTService()

	token, err := svc.GenerateRefreshToken(kernel.NewUserID("demo-manager"))
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "demo-manager", userID.String())

	_, err = svc.ValidateRefreshToken("bogus")
	require.Error(t, err)
}
