package authinfra

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somGabriel/Proago/pkg/config"
	"github.com/somGabriel/Proago/pkg/iam"
	"github.com/somGabriel/Proago/pkg/iam/auth"
)

func sessionFor(account auth.Account, token string) auth.Session {
	return auth.Session{
		RefreshToken: token,
		Account:      account,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func demoUsers() []config.DemoUser {
	return []config.DemoUser{
		{Username: "xxx", Password: "xxx", Role: "RECRUITER"},
		{Username: "111", Password: "111", Role: "WORKER"},
		{Username: "aaa", Password: "aaa", Role: "MANAGER"},
	}
}

func TestStaticVerifierAcceptsDemoAccounts(t *testing.T) {
	v := NewStaticVerifier(demoUsers())
	ctx := context.Background()

	tests := []struct {
		username string
		password string
		wantRole iam.Role
	}{
		{"xxx", "xxx", iam.RoleRecruiter},
		{"111", "111", iam.RoleWorker},
		{"aaa", "aaa", iam.RoleManager},
	}

	for _, tt := range tests {
		account, err := v.Verify(ctx, tt.username, tt.password)
		require.NoError(t, err, "login %s", tt.username)
		assert.Equal(t, tt.wantRole, account.Role)
		assert.Equal(t, tt.username, account.Username)
		assert.False(t, account.ID.IsEmpty())
	}
}

func TestStaticVerifierRejectsBadCredentials(t *testing.T) {
	v := NewStaticVerifier(demoUsers())
	ctx := context.Background()

	cases := [][2]string{
		{"xxx", "wrong"},
		{"unknown", "xxx"},
		{"xxx", "111"},
		{"", ""},
	}

	for _, c := range cases {
		account, err := v.Verify(ctx, c[0], c[1])
		require.Error(t, err)
		assert.Nil(t, account)
		// The message never reveals which part was wrong.
		assert.Contains(t, err.Error(), "Identity verification failed.")
	}
}

func TestMemorySessionStoreLifecycle(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	v := NewStaticVerifier(demoUsers())
	account, err := v.Verify(ctx, "aaa", "aaa")
	require.NoError(t, err)

	session := sessionFor(*account, "refresh-1")
	require.NoError(t, store.Save(ctx, session))

	found, err := store.Find(ctx, "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, account.Role, found.Account.Role)

	require.NoError(t, store.Delete(ctx, "refresh-1"))
	_, err = store.Find(ctx, "refresh-1")
	require.Error(t, err)
}

func TestMemorySessionStoreExpiresSessions(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := sessionFor(auth.Account{Username: "aaa", Role: iam.RoleManager}, "refresh-2")
	session.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.Save(ctx, session))

	_, err := store.Find(ctx, "refresh-2")
	require.Error(t, err)
}
