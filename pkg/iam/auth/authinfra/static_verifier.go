package authinfra

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/somGabriel/Proago/pkg/config"
	"github.com/somGabriel/Proago/pkg/iam"
	"github.com/somGabriel/Proago/pkg/iam/auth"
	"github.com/somGabriel/Proago/pkg/kernel"
)

// StaticVerifier checks credentials against the fixed demo accounts. It is
// the portal-demo identity source; real deployments use BcryptVerifier.
type StaticVerifier struct {
	accounts []staticAccount
}

type staticAccount struct {
	username string
	password string
	account  auth.Account
}

// NewStaticVerifier builds a verifier from the configured demo users.
func NewStaticVerifier(users []config.DemoUser) *StaticVerifier {
	accounts := make([]staticAccount, 0, len(users))
	for _, u := range users {
		role := iam.Role(u.Role)
		accounts = append(accounts, staticAccount{
			username: u.Username,
			password: u.Password,
			account: auth.Account{
				ID:       kernel.NewUserID("demo-" + strings.ToLower(u.Role)),
				Username: u.Username,
				Name:     "Demo " + titleCase(u.Role),
				Role:     role,
			},
		})
	}
	return &StaticVerifier{accounts: accounts}
}

// Verify matches the credential pair against the demo accounts. Both fields
// are compared in constant time.
func (v *StaticVerifier) Verify(ctx context.Context, username, password string) (*auth.Account, error) {
	for _, candidate := range v.accounts {
		userOK := subtle.ConstantTimeCompare([]byte(candidate.username), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(candidate.password), []byte(password)) == 1
		if userOK && passOK {
			account := candidate.account
			return &account, nil
		}
	}
	return nil, iam.ErrInvalidCredentials()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}
