package authinfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/somGabriel/Proago/pkg/errx"
	"github.com/somGabriel/Proago/pkg/iam"
	"github.com/somGabriel/Proago/pkg/iam/auth"
	"github.com/somGabriel/Proago/pkg/kernel"
)

// BcryptVerifier checks credentials against bcrypt hashes in the accounts
// table.
type BcryptVerifier struct {
	db *sqlx.DB
}

// NewBcryptVerifier creates a database-backed credential verifier.
func NewBcryptVerifier(db *sqlx.DB) *BcryptVerifier {
	return &BcryptVerifier{db: db}
}

type accountRow struct {
	ID           string `db:"id"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	Role         string `db:"role"`
	PasswordHash string `db:"password_hash"`
}

// Verify loads the account by username and compares the password hash. A
// missing account and a wrong password are indistinguishable to the caller.
func (v *BcryptVerifier) Verify(ctx context.Context, username, password string) (*auth.Account, error) {
	query := `
		SELECT id, username, name, role, password_hash
		FROM accounts
		WHERE username = $1`

	var row accountRow
	err := v.db.GetContext(ctx, &row, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, iam.ErrInvalidCredentials()
		}
		return nil, errx.Wrap(err, "failed to load account", errx.TypeInternal)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return nil, iam.ErrInvalidCredentials()
	}

	return &auth.Account{
		ID:       kernel.NewUserID(row.ID),
		Username: row.Username,
		Name:     row.Name,
		Role:     iam.Role(row.Role),
	}, nil
}

// HashPassword produces a bcrypt hash for account provisioning.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}
	return string(hash), nil
}
