package app

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"
	"golang.org/x/crypto/bcrypt"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

type CredentialStore interface {
	GetCredential(ctx context.Context, role models.Role, id string) (*models.Credential, error)
	SaveCredential(ctx context.Context, role models.Role, id, password string) error
}

// Authenticator checks a username and password against the table of the
// requested role. Stored bcrypt hashes are verified as such; anything else
// is a legacy plaintext row and must match exactly.
type Authenticator struct {
	store CredentialStore
}

func NewAuthenticator(store CredentialStore) *Authenticator {
	return &Authenticator{store: store}
}

func (a *Authenticator) Authenticate(ctx context.Context, username, password string, role models.Role) (bool, error) {
	if !role.Valid() {
		return false, apperrors.NewValidationError("role", fmt.Sprintf("unknown role %q", role))
	}

	cred, err := a.store.GetCredential(ctx, role, username)
	if err != nil {
		return false, err
	}
	if cred == nil {
		logger.Debug.Printf("No %s credential for %s", role, username)
		return false, nil
	}

	if isBcryptHash(cred.Password) {
		err := bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(password))
		return err == nil, nil
	}
	return subtle.ConstantTimeCompare([]byte(cred.Password), []byte(password)) == 1, nil
}

// SetPassword stores a bcrypt hash of password for id, replacing any
// existing row.
func (a *Authenticator) SetPassword(ctx context.Context, role models.Role, id, password string) error {
	if !role.Valid() {
		return apperrors.NewValidationError("role", fmt.Sprintf("unknown role %q", role))
	}
	if id == "" {
		return apperrors.NewValidationError("id", "id is required")
	}
	if password == "" {
		return apperrors.NewValidationError("password", "password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return a.store.SaveCredential(ctx, role, id, string(hash))
}

func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
