// Package auth implements the session gate: credential checks against the
// user store, the session lifecycle, and the authenticated/admin request
// gates in front of protected routes.
package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard/internal/database"
)

var (
	// ErrUserNotFound is returned when no user exists with the given name.
	ErrUserNotFound = errors.New("auth: user not found")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrNotAdmin is returned by the admin entry point when the credentials
	// resolve to a non-admin account.
	ErrNotAdmin = errors.New("auth: not an admin")

	// ErrNotAuthenticated is returned by gate predicates when no identity is
	// bound to the request.
	ErrNotAuthenticated = errors.New("auth: not authenticated")
	// ErrForbidden is returned by the admin gate for authenticated non-admins.
	ErrForbidden = errors.New("auth: forbidden")
)

// Identity describes the principal bound to a session.
type Identity struct {
	ID   string
	Name string
	Role string
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == database.RoleAdmin
}

// Authenticator resolves credentials to identities against the user store.
type Authenticator struct {
	db database.DB
}

// New creates an Authenticator backed by the given store.
func New(db database.DB) *Authenticator {
	return &Authenticator{db: db}
}

// Authenticate looks up the user by name and verifies the password against
// the stored bcrypt hash. Returns ErrUserNotFound or ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	user, err := a.db.GetUserByName(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &Identity{
		ID:   user.ID.Hex(),
		Name: user.Name,
		Role: user.Role,
	}, nil
}

// AuthenticateAdmin is the admin entry point. It performs the same credential
// check as Authenticate but additionally fails with ErrNotAdmin when the
// resolved role is not admin, even if the credentials are otherwise valid.
func (a *Authenticator) AuthenticateAdmin(ctx context.Context, username, password string) (*Identity, error) {
	identity, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return identity, nil
}

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckAuthenticated is the gate predicate behind RequireAuth. It is pure so
// it can be tested independent of HTTP.
func CheckAuthenticated(identity *Identity) error {
	if identity == nil {
		return ErrNotAuthenticated
	}
	return nil
}

// CheckAdmin is the gate predicate behind RequireAdmin.
func CheckAdmin(identity *Identity) error {
	if identity == nil {
		return ErrNotAuthenticated
	}
	if !identity.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
