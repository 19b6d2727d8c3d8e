package auth

import (
	"github.com/gin-contrib/sessions"
)

// Session keys for the bound identity.
const (
	sessionKeyUserID   = "user_id"
	sessionKeyUserName = "user_name"
	sessionKeyUserRole = "user_role"
)

// ContextUserKey is the gin context key holding the *Identity set by RequireAuth.
const ContextUserKey = "user"

// SaveIdentity binds the identity to the session. Subsequent requests on the
// same session are treated as authenticated with this identity and role.
func SaveIdentity(session sessions.Session, identity *Identity) error {
	session.Set(sessionKeyUserID, identity.ID)
	session.Set(sessionKeyUserName, identity.Name)
	session.Set(sessionKeyUserRole, identity.Role)
	return session.Save()
}

// ClearIdentity discards the session unconditionally. Clearing an already
// empty session is not an error.
func ClearIdentity(session sessions.Session) error {
	session.Clear()
	return session.Save()
}

// IdentityFromSession reconstructs the bound identity from the session.
// The second return value is false for anonymous sessions.
func IdentityFromSession(session sessions.Session) (*Identity, bool) {
	id := getSessionString(session, sessionKeyUserID)
	if id == "" {
		return nil, false
	}
	return &Identity{
		ID:   id,
		Name: getSessionString(session, sessionKeyUserName),
		Role: getSessionString(session, sessionKeyUserRole),
	}, true
}

func getSessionString(session sessions.Session, key string) string {
	if v, ok := session.Get(key).(string); ok {
		return v
	}
	return ""
}
