package session

import "github.com/NordCoder/upwatch/internal/domain/user"

// Session is the authenticated identity held by the client. User is only set
// when Token is non-empty; a token may exist before the user is resolved.
type Session struct {
	Token string     `json:"token"`
	User  *user.User `json:"user,omitempty"`
}

func (s Session) Empty() bool { return s.Token == "" }

// Credentials is what the auth endpoints hand back on login or registration.
type Credentials struct {
	User    user.User
	Access  string
	Refresh string
}
