package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/NordCoder/upwatch/internal/domain/session"
	"github.com/NordCoder/upwatch/internal/domain/user"
)

var errNoAccessToken = errors.New("response carries no access token")

type authPayload struct {
	User    user.User `json:"user"`
	Access  string    `json:"access"`
	Token   string    `json:"token"`
	Refresh string    `json:"refresh"`
}

func (p authPayload) credentials(op Op) (session.Credentials, error) {
	access := p.Access
	if access == "" {
		access = p.Token
	}
	if access == "" {
		return session.Credentials{}, &RequestError{Op: op, Status: http.StatusOK, Message: op.Fallback(), Err: errNoAccessToken}
	}
	return session.Credentials{User: p.User, Access: access, Refresh: p.Refresh}, nil
}

// Authenticate exchanges username and password for credentials. Bad
// credentials come back as ErrUnauthorized like any other 401.
func (c *Client) Authenticate(ctx context.Context, username, password string) (session.Credentials, error) {
	var p authPayload
	err := c.do(ctx, call{
		op:     OpAuthenticate,
		method: http.MethodPost,
		path:   "auth/login/",
		body:   map[string]string{"username": username, "password": password},
		out:    &p,
	})
	if err != nil {
		return session.Credentials{}, err
	}
	return p.credentials(OpAuthenticate)
}

// Register creates an account and signs it in. An empty email is sent as "".
func (c *Client) Register(ctx context.Context, username, password, email string) (session.Credentials, error) {
	var p authPayload
	err := c.do(ctx, call{
		op:     OpRegister,
		method: http.MethodPost,
		path:   "auth/register/",
		body:   map[string]string{"username": username, "password": password, "email": email},
		out:    &p,
	})
	if err != nil {
		return session.Credentials{}, err
	}
	return p.credentials(OpRegister)
}

func (c *Client) FetchSelf(ctx context.Context, token string) (user.User, error) {
	var u user.User
	err := c.do(ctx, call{op: OpFetchSelf, method: http.MethodGet, path: "auth/me/", token: token, out: &u})
	return u, err
}
