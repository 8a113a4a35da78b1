package api

import (
	"context"
	"net/http"

	"trimly/models"
)

// CreateSession exchanges credentials for a session via POST /sessions.
// It does not install the returned token; the session manager decides
// when the credential becomes active.
func (c *Client) CreateSession(ctx context.Context, email, password string) (*models.Session, error) {
	var session models.Session
	err := c.do(ctx, http.MethodPost, "/sessions", nil, models.Credentials{
		Email:    email,
		Password: password,
	}, &session)
	if err != nil {
		return nil, err
	}
	if err := c.check(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateUser registers a new account via POST /users.
func (c *Client) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/users", nil, models.NewUser{
		Name:     name,
		Email:    email,
		Password: password,
	}, &user)
	if err != nil {
		return nil, err
	}
	if err := c.check(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
