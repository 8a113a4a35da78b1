package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"trimly/models"
)

// UpdateProfile saves a profile edit via PUT /profile and returns the
// updated user record.
func (c *Client) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/profile", nil, upd, &user); err != nil {
		return nil, err
	}
	if err := c.check(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateAvatar uploads a new avatar image via PATCH /users/avatar as a
// multipart form with a single "avatar" file field.
func (c *Client) UpdateAvatar(ctx context.Context, filename string, image io.Reader) (*models.User, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("avatar", filename)
	if err != nil {
		return nil, fmt.Errorf("building multipart form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("reading avatar image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finishing multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/users/avatar", &body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var user models.User
	if err := c.send(req, &user); err != nil {
		return nil, err
	}
	if err := c.check(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
