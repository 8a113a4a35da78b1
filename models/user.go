// models/user.go
package models

// User represents the authenticated account as returned by the API.
type User struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	AvatarURL string `json:"avatar_url"`
}

// Session pairs the bearer token with the user it authenticates.
// A session is either fully present (both fields set) or absent; the
// session manager never exposes a half-built one.
type Session struct {
	Token string `json:"token" validate:"required"`
	User  User   `json:"user" validate:"required"`
}

// Credentials is the payload for POST /sessions.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewUser is the payload for POST /users (registration).
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate is the payload for PUT /profile. The password block is
// only sent when the user typed their current password, matching the
// behavior of the profile screen.
type ProfileUpdate struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	OldPassword          string `json:"old_password,omitempty"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}
