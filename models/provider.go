package models

// Provider is a bookable professional as listed by GET /providers.
type Provider struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	AvatarURL string `json:"avatar_url"`
}
