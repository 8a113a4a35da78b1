package models

import "time"

// Appointment is a confirmed booking as returned by POST /appointments.
type Appointment struct {
	ID         string    `json:"id" validate:"required"`
	ProviderID string    `json:"provider_id" validate:"required"`
	UserID     string    `json:"user_id"`
	Date       time.Time `json:"date" validate:"required"`
}

// AppointmentRequest is the payload for POST /appointments. Date carries
// the full moment (selected day plus hour, minutes and seconds zeroed).
type AppointmentRequest struct {
	ProviderID string    `json:"provider_id"`
	Date       time.Time `json:"date"`
}
