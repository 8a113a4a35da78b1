package api

import (
	"context"
	"net/http"
	"time"

	"trimly/models"
)

// CreateAppointment books a provider for the given moment via
// POST /appointments. The date should come from agenda.At so minutes and
// seconds are zeroed.
func (c *Client) CreateAppointment(ctx context.Context, providerID string, date time.Time) (*models.Appointment, error) {
	var appt models.Appointment
	err := c.do(ctx, http.MethodPost, "/appointments", nil, models.AppointmentRequest{
		ProviderID: providerID,
		Date:       date,
	}, &appt)
	if err != nil {
		return nil, err
	}
	if err := c.check(&appt); err != nil {
		return nil, err
	}
	return &appt, nil
}
