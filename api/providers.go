package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"trimly/models"
)

// ListProviders fetches the bookable providers via GET /providers.
func (c *Client) ListProviders(ctx context.Context) ([]models.Provider, error) {
	var providers []models.Provider
	if err := c.do(ctx, http.MethodGet, "/providers", nil, nil, &providers); err != nil {
		return nil, err
	}
	for i := range providers {
		if err := c.check(&providers[i]); err != nil {
			return nil, err
		}
	}
	return providers, nil
}

// DayAvailability fetches the hourly availability of a provider for one
// calendar day via GET /providers/:id/day-availability.
func (c *Client) DayAvailability(ctx context.Context, providerID string, year int, month time.Month, day int) ([]models.AvailabilityItem, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(int(month)))
	query.Set("day", strconv.Itoa(day))

	var items []models.AvailabilityItem
	path := "/providers/" + url.PathEscape(providerID) + "/day-availability"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &items); err != nil {
		return nil, err
	}
	for i := range items {
		if err := c.check(&items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}
