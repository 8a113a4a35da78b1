package models

// AvailabilityItem is one hourly slot of a provider's day-availability
// response. The API returns the full day as a flat list; the list is
// refetched whenever the selected provider or date changes.
type AvailabilityItem struct {
	Hour      int  `json:"hour" validate:"gte=0,lte=23"`
	Available bool `json:"available"`
}
