package mockapi

import (
	"fmt"
	"sync"
	"time"

	"trimly/models"
)

// Providers accept bookings on the hour between these bounds, inclusive.
const (
	workDayStart = 8
	workDayEnd   = 17
)

// account is a registered user plus its credential.
type account struct {
	user         models.User
	passwordHash []byte
}

// state is the whole in-memory world of the fake API.
type state struct {
	mu           sync.Mutex
	accountsByID map[string]*account
	byEmail      map[string]*account
	providers    []models.Provider
	// appointments are keyed by provider and booked hour, see slotKey.
	appointments map[string]models.Appointment
}

func newState() *state {
	return &state{
		accountsByID: make(map[string]*account),
		byEmail:      make(map[string]*account),
		appointments: make(map[string]models.Appointment),
	}
}

// slotKey identifies one bookable hour of one provider.
func slotKey(providerID string, year, month, day, hour int) string {
	return fmt.Sprintf("%s|%04d-%02d-%02dT%02d", providerID, year, month, day, hour)
}

func slotKeyAt(providerID string, t time.Time) string {
	return slotKey(providerID, t.Year(), int(t.Month()), t.Day(), t.Hour())
}

// seed installs the fixture providers the client lists.
func (s *Server) seed() {
	s.st.providers = []models.Provider{
		{ID: "prov-1", Name: "Ana Martins", AvatarURL: "https://cdn.trimly.local/avatars/prov-1.jpg"},
		{ID: "prov-2", Name: "Bruno Costa", AvatarURL: "https://cdn.trimly.local/avatars/prov-2.jpg"},
		{ID: "prov-3", Name: "Carla Dias", AvatarURL: "https://cdn.trimly.local/avatars/prov-3.jpg"},
	}
}

func (st *state) provider(id string) (models.Provider, bool) {
	for _, p := range st.providers {
		if p.ID == id {
			return p, true
		}
	}
	return models.Provider{}, false
}
