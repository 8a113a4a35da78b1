package mockapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"trimly/api"
	"trimly/models"
	"trimly/session"
	"trimly/storage"
)

// harness wires a real client, session manager and on-disk store against
// the in-memory API, the same way main does.
type harness struct {
	client  *api.Client
	manager *session.Manager
	store   *storage.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	server := httptest.NewServer(New(zap.NewNop()).Handler())
	t.Cleanup(server.Close)

	store, err := storage.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	client := api.New(server.URL, 5*time.Second, zap.NewNop())
	return &harness{
		client:  client,
		manager: session.New(client, store, zap.NewNop()),
		store:   store,
	}
}

func (h *harness) signUpAndIn(t *testing.T, name, email, password string) {
	t.Helper()
	ctx := context.Background()
	if _, err := h.client.CreateUser(ctx, name, email, password); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := h.manager.SignIn(ctx, email, password); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
}

func TestSignUpThenSignIn(t *testing.T) {
	h := newHarness(t)
	h.signUpAndIn(t, "Ana", "ana@example.com", "secret1")

	user, ok := h.manager.CurrentUser()
	if !ok {
		t.Fatal("expected an active session")
	}
	if user.Name != "Ana" || user.Email != "ana@example.com" {
		t.Errorf("user = %+v", user)
	}
	if h.manager.CurrentToken() == "" {
		t.Error("session token is empty")
	}
}

func TestSignIn_WrongPassword(t *testing.T) {
	h := newHarness(t)
	if _, err := h.client.CreateUser(context.Background(), "Ana", "ana@example.com", "secret1"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	err := h.manager.SignIn(context.Background(), "ana@example.com", "wrong")
	if !api.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("err = %v, want 401", err)
	}
	if _, ok := h.manager.CurrentUser(); ok {
		t.Error("failed sign-in must not leave a session behind")
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.client.CreateUser(ctx, "Ana", "ana@example.com", "secret1"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := h.client.CreateUser(ctx, "Other", "ana@example.com", "secret2")
	if !api.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestAuthedRoutes_RejectMissingToken(t *testing.T) {
	h := newHarness(t)

	_, err := h.client.ListProviders(context.Background())
	if !api.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestBookingFlow(t *testing.T) {
	h := newHarness(t)
	h.signUpAndIn(t, "Ana", "ana@example.com", "secret1")
	ctx := context.Background()

	providers, err := h.client.ListProviders(ctx)
	if err != nil {
		t.Fatalf("ListProviders: %v", err)
	}
	if len(providers) == 0 {
		t.Fatal("seeded providers missing")
	}
	provider := providers[0]

	day := time.Date(2030, time.May, 1, 0, 0, 0, 0, time.Local)
	items, err := h.client.DayAvailability(ctx, provider.ID, day.Year(), day.Month(), day.Day())
	if err != nil {
		t.Fatalf("DayAvailability: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("no availability returned")
	}
	for _, item := range items {
		if !item.Available {
			t.Errorf("hour %d booked on a fresh server", item.Hour)
		}
	}

	moment := time.Date(2030, time.May, 1, 14, 0, 0, 0, time.Local)
	appt, err := h.client.CreateAppointment(ctx, provider.ID, moment)
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if appt.ProviderID != provider.ID {
		t.Errorf("appointment = %+v", appt)
	}

	items, err = h.client.DayAvailability(ctx, provider.ID, day.Year(), day.Month(), day.Day())
	if err != nil {
		t.Fatalf("DayAvailability after booking: %v", err)
	}
	for _, item := range items {
		if item.Hour == 14 && item.Available {
			t.Error("booked hour still reported as available")
		}
		if item.Hour == 15 && !item.Available {
			t.Error("untouched hour reported as booked")
		}
	}
}

func TestCreateAppointment_DoubleBooking(t *testing.T) {
	h := newHarness(t)
	h.signUpAndIn(t, "Ana", "ana@example.com", "secret1")
	ctx := context.Background()

	moment := time.Date(2030, time.May, 1, 10, 0, 0, 0, time.Local)
	if _, err := h.client.CreateAppointment(ctx, "prov-1", moment); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := h.client.CreateAppointment(ctx, "prov-1", moment)
	if !api.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestCreateAppointment_OutsideWorkingHours(t *testing.T) {
	h := newHarness(t)
	h.signUpAndIn(t, "Ana", "ana@example.com", "secret1")

	moment := time.Date(2030, time.May, 1, 3, 0, 0, 0, time.Local)
	_, err := h.client.CreateAppointment(context.Background(), "prov-1", moment)
	if !api.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestCreateAppointment_UnknownProvider(t *testing.T) {
	h := newHarness(t)
	h.signUpAndIn(t, "Ana", "ana@example.com", "secret1")

	moment := time.Date(2030, time.May, 1, 10, 0, 0, 0, time.Local)
	_, err := h.client.CreateAppointment(context.Background(), "no-such-provider", moment)
	if !api.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestDayAvailability_UnknownProvider(t *testing.T) {
	h := newHarness(t)
	h.signUpAndIn(t, "Ana", "ana@example.com", "secret1")

	_, err := h.client.DayAvailability(context.Background(), "no-such-provider", 2030, time.May, 1)
	if !api.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestUpdateProfile_ChangesNameAndEmail(t *testing.T) {
	h := newHarness(t)
	h.signUpAndIn(t, "Ana", "ana@example.com", "secret1")

	user, err := h.client.UpdateProfile(context.Background(), models.ProfileUpdate{
		Name:  "Ana Maria",
		Email: "ana.maria@example.com",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.Name != "Ana Maria" || user.Email != "ana.maria@example.com" {
		t.Errorf("user = %+v", user)
	}

	// The old address is released, so signing in with the new one works.
	if err := h.manager.SignIn(context.Background(), "ana.maria@example.com", "secret1"); err != nil {
		t.Errorf("sign-in with updated email: %v", err)
	}
}

func TestUpdateProfile_WrongOldPassword(t *testing.T) {
	h := newHarness(t)
	h.signUpAndIn(t, "Ana", "ana@example.com", "secret1")

	_, err := h.client.UpdateProfile(context.Background(), models.ProfileUpdate{
		Name:                 "Ana",
		Email:                "ana@example.com",
		OldPassword:          "wrong",
		Password:             "newpass",
		PasswordConfirmation: "newpass",
	})
	if !api.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestUpdateProfile_PasswordChange(t *testing.T) {
	h := newHarness(t)
	h.signUpAndIn(t, "Ana", "ana@example.com", "secret1")
	ctx := context.Background()

	_, err := h.client.UpdateProfile(ctx, models.ProfileUpdate{
		Name:                 "Ana",
		Email:                "ana@example.com",
		OldPassword:          "secret1",
		Password:             "secret2",
		PasswordConfirmation: "secret2",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if err := h.manager.SignIn(ctx, "ana@example.com", "secret1"); !api.IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("old password should be rejected, got %v", err)
	}
	if err := h.manager.SignIn(ctx, "ana@example.com", "secret2"); err != nil {
		t.Errorf("new password should work: %v", err)
	}
}

func TestUpdateAvatar_SetsURL(t *testing.T) {
	h := newHarness(t)
	h.signUpAndIn(t, "Ana", "ana@example.com", "secret1")

	user, err := h.client.UpdateAvatar(context.Background(), "me.png", strings.NewReader("fake png"))
	if err != nil {
		t.Fatalf("UpdateAvatar: %v", err)
	}
	if user.AvatarURL == "" {
		t.Error("avatar URL not set")
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	server := httptest.NewServer(New(zap.NewNop()).Handler())
	defer server.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "state.db")
	ctx := context.Background()

	store, err := storage.Open(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	client := api.New(server.URL, 5*time.Second, zap.NewNop())
	manager := session.New(client, store, zap.NewNop())

	if _, err := client.CreateUser(ctx, "Ana", "ana@example.com", "secret1"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := manager.SignIn(ctx, "ana@example.com", "secret1"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("closing store: %v", err)
	}

	// Second "launch": new store, new client, restore from disk.
	store2, err := storage.Open(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer store2.Close()
	client2 := api.New(server.URL, 5*time.Second, zap.NewNop())
	manager2 := session.New(client2, store2, zap.NewNop())
	manager2.Restore(ctx)

	user, ok := manager2.CurrentUser()
	if !ok {
		t.Fatal("session was not restored from disk")
	}
	if user.Email != "ana@example.com" {
		t.Errorf("restored user = %+v", user)
	}

	// The restored token must authenticate requests.
	if _, err := client2.ListProviders(ctx); err != nil {
		t.Errorf("restored token rejected: %v", err)
	}
}
