package mockapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"trimly/models"
)

const tokenTTL = 24 * time.Hour

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// createSession handles POST /sessions.
func (s *Server) createSession(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.jsonError(c, http.StatusBadRequest, "Invalid credentials payload", err.Error())
		return
	}

	s.st.mu.Lock()
	acct, ok := s.st.byEmail[req.Email]
	s.st.mu.Unlock()
	if !ok {
		s.jsonError(c, http.StatusUnauthorized, "Invalid email or password", "")
		return
	}
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)); err != nil {
		s.jsonError(c, http.StatusUnauthorized, "Invalid email or password", "")
		return
	}

	token, err := s.generateToken(acct.user.ID, acct.user.Email, tokenTTL)
	if err != nil {
		s.jsonError(c, http.StatusInternalServerError, "Failed to issue token", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.Session{Token: token, User: acct.user})
}

type newUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// createUser handles POST /users.
func (s *Server) createUser(c *gin.Context) {
	var req newUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.jsonError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.jsonError(c, http.StatusInternalServerError, "Failed to hash password", err.Error())
		return
	}

	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	if _, exists := s.st.byEmail[req.Email]; exists {
		s.jsonError(c, http.StatusBadRequest, "Email address already used", "")
		return
	}

	acct := &account{
		user: models.User{
			ID:    uuid.NewString(),
			Name:  req.Name,
			Email: req.Email,
		},
		passwordHash: hash,
	}
	s.st.accountsByID[acct.user.ID] = acct
	s.st.byEmail[acct.user.Email] = acct

	c.JSON(http.StatusCreated, acct.user)
}

// updateProfile handles PUT /profile.
func (s *Server) updateProfile(c *gin.Context) {
	acct := currentAccount(c)

	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		s.jsonError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}
	if req.Name == "" || req.Email == "" {
		s.jsonError(c, http.StatusBadRequest, "Name and email are required", "")
		return
	}

	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if other, exists := s.st.byEmail[req.Email]; exists && other != acct {
		s.jsonError(c, http.StatusBadRequest, "Email address already used", "")
		return
	}

	if req.OldPassword != "" {
		if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.OldPassword)); err != nil {
			s.jsonError(c, http.StatusUnauthorized, "Current password does not match", "")
			return
		}
		if req.Password == "" || req.Password != req.PasswordConfirmation {
			s.jsonError(c, http.StatusBadRequest, "Password confirmation does not match", "")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.jsonError(c, http.StatusInternalServerError, "Failed to hash password", err.Error())
			return
		}
		acct.passwordHash = hash
	}

	delete(s.st.byEmail, acct.user.Email)
	acct.user.Name = req.Name
	acct.user.Email = req.Email
	s.st.byEmail[acct.user.Email] = acct

	c.JSON(http.StatusOK, acct.user)
}

// updateAvatar handles PATCH /users/avatar (multipart field "avatar").
func (s *Server) updateAvatar(c *gin.Context) {
	acct := currentAccount(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		s.jsonError(c, http.StatusBadRequest, "Missing avatar file", err.Error())
		return
	}

	s.st.mu.Lock()
	acct.user.AvatarURL = fmt.Sprintf("https://cdn.trimly.local/avatars/%s/%s", acct.user.ID, file.Filename)
	user := acct.user
	s.st.mu.Unlock()

	c.JSON(http.StatusOK, user)
}

// listProviders handles GET /providers.
func (s *Server) listProviders(c *gin.Context) {
	s.st.mu.Lock()
	providers := make([]models.Provider, len(s.st.providers))
	copy(providers, s.st.providers)
	s.st.mu.Unlock()

	c.JSON(http.StatusOK, providers)
}

// dayAvailability handles GET /providers/:id/day-availability.
func (s *Server) dayAvailability(c *gin.Context) {
	providerID := c.Param("id")

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	day, errD := strconv.Atoi(c.Query("day"))
	if errY != nil || errM != nil || errD != nil {
		s.jsonError(c, http.StatusBadRequest, "year, month and day query parameters are required", "")
		return
	}

	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	if _, ok := s.st.provider(providerID); !ok {
		s.jsonError(c, http.StatusNotFound, "Provider not found", providerID)
		return
	}

	items := make([]models.AvailabilityItem, 0, workDayEnd-workDayStart+1)
	for hour := workDayStart; hour <= workDayEnd; hour++ {
		_, booked := s.st.appointments[slotKey(providerID, year, month, day, hour)]
		items = append(items, models.AvailabilityItem{Hour: hour, Available: !booked})
	}
	c.JSON(http.StatusOK, items)
}

// createAppointment handles POST /appointments.
func (s *Server) createAppointment(c *gin.Context) {
	acct := currentAccount(c)

	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.jsonError(c, http.StatusBadRequest, "Invalid appointment payload", err.Error())
		return
	}

	hour := req.Date.Hour()
	if hour < workDayStart || hour > workDayEnd {
		s.jsonError(c, http.StatusBadRequest, "Hour is outside working hours", "")
		return
	}

	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	if _, ok := s.st.provider(req.ProviderID); !ok {
		s.jsonError(c, http.StatusNotFound, "Provider not found", req.ProviderID)
		return
	}

	key := slotKeyAt(req.ProviderID, req.Date)
	if _, taken := s.st.appointments[key]; taken {
		s.jsonError(c, http.StatusBadRequest, "Slot is already booked", "")
		return
	}

	appt := models.Appointment{
		ID:         uuid.NewString(),
		ProviderID: req.ProviderID,
		UserID:     acct.user.ID,
		Date:       req.Date,
	}
	s.st.appointments[key] = appt

	c.JSON(http.StatusCreated, appt)
}
