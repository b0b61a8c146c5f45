package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/wellnest/wellnest-api/internal/application"
	"github.com/wellnest/wellnest-api/internal/domain/entity"
	"github.com/wellnest/wellnest-api/pkg/response"
	"github.com/wellnest/wellnest-api/pkg/validation"
)

// UserHandler serves the consumer-side endpoints: wellness profile,
// avatar, booking, and the consumer's appointment list.
type UserHandler struct {
	Accounts *app.AccountService
	Bookings *app.BookingService
	Logger   *logrus.Logger
}

func NewUserHandler(accounts *app.AccountService, bookings *app.BookingService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Accounts: accounts, Bookings: bookings, Logger: logger}
}

type consumerProfileRequest struct {
	Age         *int     `json:"age" binding:"omitempty,min=0,max=120"`
	Gender      string   `json:"gender" binding:"omitempty,gender"`
	About       string   `json:"about" binding:"omitempty,max=500"`
	HealthGoals []string `json:"healthGoals"`
	Interests   []string `json:"interests"`
}

type bookingRequest struct {
	PractitionerID   string `json:"practitionerId" binding:"required,uuid"`
	Date             string `json:"date" binding:"required"` // YYYY-MM-DD
	Start            string `json:"start" binding:"required,hhmm"`
	End              string `json:"end" binding:"required,hhmm"`
	ConsultationType string `json:"consultationType" binding:"required,consultation_type"`
	Notes            string `json:"notes" binding:"omitempty,max=500"`
}

func consumerProfileJSON(p *entity.ConsumerProfile, a *entity.Account) gin.H {
	return gin.H{
		"id":          a.ID,
		"name":        a.Name,
		"email":       a.Email,
		"avatar_url":  a.AvatarURL,
		"age":         p.Age,
		"gender":      p.Gender,
		"about":       p.About,
		"healthGoals": p.HealthGoals,
		"interests":   p.Interests,
	}
}

func appointmentJSON(a *entity.Appointment) gin.H {
	return gin.H{
		"id":               a.ID,
		"practitionerId":   a.PractitionerID,
		"consumerId":       a.ConsumerID,
		"date":             a.Date.Format("2006-01-02"),
		"start":            a.SlotStart,
		"end":              a.SlotEnd,
		"consultationType": a.Type,
		"notes":            a.Notes,
		"status":           a.Status,
		"created_at":       a.CreatedAt,
		"updated_at":       a.UpdatedAt,
	}
}

// GetProfile GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	p, a, err := h.Accounts.GetConsumerProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, consumerProfileJSON(p, a), "profile", nil)
}

// UpdateProfile PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString("userID")
	var req consumerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Accounts.UpdateConsumerProfile(c.Request.Context(), uid, app.ConsumerProfileInput{
		Age:         req.Age,
		Gender:      req.Gender,
		About:       req.About,
		HealthGoals: req.HealthGoals,
		Interests:   req.Interests,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	a, err := h.Accounts.GetAccount(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, consumerProfileJSON(p, a), "profile updated", nil)
}

// UploadAvatar POST /api/users/avatar (multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString("userID")
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing avatar file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable avatar file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Accounts.UploadAvatar(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}

// Book POST /api/users/appointments
func (h *UserHandler) Book(c *gin.Context) {
	uid := c.GetString("userID")
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		return
	}

	appt, err := h.Bookings.Book(c.Request.Context(), uid, app.BookingRequest{
		PractitionerID: req.PractitionerID,
		Date:           date,
		Start:          req.Start,
		End:            req.End,
		Type:           req.ConsultationType,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, appointmentJSON(appt), "appointment requested", nil)
}

// ListAppointments GET /api/users/appointments
func (h *UserHandler) ListAppointments(c *gin.Context) {
	list, err := h.Bookings.ListForConsumer(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for i := range list {
		row := appointmentJSON(&list[i].Appointment)
		row["practitionerName"] = list[i].PractitionerName
		row["practitionerTitle"] = list[i].PractitionerTitle
		out = append(out, row)
	}
	response.Success(c, http.StatusOK, out, "appointments", nil)
}
