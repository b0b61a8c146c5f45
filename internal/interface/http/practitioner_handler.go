package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/wellnest/wellnest-api/internal/application"
	"github.com/wellnest/wellnest-api/internal/domain/entity"
	"github.com/wellnest/wellnest-api/pkg/response"
	"github.com/wellnest/wellnest-api/pkg/validation"
)

// PractitionerHandler serves the practitioner dashboard: professional
// profile, availability template, and the appointment schedule.
type PractitionerHandler struct {
	Svc      *app.PractitionerService
	Bookings *app.BookingService
	Logger   *logrus.Logger
}

func NewPractitionerHandler(svc *app.PractitionerService, bookings *app.BookingService, logger *logrus.Logger) *PractitionerHandler {
	return &PractitionerHandler{Svc: svc, Bookings: bookings, Logger: logger}
}

type practitionerProfileRequest struct {
	Specialization    string                      `json:"specialization"`
	ProfessionalTitle string                      `json:"professionalTitle"`
	Bio               string                      `json:"bio" binding:"omitempty,max=500"`
	YearsOfExperience int                         `json:"yearsOfExperience" binding:"omitempty,min=0,max=50"`
	AreasOfExpertise  []string                    `json:"areasOfExpertise"`
	Qualifications    []entity.Qualification      `json:"qualifications"`
	Certifications    []entity.Certification      `json:"certifications"`
	Contact           entity.ContactInformation   `json:"contactInformation"`
	Consultation      *entity.ConsultationDetails `json:"consultationDetails"`
}

// daySlotsRequest is the availability-only form of the profile update: it
// names one weekday and replaces that day's slot list.
type daySlotsRequest struct {
	Day       string            `json:"day" binding:"required,weekday"`
	TimeSlots []entity.TimeSlot `json:"timeSlots" binding:"required"`
}

type toggleDayRequest struct {
	Day       string            `json:"day" binding:"required,weekday"`
	Enabled   *bool             `json:"enabled" binding:"required"`
	TimeSlots []entity.TimeSlot `json:"timeSlots"`
}

type appointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed cancelled"`
}

func practitionerProfileJSON(v *app.ProfileView) gin.H {
	p := v.Profile
	posts := make([]gin.H, 0, len(v.Posts))
	for i := range v.Posts {
		posts = append(posts, postJSON(&v.Posts[i]))
	}
	return gin.H{
		"id":                  p.AccountID,
		"name":                v.Name,
		"email":               v.Email,
		"avatar_url":          v.AvatarURL,
		"specialization":      p.Specialization,
		"professionalTitle":   p.ProfessionalTitle,
		"bio":                 p.Bio,
		"yearsOfExperience":   p.YearsOfExperience,
		"areasOfExpertise":    p.AreasOfExpertise,
		"qualifications":      p.Qualifications,
		"certifications":      p.Certifications,
		"contactInformation":  p.Contact,
		"consultationDetails": p.Consultation,
		"posts":               posts,
	}
}

// GetProfile GET /api/practitioners/profile
func (h *PractitionerHandler) GetProfile(c *gin.Context) {
	v, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, practitionerProfileJSON(v), "profile", nil)
}

// UpdateProfile PUT /api/practitioners/profile
//
// Two request forms share this route: a {day, timeSlots} pair replaces one
// weekday's slot list, anything else full-replaces the professional profile.
func (h *PractitionerHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString("userID")

	var probe struct {
		Day string `json:"day"`
	}
	body, err := c.GetRawData()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable payload", nil)
		return
	}
	_ = jsonUnmarshal(body, &probe)

	if probe.Day != "" {
		var req daySlotsRequest
		if err := bindJSON(body, &req); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
		template, err := h.Svc.SetDaySlots(c.Request.Context(), uid, req.Day, req.TimeSlots)
		if err != nil {
			writeError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"availableDays": template}, "availability updated", nil)
		return
	}

	var req practitionerProfileRequest
	if err := bindJSON(body, &req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p := &entity.PractitionerProfile{
		Specialization:    req.Specialization,
		ProfessionalTitle: req.ProfessionalTitle,
		Bio:               req.Bio,
		YearsOfExperience: req.YearsOfExperience,
		AreasOfExpertise:  req.AreasOfExpertise,
		Qualifications:    req.Qualifications,
		Certifications:    req.Certifications,
		Contact:           req.Contact,
	}
	if req.Consultation != nil {
		p.Consultation = *req.Consultation
	}
	updated, err := h.Svc.UpdateProfile(c.Request.Context(), uid, p)
	if err != nil {
		writeError(c, err)
		return
	}
	v, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	v.Profile = updated
	response.Success(c, http.StatusOK, practitionerProfileJSON(v), "profile updated", nil)
}

// ToggleDay PUT /api/practitioners/availability/days
func (h *PractitionerHandler) ToggleDay(c *gin.Context) {
	uid := c.GetString("userID")
	var req toggleDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	template, err := h.Svc.ToggleDay(c.Request.Context(), uid, req.Day, *req.Enabled, req.TimeSlots)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"availableDays": template}, "availability updated", nil)
}

// ListAppointments GET /api/practitioners/appointments
func (h *PractitionerHandler) ListAppointments(c *gin.Context) {
	list, err := h.Bookings.ListForPractitioner(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for i := range list {
		row := appointmentJSON(&list[i].Appointment)
		row["consumerName"] = list[i].ConsumerName
		row["consumerEmail"] = list[i].ConsumerEmail
		out = append(out, row)
	}
	response.Success(c, http.StatusOK, out, "appointments", nil)
}

// SetAppointmentStatus PUT /api/practitioners/appointments/:id
func (h *PractitionerHandler) SetAppointmentStatus(c *gin.Context) {
	uid := c.GetString("userID")
	var req appointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	appt, err := h.Bookings.SetStatus(c.Request.Context(), uid, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, appointmentJSON(appt), "appointment updated", nil)
}
