package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/wellnest/wellnest-api/internal/application"
	repo "github.com/wellnest/wellnest-api/internal/domain/repository"
	"github.com/wellnest/wellnest-api/pkg/response"
)

// DirectoryHandler serves the consumer-facing practitioner directory.
type DirectoryHandler struct {
	Svc    *app.PractitionerService
	Logger *logrus.Logger
}

func NewDirectoryHandler(svc *app.PractitionerService, logger *logrus.Logger) *DirectoryHandler {
	return &DirectoryHandler{Svc: svc, Logger: logger}
}

func directoryEntryJSON(e *repo.DirectoryEntry) gin.H {
	return gin.H{
		"id":                  e.ID,
		"name":                e.Name,
		"avatar_url":          e.AvatarURL,
		"specialization":      e.Specialization,
		"professionalTitle":   e.ProfessionalTitle,
		"bio":                 e.Bio,
		"areasOfExpertise":    e.AreasOfExpertise,
		"consultationFee":     e.ConsultationFee,
		"consultationMethods": e.ConsultationMethods,
		"isAvailable":         e.IsAvailable,
	}
}

// List GET /api/directory
//
// Optional query params: specialization (substring match), method (exact
// consultation method), available=true (only practitioners accepting
// consultations).
func (h *DirectoryHandler) List(c *gin.Context) {
	f := repo.DirectoryFilter{
		Specialization: c.Query("specialization"),
		Method:         c.Query("method"),
		AvailableOnly:  c.Query("available") == "true",
	}
	entries, err := h.Svc.ListDirectory(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(entries))
	for i := range entries {
		out = append(out, directoryEntryJSON(&entries[i]))
	}
	response.Success(c, http.StatusOK, out, "directory", gin.H{"count": len(out)})
}

// Get GET /api/directory/:id
func (h *DirectoryHandler) Get(c *gin.Context) {
	e, p, err := h.Svc.GetDirectoryDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	detail := directoryEntryJSON(e)
	detail["yearsOfExperience"] = p.YearsOfExperience
	detail["qualifications"] = p.Qualifications
	detail["certifications"] = p.Certifications
	detail["contactInformation"] = p.Contact
	detail["availableDays"] = p.Consultation.AvailableDays
	response.Success(c, http.StatusOK, detail, "practitioner", nil)
}
