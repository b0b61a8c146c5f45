package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wellnest/wellnest-api/internal/container"
	"github.com/wellnest/wellnest-api/internal/domain/entity"
	handlers "github.com/wellnest/wellnest-api/internal/interface/http"
	"github.com/wellnest/wellnest-api/internal/interface/middleware"
	"github.com/wellnest/wellnest-api/pkg/helpers"
)

// PractitionerModule wires the practitioner dashboard routes: professional
// profile, availability template, and the appointment schedule. All routes
// require a practitioner session.
type PractitionerModule struct {
	Handler *handlers.PractitionerHandler
	JWT     *helpers.JWTManager
}

func NewPractitionerModule(h *handlers.PractitionerHandler, jwt *helpers.JWTManager) *PractitionerModule {
	return &PractitionerModule{Handler: h, JWT: jwt}
}

func (m *PractitionerModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/practitioners")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRateLimiter(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRateLimiter(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	auth.Use(middleware.RequireRole(string(entity.RolePractitioner)))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.PUT("/availability/days", m.Handler.ToggleDay)
		auth.GET("/appointments", m.Handler.ListAppointments)
		auth.PUT("/appointments/:id", m.Handler.SetAppointmentStatus)
	}
}
