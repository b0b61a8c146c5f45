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

// UserModule wires the consumer-side routes: wellness profile, avatar,
// booking, and appointment history. All routes require a consumer session.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRateLimiter(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRateLimiter(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	auth.Use(middleware.RequireRole(string(entity.RoleConsumer)))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/avatar", m.Handler.UploadAvatar)
		auth.GET("/appointments", m.Handler.ListAppointments)
		auth.POST("/appointments", m.Handler.Book)
	}
}
