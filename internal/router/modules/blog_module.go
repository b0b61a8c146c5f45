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

// BlogModule wires the article routes. Reading is public; writing requires
// a practitioner session.
type BlogModule struct {
	Handler *handlers.BlogHandler
	JWT     *helpers.JWTManager
}

func NewBlogModule(h *handlers.BlogHandler, jwt *helpers.JWTManager) *BlogModule {
	return &BlogModule{Handler: h, JWT: jwt}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRateLimiter(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/blog", rl, m.Handler.List)
	rg.GET("/blog/:id", rl, m.Handler.Get)
	rg.GET("/blog/:id/related", rl, m.Handler.Related)

	auth := rg.Group("/blog")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRateLimiter(), 60, time.Minute, middleware.KeyByUserID(), nil))
	auth.Use(middleware.RequireRole(string(entity.RolePractitioner)))
	{
		auth.POST("", m.Handler.Create)
		auth.PUT("/:id", m.Handler.Update)
	}
}
