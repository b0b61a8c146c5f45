package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wellnest/wellnest-api/internal/container"
	handlers "github.com/wellnest/wellnest-api/internal/interface/http"
	"github.com/wellnest/wellnest-api/internal/interface/middleware"
)

// DirectoryModule wires the public practitioner directory. No auth: the
// directory is the browse-before-signup surface.
type DirectoryModule struct {
	Handler *handlers.DirectoryHandler
}

func NewDirectoryModule(h *handlers.DirectoryHandler) *DirectoryModule {
	return &DirectoryModule{Handler: h}
}

func (m *DirectoryModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRateLimiter(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/directory", rl, m.Handler.List)
	rg.GET("/directory/:id", rl, m.Handler.Get)
}
