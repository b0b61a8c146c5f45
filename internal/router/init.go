package router

import (
	app "github.com/wellnest/wellnest-api/internal/application"
	"github.com/wellnest/wellnest-api/internal/container"
	pginfra "github.com/wellnest/wellnest-api/internal/infrastructure/postgres"
	handlers "github.com/wellnest/wellnest-api/internal/interface/http"
	"github.com/wellnest/wellnest-api/internal/router/modules"
)

// InitModules builds the repository/service/handler graph from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	accounts := pginfra.NewAccountRepository(pool)
	practitioners := pginfra.NewPractitionerRepository(pool)
	appointments := pginfra.NewAppointmentRepository(pool)
	posts := pginfra.NewPostRepository(pool)

	accountSvc := app.NewAccountService(accounts, container.GetJWT(), container.GetRedis(), container.GetGCS(), cfg.GCSBucket, logger)
	practitionerSvc := app.NewPractitionerService(accounts, practitioners, posts, logger)

	var notify app.Notifier
	if pub := container.GetRabbitPub(); pub != nil {
		notify = pub
	}
	bookingSvc := app.NewBookingService(accounts, practitioners, appointments, notify, logger)

	var embedder app.Embedder
	if e := container.GetEmbedder(); e != nil {
		embedder = e
	}
	postSvc := app.NewPostService(accounts, posts, container.GetES(), cfg.ESPostsIndex, embedder, logger)

	authHandler := handlers.NewAuthHandler(accountSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(accountSvc, bookingSvc, logger)
	practitionerHandler := handlers.NewPractitionerHandler(practitionerSvc, bookingSvc, logger)
	directoryHandler := handlers.NewDirectoryHandler(practitionerSvc, logger)
	blogHandler := handlers.NewBlogHandler(postSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewPractitionerModule(practitionerHandler, container.GetJWT()))
	r.Add(modules.NewDirectoryModule(directoryHandler))
	r.Add(modules.NewBlogModule(blogHandler, container.GetJWT()))
	r.Add(modules.NewDebugModule())
}
