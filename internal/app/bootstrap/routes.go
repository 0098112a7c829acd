// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	academicsfeature "github.com/ihsb/ihsbsite/internal/app/features/academics"
	adminsfeature "github.com/ihsb/ihsbsite/internal/app/features/admins"
	admissionsfeature "github.com/ihsb/ihsbsite/internal/app/features/admissions"
	alumnifeature "github.com/ihsb/ihsbsite/internal/app/features/alumni"
	announcementsfeature "github.com/ihsb/ihsbsite/internal/app/features/announcements"
	assistfeature "github.com/ihsb/ihsbsite/internal/app/features/assist"
	contactfeature "github.com/ihsb/ihsbsite/internal/app/features/contact"
	dashboardfeature "github.com/ihsb/ihsbsite/internal/app/features/dashboard"
	eventsfeature "github.com/ihsb/ihsbsite/internal/app/features/events"
	healthfeature "github.com/ihsb/ihsbsite/internal/app/features/health"
	newsfeature "github.com/ihsb/ihsbsite/internal/app/features/news"
	notificationsfeature "github.com/ihsb/ihsbsite/internal/app/features/notifications"
	sportsfeature "github.com/ihsb/ihsbsite/internal/app/features/sports"
	uploadsfeature "github.com/ihsb/ihsbsite/internal/app/features/uploads"
	"github.com/ihsb/ihsbsite/internal/app/system/auth"
	"github.com/ihsb/ihsbsite/internal/app/system/identity"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Public content routes live under /api. Everything under /api/admin passes
// through the access guard, which verifies the bearer token and resolves
// the caller's role on each request.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	svc, err := buildServices(context.Background(), appCfg, deps, logger)
	if err != nil {
		logger.Error("service setup failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint for load balancers and orchestrators
	var ping healthfeature.PingFunc
	if deps.MongoClient != nil {
		ping = healthfeature.MongoPing(deps.MongoClient)
	}
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(ping, deps.Backend, logger)))

	// Locally stored uploads with pre-compressed file support
	if appCfg.StorageType == "local" && strings.HasPrefix(appCfg.StorageLocalURL, "/") {
		prefix := strings.TrimRight(appCfg.StorageLocalURL, "/")
		r.Handle(prefix+"/*", fileserver.Handler(prefix, appCfg.StorageLocalPath))
	}

	formLimit := svc.formLimiter.Middleware(svc.clientIP, logger)

	eventsHandler := eventsfeature.NewHandler(svc.events, svc.notify, logger)
	announcementsHandler := announcementsfeature.NewHandler(svc.announcements, svc.notify, logger)
	newsHandler := newsfeature.NewHandler(svc.news, svc.notify, logger)
	sportsHandler := sportsfeature.NewHandler(svc.sports, svc.notify, logger)
	academicsHandler := academicsfeature.NewHandler(svc.academics, svc.notify, logger)
	alumniHandler := alumnifeature.NewHandler(svc.featured, svc.stories, svc.yearStats, svc.notify, logger)
	uploadsHandler := uploadsfeature.NewHandler(svc.uploader, logger)

	admissionsHandler := admissionsfeature.NewHandler(svc.admissions, svc.notify, svc.mail, uploadsHandler, logger)
	admissionsHandler.OfficeEmail = appCfg.AdmissionsEmail
	admissionsHandler.AdminBaseURL = appCfg.AdminBaseURL

	var contactMail contactfeature.Sender
	if svc.mail.Enabled() {
		contactMail = svc.mail
	}
	contactHandler := contactfeature.NewHandler(contactMail, appCfg.ContactEmail, logger)

	r.Route("/api", func(api chi.Router) {
		// Public site content
		api.Mount("/events", eventsfeature.PublicRoutes(eventsHandler))
		api.Mount("/announcements", announcementsfeature.PublicRoutes(announcementsHandler))
		api.Mount("/news", newsfeature.PublicRoutes(newsHandler))
		api.Mount("/sports-achievements", sportsfeature.PublicRoutes(sportsHandler))
		api.Mount("/academic-achievements", academicsfeature.PublicRoutes(academicsHandler))
		api.Mount("/alumni", alumnifeature.PublicRoutes(alumniHandler))

		// Public forms
		api.Mount("/admissions", admissionsfeature.PublicRoutes(admissionsHandler, formLimit))
		api.Mount("/contact", contactfeature.Routes(contactHandler, formLimit))

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(svc.guard.RequireAdmin)

			dashboardfeature.NewHandler(deps.Store, svc.notify, logger).MountRoutes(admin)

			admin.Mount("/events", eventsfeature.AdminRoutes(eventsHandler))
			admin.Mount("/announcements", announcementsfeature.AdminRoutes(announcementsHandler))
			admin.Mount("/news", newsfeature.AdminRoutes(newsHandler))
			admin.Mount("/sports-achievements", sportsfeature.AdminRoutes(sportsHandler))
			admin.Mount("/academic-achievements", academicsfeature.AdminRoutes(academicsHandler))
			admin.Mount("/alumni", alumnifeature.AdminRoutes(alumniHandler))
			admin.Mount("/admissions", admissionsfeature.AdminRoutes(admissionsHandler))
			admin.Mount("/uploads", uploadsfeature.AdminRoutes(uploadsHandler))

			assistHandler := assistfeature.NewHandler(svc.assistant, logger)
			admin.Mount("/assist", assistfeature.AdminRoutes(assistHandler,
				svc.assistLimiter.Middleware(assistfeature.ActorKey, logger)))

			adminsHandler := adminsfeature.NewHandler(svc.admins, svc.notify, logger)
			admin.Mount("/admins", adminsfeature.AdminRoutes(adminsHandler, auth.RequireRole(logger, identity.RoleSuperadmin)))

			admin.Mount("/notifications", notificationsfeature.AdminRoutes(notificationsfeature.NewHandler(svc.notify, logger)))
		})
	})

	return r, nil
}
