// Package httpapi exposes the stores, session guard and update feeds
// over HTTP: public routes for the site pages, session routes for the
// admin login, and session-guarded admin routes for everything else.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/config"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/notify"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/services"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/session"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/store"
)

type Server struct {
	Config   config.Config
	Store    *store.Store
	Guard    *session.Guard
	Mailer   *services.Mailer
	Sampler  *services.Sampler
	Hub      *services.UpdatesHub
	Notifier *notify.Notifier
}

func NewServer(cfg config.Config, st *store.Store, guard *session.Guard, mailer *services.Mailer, sampler *services.Sampler, hub *services.UpdatesHub, notifier *notify.Notifier) *Server {
	return &Server{
		Config:   cfg,
		Store:    st,
		Guard:    guard,
		Mailer:   mailer,
		Sampler:  sampler,
		Hub:      hub,
		Notifier: notifier,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", s.Login)
		api.Post("/auth/logout", s.Logout)
		api.Get("/auth/session", s.SessionInfo)

		api.Route("/public", func(pub chi.Router) {
			pub.Post("/registrations", s.SubmitRegistration)
			pub.Post("/messages", s.SubmitMessage)
			pub.Get("/competitions", s.PublicCompetitions)
			pub.Get("/competitions/featured", s.FeaturedCompetition)
			pub.Get("/gallery/photos", s.PublicPhotos)
			pub.Get("/gallery/videos", s.PublicVideos)
			pub.Get("/gallery/press", s.PublicPress)
			pub.Get("/content/home", s.HomePage)
			pub.Get("/content/activities", s.ActivitiesPage)
			pub.Get("/content/countdown", s.Countdown)
			pub.Get("/updates/{topic}", s.TopicUpdated)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(WithSession(s.Guard))

			admin.Get("/stats", s.DashboardStats)
			admin.Get("/audit", s.AuditLog)
			admin.Get("/health/history", s.HealthHistory)

			admin.Route("/registrations", func(regs chi.Router) {
				regs.Get("/", s.ListRegistrations)
				regs.Get("/export", s.ExportRegistrations)
				regs.Get("/schools", s.RegistrationSchools)
				regs.Put("/{id}/status", s.SetRegistrationStatus)
				regs.Delete("/legacy", s.DeleteLegacyRegistration)
				regs.Delete("/{id}", s.DeleteRegistration)
			})

			admin.Route("/messages", func(msgs chi.Router) {
				msgs.Get("/", s.ListMessages)
				msgs.Put("/{id}/read", s.MarkMessageRead)
				msgs.Post("/{id}/reply", s.ReplyToMessage)
				msgs.Delete("/{id}", s.DeleteMessage)
			})

			admin.Route("/competitions", func(comps chi.Router) {
				comps.Get("/", s.ListCompetitions)
				comps.Post("/", s.CreateCompetition)
				comps.Put("/{id}", s.UpdateCompetition)
				comps.Delete("/{id}", s.DeleteCompetition)
				comps.Put("/{id}/featured", s.FeatureCompetition)
				comps.Post("/{id}/featured/toggle", s.ToggleFeaturedCompetition)
			})

			admin.Route("/gallery", func(gallery chi.Router) {
				gallery.Post("/photos", s.UploadPhotos)
				gallery.Delete("/photos/{id}", s.DeletePhoto)
				gallery.Post("/videos", s.UploadVideo)
				gallery.Delete("/videos/{id}", s.DeleteVideo)
				gallery.Post("/press", s.UploadPress)
				gallery.Delete("/press/{id}", s.DeletePress)
			})

			admin.Route("/content", func(content chi.Router) {
				content.Put("/home", s.SaveHomePage)
				content.Put("/activities", s.SaveActivitiesPage)
			})
		})
	})

	r.Get("/ws/updates", s.UpdatesSocket)
	return r
}
