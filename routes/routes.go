package routes

import (
	"net/http"

	"github.com/fnitalia/community-hub/handlers"
	"github.com/fnitalia/community-hub/middleware"
	"github.com/fnitalia/community-hub/models"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	News       *handlers.NewsHandler
	Tournament *handlers.TournamentHandler
	Player     *handlers.PlayerHandler
	Campaign   *handlers.CampaignHandler
	Prediction *handlers.PredictionHandler
	Newsletter *handlers.NewsletterHandler
	Dashboard  *handlers.DashboardHandler
	Websocket  *handlers.WebsocketHandler
}

// SetupRoutes builds the full route tree. Public reads need no token;
// everything mutating site content sits behind the admin role.
func SetupRoutes(h Handlers, jwtSecret []byte, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		// Public reads
		r.Get("/news", h.News.List)
		r.Get("/news/{newsID}", h.News.GetByID)
		r.Get("/tournaments", h.Tournament.List)
		r.Get("/tournaments/{tournamentID}", h.Tournament.GetByID)
		r.Get("/players", h.Player.Leaderboard)
		r.Get("/players/{playerID}", h.Player.GetByID)
		r.Get("/campaigns/active", h.Campaign.GetActive)
		r.Get("/campaigns/{campaignID}", h.Campaign.GetByID)

		// Public writes
		r.Post("/predictions", h.Prediction.Submit)
		r.Get("/predictions", h.Prediction.Feed)
		r.Post("/newsletter/subscribe", h.Newsletter.Subscribe)

		// Live channel
		r.Get("/ws/live", h.Websocket.Subscribe)

		// Admin
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(models.RoleAdmin))

			r.Get("/dashboard", h.Dashboard.GetStats)

			r.Put("/users/{userID}/role", h.Auth.UpdateUserRole)

			r.Post("/news", h.News.Create)
			r.Put("/news/{newsID}", h.News.Update)
			r.Delete("/news/{newsID}", h.News.Delete)
			r.Post("/news/{newsID}/image", h.News.UploadImage)

			r.Post("/tournaments", h.Tournament.Create)
			r.Put("/tournaments/{tournamentID}", h.Tournament.Update)
			r.Delete("/tournaments/{tournamentID}", h.Tournament.Delete)
			r.Post("/tournaments/{tournamentID}/image", h.Tournament.UploadImage)

			r.Post("/players", h.Player.Create)
			r.Put("/players/{playerID}", h.Player.Update)
			r.Delete("/players/{playerID}", h.Player.Delete)
			r.Post("/players/{playerID}/image", h.Player.UploadImage)

			r.Get("/campaigns", h.Campaign.List)
			r.Post("/campaigns", h.Campaign.Create)
			r.Put("/campaigns/{campaignID}", h.Campaign.Update)
			r.Delete("/campaigns/{campaignID}", h.Campaign.Delete)

			r.Get("/predictions", h.Prediction.Feed)
			r.Delete("/predictions/{predictionID}", h.Prediction.Delete)

			r.Get("/newsletter", h.Newsletter.ListSubscribers)
			r.Delete("/newsletter/{subscriberID}", h.Newsletter.Unsubscribe)
			r.Post("/newsletter/send", h.Newsletter.SendBroadcast)
		})
	})

	return r
}
