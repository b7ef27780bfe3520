package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/soccerhub/backend/handlers"
	"github.com/soccerhub/backend/middleware"
	"github.com/soccerhub/backend/models"
)

// SetupRoutes mounts the full REST API, the websocket endpoint and the
// swagger UI on the router.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	organizationHandler *handlers.OrganizationHandler,
	tournamentHandler *handlers.TournamentHandler,
	divisionHandler *handlers.DivisionHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	venueHandler *handlers.VenueHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	authenticate := middleware.Authenticate(jwtSecret)
	manageOnly := middleware.Authorize(models.RoleAdmin, models.RoleOrganizer)

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/organizations", func(r chi.Router) {
			r.Get("/", organizationHandler.ListOrganizations)
			r.Get("/{organizationID}", organizationHandler.GetOrganizationByID)
			r.Get("/{organizationID}/tournaments", organizationHandler.ListOrganizationTournaments)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, manageOnly)
				r.Post("/", organizationHandler.CreateOrganization)
				r.Put("/{organizationID}", organizationHandler.UpdateOrganization)
				r.Delete("/{organizationID}", organizationHandler.DeleteOrganization)
			})
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListTournaments)
			r.Get("/{tournamentID}", tournamentHandler.GetTournamentByID)
			r.Get("/{tournamentID}/divisions", tournamentHandler.ListTournamentDivisions)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, manageOnly)
				r.Post("/", tournamentHandler.CreateTournament)
				r.Put("/{tournamentID}", tournamentHandler.UpdateTournament)
				r.Patch("/{tournamentID}/status", tournamentHandler.UpdateTournamentStatus)
				r.Delete("/{tournamentID}", tournamentHandler.DeleteTournament)
			})
		})

		r.Route("/divisions", func(r chi.Router) {
			r.Get("/", divisionHandler.ListDivisions)
			r.Get("/{divisionID}", divisionHandler.GetDivisionByID)
			r.Get("/{divisionID}/summary", divisionHandler.GetDivisionSummary)
			r.Get("/{divisionID}/standings", divisionHandler.GetStandings)
			r.Get("/{divisionID}/matches", matchHandler.ListMatchesByDivision)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, manageOnly)
				r.Post("/", divisionHandler.CreateDivision)
				r.Put("/{divisionID}", divisionHandler.UpdateDivision)
				r.Delete("/{divisionID}", divisionHandler.DeleteDivision)
				r.Post("/{divisionID}/schedule", divisionHandler.GenerateSchedule)
				r.Post("/{divisionID}/playoffs", divisionHandler.GeneratePlayoffs)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.ListTeams)
			r.Get("/{teamID}", teamHandler.GetTeamByID)
			r.Get("/{teamID}/players", teamHandler.ListTeamPlayers)
			r.Get("/{teamID}/matches", teamHandler.ListTeamMatches)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, manageOnly)
				r.Post("/", teamHandler.CreateTeam)
				r.Put("/{teamID}", teamHandler.UpdateTeam)
				r.Put("/{teamID}/crest", teamHandler.UploadTeamCrest)
				r.Delete("/{teamID}", teamHandler.DeleteTeam)
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.ListPlayers)
			r.Get("/{playerID}", playerHandler.GetPlayerByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, manageOnly)
				r.Post("/", playerHandler.CreatePlayer)
				r.Put("/{playerID}", playerHandler.UpdatePlayer)
				r.Delete("/{playerID}", playerHandler.DeletePlayer)
			})
		})

		r.Route("/venues", func(r chi.Router) {
			r.Get("/", venueHandler.ListVenues)
			r.Get("/{venueID}", venueHandler.GetVenueByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, manageOnly)
				r.Post("/", venueHandler.CreateVenue)
				r.Put("/{venueID}", venueHandler.UpdateVenue)
				r.Delete("/{venueID}", venueHandler.DeleteVenue)
			})
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.ListMatches)
			r.Get("/{matchID}", matchHandler.GetMatchByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, manageOnly)
				r.Post("/", matchHandler.CreateMatch)
				r.Put("/{matchID}", matchHandler.UpdateMatch)
				r.Put("/{matchID}/result", matchHandler.RecordResult)
				r.Delete("/{matchID}", matchHandler.DeleteMatch)
			})
		})
	})

	router.Get("/ws/divisions/{divisionID}", webSocketHandler.ServeDivision)
}
