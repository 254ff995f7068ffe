package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Davie521/LeagueSwissStageProbability/handlers"
	"github.com/Davie521/LeagueSwissStageProbability/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	authHandler *handlers.AuthHandler,
	stageHandler *handlers.StageHandler,
	probabilityHandler *handlers.ProbabilityHandler,
	rosterHandler *handlers.RosterHandler,
	matchHandler *handlers.MatchHandler,
	snapshotHandler *handlers.SnapshotHandler,
	webSocketHandler *handlers.WebSocketHandler,
	jwtSecret []byte,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/token", authHandler.IssueToken)

	router.Route("/stage", func(r chi.Router) {
		r.Get("/", stageHandler.GetStandings)
		r.Get("/groups", stageHandler.GetGroupsPreview)
		r.Get("/groups/{record}/pairings", stageHandler.GetGroupPairings)
	})

	router.Post("/probability", probabilityHandler.ComputeMatchup)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Post("/teams", rosterHandler.CreateTeam)
		r.Post("/matches", rosterHandler.CreateMatch)
		r.Post("/matches/{id}/result", matchHandler.RecordResult)
		r.Post("/snapshots", snapshotHandler.Export)
	})

	router.Get("/ws", webSocketHandler.ServeFeed)
}
