package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/twinsuns/league-hq/internal/api/handlers"
	"github.com/twinsuns/league-hq/internal/api/response"
	"github.com/twinsuns/league-hq/internal/version"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		cardHandler := handlers.NewCardHandler(s.store)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.SearchCards)
			r.Get("/resolve", cardHandler.ResolveCard)
			r.Post("/reload", cardHandler.ReloadCatalog)
			r.Get("/{cardID}", cardHandler.GetCard)
		})

		poolHandler := handlers.NewPoolHandler(s.pools, s.store)
		r.Route("/pools", func(r chi.Router) {
			r.Post("/", poolHandler.UpsertEntry)
			r.Get("/merged", poolHandler.GetMergedPool)
			r.Get("/{ownerID}", poolHandler.GetPool)
		})

		deckHandler := handlers.NewDeckHandler(s.decks, s.pools, s.store)
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.ListDecks)
			r.Post("/", deckHandler.SaveDeck)
			r.Post("/import", deckHandler.ImportDeck)
			r.Get("/{deckID}", deckHandler.GetDeck)
			r.Delete("/{deckID}", deckHandler.DeleteDeck)
			r.Get("/{deckID}/export", deckHandler.ExportDeck)
			r.Post("/{deckID}/reconcile", deckHandler.ReconcileDeck)
			r.Get("/{deckID}/analyze", deckHandler.AnalyzeDeck)
			r.Get("/{deckID}/charts", deckHandler.DeckCharts)
		})

		tournamentHandler := handlers.NewTournamentHandler(s.tournaments)
		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListTournaments)
			r.Post("/", tournamentHandler.CreateTournament)
			r.Post("/schedule", tournamentHandler.GenerateSchedule)
			r.Get("/{tournamentID}", tournamentHandler.GetTournament)
			r.Post("/{tournamentID}/matches", tournamentHandler.RecordMatch)
			r.Get("/{tournamentID}/matches", tournamentHandler.ListMatches)
			r.Get("/{tournamentID}/standings", tournamentHandler.GetStandings)
		})

		metaHandler := handlers.NewMetaHandler(s.metaService, s.store)
		r.Get("/meta/{tournamentID}", metaHandler.GetSnapshot)

		systemHandler := handlers.NewSystemHandler(s.db, s.backups)
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", systemHandler.GetStatus)
			r.Post("/backup", systemHandler.CreateBackup)
			r.Get("/backups", systemHandler.ListBackups)
		})
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "league-hq-api",
		"version": version.GetVersion(),
	})
}
