// Package httpapi exposes the polling match API, deck management, and
// catalog queries over HTTP. Clients poll GET state and diff snapshots;
// POST action returns the updated projection or a typed error.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/match"
	"github.com/peterkuimelis/ptcgd/internal/repo"
	"github.com/peterkuimelis/ptcgd/internal/service"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	matches *service.MatchService
	decks   *service.DeckService
	catalog *card.Catalog
	logger  *zap.Logger
}

// NewServer builds the server.
func NewServer(matches *service.MatchService, decks *service.DeckService, cat *card.Catalog, logger *zap.Logger) *Server {
	return &Server{matches: matches, decks: decks, catalog: cat, logger: logger}
}

// Router mounts all routes on a fresh gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.POST("/matches", s.createMatch)
		api.POST("/matches/:id/join", s.joinMatch)
		api.POST("/matches/:id/start", s.startMatch)
		api.GET("/matches/:id/state", s.getState)
		api.POST("/matches/:id/actions", s.executeAction)
		api.DELETE("/matches/:id", s.cancelMatch)

		api.POST("/decks", s.saveDeck)
		api.GET("/decks", s.listDecks)
		api.GET("/decks/:id", s.getDeck)
		api.DELETE("/decks/:id", s.deleteDeck)

		api.GET("/cards/:id", s.getCard)
		api.GET("/cards/:id/score", s.scoreCard)
		api.GET("/cards", s.listCards)
		api.GET("/sets", s.listSets)
	}
	return r
}

// errorBody is the wire shape of every error response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, repo.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: err.Error()})
		return
	}
	if ae := match.AsActionError(err); ae != nil {
		status := http.StatusBadRequest
		switch ae.Code {
		case match.ErrInvalidState, match.ErrNotPlayerTurn, match.ErrRuleViolation, match.ErrInvalidPhase:
			status = http.StatusConflict
		}
		c.JSON(status, errorBody{Code: string(ae.Code), Message: ae.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, errorBody{Code: "INTERNAL", Message: err.Error()})
}
