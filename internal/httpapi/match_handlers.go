package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createMatchRequest struct {
	PlayerID     string `json:"playerId" binding:"required"`
	DeckID       string `json:"deckId" binding:"required"`
	TournamentID string `json:"tournamentId"`
}

func (s *Server) createMatch(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Code: "INVALID_ACTION", Message: err.Error()})
		return
	}
	m, err := s.matches.CreateMatch(c.Request.Context(), req.PlayerID, req.DeckID, req.TournamentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"matchId": m.ID, "state": m.State.String()})
}

type joinMatchRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	DeckID   string `json:"deckId" binding:"required"`
}

func (s *Server) joinMatch(c *gin.Context) {
	var req joinMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Code: "INVALID_ACTION", Message: err.Error()})
		return
	}
	m, err := s.matches.JoinMatch(c.Request.Context(), c.Param("id"), req.PlayerID, req.DeckID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchId": m.ID, "state": m.State.String()})
}

type startMatchRequest struct {
	// FirstPlayer fixes the opening seat; omit it to let the coin flip
	// decide.
	FirstPlayer *int `json:"firstPlayer"`
}

func (s *Server) startMatch(c *gin.Context) {
	var req startMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Code: "INVALID_ACTION", Message: err.Error()})
		return
	}
	first := -1
	if req.FirstPlayer != nil {
		first = *req.FirstPlayer
	}
	m, err := s.matches.StartMatch(c.Request.Context(), c.Param("id"), first)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchId": m.ID, "state": m.State.String()})
}

func (s *Server) getState(c *gin.Context) {
	playerID := c.Query("playerId")
	if playerID == "" {
		c.JSON(http.StatusBadRequest, errorBody{Code: "INVALID_ACTION", Message: "playerId is required"})
		return
	}
	p, err := s.matches.GetState(c.Request.Context(), c.Param("id"), playerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type actionRequest struct {
	PlayerID   string         `json:"playerId" binding:"required"`
	ActionType string         `json:"actionType" binding:"required"`
	ActionData map[string]any `json:"actionData"`
}

func (s *Server) executeAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Code: "INVALID_ACTION", Message: err.Error()})
		return
	}
	p, err := s.matches.ExecuteAction(c.Request.Context(), c.Param("id"), req.PlayerID, req.ActionType, req.ActionData)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type cancelMatchRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Reason   string `json:"reason"`
}

func (s *Server) cancelMatch(c *gin.Context) {
	var req cancelMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Code: "INVALID_ACTION", Message: err.Error()})
		return
	}
	if err := s.matches.CancelMatch(c.Request.Context(), c.Param("id"), req.PlayerID, req.Reason); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
