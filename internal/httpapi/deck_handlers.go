package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peterkuimelis/ptcgd/internal/deck"
)

type deckEntryRequest struct {
	CardID   string `json:"cardId" binding:"required"`
	SetName  string `json:"setName" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type saveDeckRequest struct {
	Name         string             `json:"name" binding:"required"`
	CreatedBy    string             `json:"createdBy" binding:"required"`
	TournamentID string             `json:"tournamentId"`
	Cards        []deckEntryRequest `json:"cards"`
}

type deckResponse struct {
	DeckID     string   `json:"deckId"`
	Name       string   `json:"name"`
	CreatedBy  string   `json:"createdBy"`
	CardCount  int      `json:"cardCount"`
	IsValid    bool     `json:"isValid"`
	Errors     []string `json:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	UniqueSets []string `json:"uniqueSets,omitempty"`
}

func (s *Server) saveDeck(c *gin.Context) {
	var req saveDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Code: "INVALID_ACTION", Message: err.Error()})
		return
	}
	d := deck.New(req.Name, req.CreatedBy)
	d.TournamentID = req.TournamentID
	for _, e := range req.Cards {
		if err := d.AddCard(e.CardID, e.SetName, e.Quantity); err != nil {
			c.JSON(http.StatusBadRequest, errorBody{Code: "INVALID_ACTION", Message: err.Error()})
			return
		}
	}
	result, err := s.decks.SaveDeck(c.Request.Context(), d)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deckResponse{
		DeckID:     d.ID,
		Name:       d.Name,
		CreatedBy:  d.CreatedBy,
		CardCount:  d.GetTotalCardCount(),
		IsValid:    result.IsValid,
		Errors:     result.Errors,
		Warnings:   result.Warnings,
		UniqueSets: d.GetUniqueSets(),
	})
}

func (s *Server) getDeck(c *gin.Context) {
	d, err := s.decks.GetDeck(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) listDecks(c *gin.Context) {
	if creator := c.Query("createdBy"); creator != "" {
		out, err := s.decks.ListDecksByCreator(c.Request.Context(), creator)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
		return
	}
	out, err := s.decks.ListDecks(c.Request.Context(), c.Query("tournamentId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteDeck(c *gin.Context) {
	if err := s.decks.DeleteDeck(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
