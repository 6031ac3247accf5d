package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peterkuimelis/ptcgd/internal/card"
)

func (s *Server) getCard(c *gin.Context) {
	cd, ok := s.catalog.ByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: "card not found"})
		return
	}
	c.JSON(http.StatusOK, cd)
}

type scoreResponse struct {
	CardID   string  `json:"cardId"`
	Name     string  `json:"name"`
	HP       float64 `json:"hpScore"`
	Attack   float64 `json:"attackScore"`
	Ability  float64 `json:"abilityScore"`
	Score    float64 `json:"score"`
	Category string  `json:"category"`
}

func (s *Server) scoreCard(c *gin.Context) {
	cd, ok := s.catalog.ByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: "card not found"})
		return
	}
	lineLength := 1
	if v := c.Query("lineLength"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, errorBody{Code: "INVALID_ACTION", Message: "lineLength must be a positive integer"})
			return
		}
		lineLength = n
	}
	score := card.ScoreCard(card.ScoreInput{Card: cd, LineLength: lineLength})
	c.JSON(http.StatusOK, scoreResponse{
		CardID:   cd.ID,
		Name:     cd.Name,
		HP:       score.HP.Normalized,
		Attack:   score.Attack.Normalized,
		Ability:  score.Ability.Normalized,
		Score:    score.Score,
		Category: score.Category,
	})
}

func (s *Server) listCards(c *gin.Context) {
	if set := c.Query("set"); set != "" {
		c.JSON(http.StatusOK, s.catalog.BySet(set))
		return
	}
	if name := c.Query("name"); name != "" {
		c.JSON(http.StatusOK, s.catalog.ByName(name))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": s.catalog.Size()})
}

func (s *Server) listSets(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Sets())
}
