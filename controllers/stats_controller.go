package controllers

import (
	"fmt"
	"net/http"

	"PlayoffPredictor/models"
	"PlayoffPredictor/responses"

	"github.com/gin-gonic/gin"
)

// GetPickStats aggregates how often each team is picked at each slot
// across all saved brackets.
func (server *Server) GetPickStats(c *gin.Context) {

	errList = map[string]string{}

	type slotCount struct {
		Conference string
		Round      int
		Game       int
		TeamID     string
		Count      int64
	}

	var counts []slotCount
	err := server.DB.Model(&models.Pick{}).
		Select("conference, round, game, team_id, COUNT(*) as count").
		Group("conference, round, game, team_id").
		Order("round, conference, game, count DESC").
		Find(&counts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not load pick stats",
		})
		return
	}

	slotKey := func(sc slotCount) string {
		return fmt.Sprintf("%s/%d/%d", sc.Conference, sc.Round, sc.Game)
	}

	// Percentages are per slot, not per round.
	slotTotals := make(map[string]int64)
	for _, sc := range counts {
		slotTotals[slotKey(sc)] += sc.Count
	}

	stats := make([]responses.SlotStatResponse, 0, len(counts))
	for _, sc := range counts {
		key := slotKey(sc)
		var pct float64
		if total := slotTotals[key]; total > 0 {
			pct = float64(sc.Count) / float64(total) * 100
		}
		stats = append(stats, responses.SlotStatResponse{
			Conference: sc.Conference,
			Round:      sc.Round,
			Game:       sc.Game,
			TeamID:     sc.TeamID,
			Count:      sc.Count,
			Percentage: pct,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": stats,
	})
}
