package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"PlayoffPredictor/bracket"
	"PlayoffPredictor/cache"
	"PlayoffPredictor/models"
	"PlayoffPredictor/responses"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard scores every member's bracket against the recorded
// results with the group's own weights. Standings are cached briefly;
// result and membership writes invalidate the cache.
func (server *Server) GetLeaderboard(c *gin.Context) {

	errList = map[string]string{}

	group, ok := server.findGroupParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	cacheKey := leaderboardCacheKey(group.ID)

	if cached, err := cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var view responses.LeaderboardResponse
		if err := json.Unmarshal([]byte(cached), &view); err == nil {
			c.JSON(http.StatusOK, gin.H{
				"status":   http.StatusOK,
				"response": view,
			})
			return
		}
	}

	view, err := server.buildLeaderboard(group)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not build leaderboard",
		})
		return
	}

	if payload, err := json.Marshal(view); err == nil {
		if err := cache.Set(ctx, cacheKey, payload, leaderboardCacheTTL); err != nil {
			log.Printf("leaderboard cache write failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": view,
	})
}

func (server *Server) buildLeaderboard(group *models.Group) (*responses.LeaderboardResponse, error) {
	memberModel := models.GroupMember{}
	members, err := memberModel.FindMembers(server.DB, group.ID)
	if err != nil {
		return nil, err
	}

	resultModel := models.GameResult{}
	results, err := resultModel.ResultSet(server.DB)
	if err != nil {
		return nil, err
	}

	userModel := models.User{}
	pickModel := models.Pick{}

	entrants := make([]bracket.Entrant, 0, len(*members))
	for _, m := range *members {
		user, err := userModel.FindUserByID(server.DB, m.UserID)
		if err != nil {
			continue
		}
		picks, err := pickModel.PickSetFor(server.DB, m.UserID)
		if err != nil {
			return nil, err
		}
		entrants = append(entrants, bracket.Entrant{
			UserID:      m.UserID,
			DisplayName: user.DisplayName,
			Picks:       picks,
			PaidBuyIn:   m.PaidBuyIn,
		})
	}

	standings := bracket.Leaderboard(entrants, results, group.Weights())

	return &responses.LeaderboardResponse{
		Group:     server.groupResponse(*group, false),
		Standings: standings,
		PrizePool: bracket.PrizePool(standings),
	}, nil
}
