package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"PlayoffPredictor/models"

	"github.com/stretchr/testify/assert"
)

func TestLeaderboardScoresAndRanks(t *testing.T) {
	server := newTestServer(t)
	sharp, sharpToken := createTestUser(t, server, "sharp", false)
	fish, fishToken := createTestUser(t, server, "fish", false)
	router := groupsRouter(server)
	picks := picksRouter(server)

	w := doRequest(router, http.MethodPost, "/api/v1/groups", sharpToken, groupBody("Money Pool", true, map[string]interface{}{
		"buyin_type":  "optional",
		"buyin_price": 20,
	}))
	group := responseEnvelope(t, w)["response"].(map[string]interface{})
	groupID := uint(group["id"].(float64))

	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/group/%d/join", groupID), fishToken, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Only the first user files a bracket, before anything locks.
	w = doRequest(picks, http.MethodPut, "/api/v1/picks", sharpToken, picksPayload(chalkPicks(t)))
	assert.Equal(t, http.StatusOK, w.Code)

	// Two wild card games go chalk.
	for _, res := range []models.GameResult{
		{Conference: "AFC", Round: 1, Game: 1, TeamID: "4"},
		{Conference: "AFC", Round: 1, Game: 2, TeamID: "33"},
	} {
		res.Prepare()
		if _, err := res.SaveResult(server.DB, false); err != nil {
			t.Fatalf("failed to record result: %v", err)
		}
	}

	w = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/group/%d/leaderboard", groupID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	view := responseEnvelope(t, w)["response"].(map[string]interface{})
	standings := view["standings"].([]interface{})
	assert.Len(t, standings, 2)

	first := standings[0].(map[string]interface{})
	second := standings[1].(map[string]interface{})
	assert.Equal(t, float64(sharp.ID), first["user_id"])
	assert.Equal(t, float64(2), first["score"])
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, true, first["has_bracket"])
	assert.Equal(t, float64(fish.ID), second["user_id"])
	assert.Equal(t, float64(0), second["score"])
	assert.Equal(t, false, second["has_bracket"])
}

func TestPrizePoolOnlyPaidMembers(t *testing.T) {
	server := newTestServer(t)
	owner, ownerToken := createTestUser(t, server, "stingy", false)
	payer, payerToken := createTestUser(t, server, "payer", false)
	router := groupsRouter(server)

	w := doRequest(router, http.MethodPost, "/api/v1/groups", ownerToken, groupBody("Cash Pool", true, map[string]interface{}{
		"buyin_type":  "optional",
		"buyin_price": 20,
	}))
	group := responseEnvelope(t, w)["response"].(map[string]interface{})
	groupID := uint(group["id"].(float64))

	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/group/%d/join", groupID), payerToken, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	// The owner marks the second member as paid.
	w = doRequest(router, http.MethodPatch,
		fmt.Sprintf("/api/v1/group/%d/members/%d/paid", groupID, payer.ID),
		ownerToken, []byte(`{"paid": true}`))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/group/%d/leaderboard", groupID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	view := responseEnvelope(t, w)["response"].(map[string]interface{})
	assert.Len(t, view["standings"], 2)

	pool := view["prize_pool"].([]interface{})
	assert.Len(t, pool, 1)
	entry := pool[0].(map[string]interface{})
	assert.Equal(t, float64(payer.ID), entry["user_id"])
	// Pool ranks are recomputed over the subset.
	assert.Equal(t, float64(1), entry["rank"])
	assert.NotEqual(t, owner.ID, uint(entry["user_id"].(float64)))
}
