package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"PlayoffPredictor/auth"
	"PlayoffPredictor/bracket"
	"PlayoffPredictor/feed"
	"PlayoffPredictor/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer spins up a server on an in-memory SQLite database with the
// fallback playoff field loaded.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	os.Setenv("API_SECRET", "test-secret")
	os.Setenv("PLAYOFFS_LOCKED", "")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	server := &Server{DB: db}
	server.Migrate()

	teamModel := models.PlayoffTeam{}
	if err := teamModel.ReplaceField(db, feed.FallbackField()); err != nil {
		t.Fatalf("Failed to seed playoff field: %v", err)
	}
	return server
}

func createTestUser(t *testing.T, server *Server, username string, admin bool) (*models.User, string) {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	}
	user.Prepare()
	created, err := user.SaveUser(server.DB)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	if admin {
		// Prepare strips the admin flag from fresh records.
		if err := server.DB.Model(created).Update("is_admin", true).Error; err != nil {
			t.Fatalf("Failed to promote test admin: %v", err)
		}
		created.IsAdmin = true
	}
	token, err := auth.CreateToken(created.ID)
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}
	return created, token
}

// chalkPicks builds a complete 13-slot bracket where the better seed wins
// every game.
func chalkPicks(t *testing.T) bracket.PickSet {
	t.Helper()
	field := feed.FallbackField()
	sheet := bracket.NewSheet(field)
	for _, slot := range bracket.AllSlots() {
		matchup := bracket.MatchupFor(field, sheet.Picks(), slot)
		winner := matchup[0]
		if winner == nil || (matchup[1] != nil && matchup[1].Seed < winner.Seed) {
			winner = matchup[1]
		}
		if winner == nil {
			t.Fatalf("no participants derivable for slot %v", slot)
		}
		if err := sheet.Set(slot, winner.TeamID); err != nil {
			t.Fatalf("failed to build chalk bracket: %v", err)
		}
	}
	return sheet.Picks()
}

func picksPayload(picks bracket.PickSet) []byte {
	type pickJSON struct {
		Conference string `json:"conference"`
		Round      int    `json:"round"`
		Game       int    `json:"game"`
		TeamID     string `json:"team_id"`
	}
	payload := struct {
		Picks []pickJSON `json:"picks"`
	}{}
	for slot, teamID := range picks {
		payload.Picks = append(payload.Picks, pickJSON{
			Conference: string(slot.Conference),
			Round:      int(slot.Round),
			Game:       slot.Game,
			TeamID:     teamID,
		})
	}
	body, _ := json.Marshal(payload)
	return body
}

func doRequest(router *gin.Engine, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func responseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Error unmarshalling response body: %v", err)
	}
	return envelope
}
