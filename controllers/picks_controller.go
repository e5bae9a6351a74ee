package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"PlayoffPredictor/bracket"
	"PlayoffPredictor/models"

	"github.com/gin-gonic/gin"
)

// pickPayload is one slot assignment in a bracket save.
type pickPayload struct {
	Conference string `json:"conference"`
	Round      int    `json:"round"`
	Game       int    `json:"game"`
	TeamID     string `json:"team_id"`
}

func (p pickPayload) slot() bracket.Slot {
	return bracket.Slot{
		Conference: bracket.Conference(p.Conference),
		Round:      bracket.Round(p.Round),
		Game:       p.Game,
	}
}

func (server *Server) GetMyPicks(c *gin.Context) {

	errList = map[string]string{}

	uid := c.GetUint("userID")

	pickModel := models.Pick{}
	picks, err := pickModel.FindUserPicks(server.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not load picks",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": picks,
	})
}

// SavePicks replaces the caller's bracket with the submitted snapshot.
// Every pick is validated against the derived bracket; a changed earlier
// pick silently clears the downstream slots it invalidated.
func (server *Server) SavePicks(c *gin.Context) {

	errList = map[string]string{}

	locked, err := server.playoffsLocked()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not check bracket lock",
		})
		return
	}
	if locked {
		errList["Bracket_locked"] = "The playoffs have started, brackets are locked"
		c.JSON(http.StatusForbidden, gin.H{
			"status": http.StatusForbidden,
			"error":  errList,
		})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}

	var payload struct {
		Picks []pickPayload `json:"picks"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	field, err := server.loadField()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not load playoff field",
		})
		return
	}

	// Replay the submitted picks through the sheet in bracket order so each
	// one is checked against the matchups the earlier picks produce.
	sheet := bracket.NewSheet(field)
	snapshot := make(bracket.PickSet, len(payload.Picks))
	for _, p := range payload.Picks {
		snapshot[p.slot()] = p.TeamID
	}
	sheet.Load(snapshot)

	// Anything the sheet refused (bad slot, team not in the derived
	// matchup) is reported, not silently dropped, on direct saves.
	for _, p := range payload.Picks {
		if _, ok := sheet.Get(p.slot()); !ok && p.TeamID != "" {
			slot := p.slot()
			if !slot.Valid() {
				errList["Invalid_slot"] = "Invalid conference/round/game address"
			} else if err := sheet.Set(slot, p.TeamID); errors.Is(err, bracket.ErrNotParticipant) {
				errList["Invalid_pick"] = "Picked team is not a participant in that game"
			}
		}
	}
	if len(errList) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	uid := c.GetUint("userID")
	pickModel := models.Pick{}
	if err := pickModel.ReplaceUserPicks(server.DB, uid, sheet.Picks()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not save picks",
		})
		return
	}

	server.invalidateLeaderboards(c.Request.Context())

	view, err := server.bracketViewFor(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not load bracket",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": view,
	})
}

func (server *Server) ResetPicks(c *gin.Context) {

	errList = map[string]string{}

	locked, err := server.playoffsLocked()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not check bracket lock",
		})
		return
	}
	if locked {
		errList["Bracket_locked"] = "The playoffs have started, brackets are locked"
		c.JSON(http.StatusForbidden, gin.H{
			"status": http.StatusForbidden,
			"error":  errList,
		})
		return
	}

	uid := c.GetUint("userID")
	pickModel := models.Pick{}
	if _, err := pickModel.DeleteUserPicks(server.DB, uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not reset picks",
		})
		return
	}

	server.invalidateLeaderboards(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Picks cleared",
	})
}
