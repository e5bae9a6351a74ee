package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"PlayoffPredictor/models"

	"github.com/gin-gonic/gin"
)

func (server *Server) GetResults(c *gin.Context) {

	errList = map[string]string{}

	resultModel := models.GameResult{}
	results, err := resultModel.FindAllResults(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not load results",
		})
		return
	}

	locked, err := server.playoffsLocked()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not check bracket lock",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"results": results,
			"locked":  locked,
		},
	})
}

// CreateResult records a real game winner. Results are write-once; an
// admin can correct a bad entry with ?override=true, which also reopens
// every slot the correction invalidates for rescoring.
func (server *Server) CreateResult(c *gin.Context) {

	errList = map[string]string{}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}

	result := models.GameResult{}
	if err := json.Unmarshal(body, &result); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	result.Prepare()
	result.RecordedBy = c.GetUint("userID")

	errorMessages := result.Validate()
	if len(errorMessages) > 0 {
		errList = errorMessages
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	// The winner must come from the real field.
	field, err := server.loadField()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not load playoff field",
		})
		return
	}
	slot := result.Slot()
	if _, ok := field.FindTeam(slot.Conference, result.TeamID); !ok {
		errList["Invalid_team"] = "Team is not in the playoff field"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	override := strings.EqualFold(c.Query("override"), "true")
	saved, err := result.SaveResult(server.DB, override)
	if err != nil {
		if errors.Is(err, models.ErrResultExists) {
			errList["Result_exists"] = "A winner is already recorded for this game"
			c.JSON(http.StatusConflict, gin.H{
				"status": http.StatusConflict,
				"error":  errList,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not save result",
		})
		return
	}

	server.invalidateLeaderboards(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": saved,
	})
}
