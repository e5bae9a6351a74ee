package controllers

import (
	"net/http"
	"strconv"

	"PlayoffPredictor/feed"
	"PlayoffPredictor/models"

	"github.com/gin-gonic/gin"
)

func (server *Server) GetMyBracket(c *gin.Context) {

	errList = map[string]string{}

	uid := c.GetUint("userID")
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

// GetUserBracket renders any user's derived bracket, for group pages.
func (server *Server) GetUserBracket(c *gin.Context) {

	errList = map[string]string{}

	uid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errList["Invalid_request"] = "Invalid Request"
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}

	userModel := models.User{}
	if _, err := userModel.FindUserByID(server.DB, uint(uid)); err != nil {
		errList["No_user"] = "No User Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	view, err := server.bracketViewFor(uint(uid))
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

// GetPlayoffField returns the seeded field both conferences render from.
func (server *Server) GetPlayoffField(c *gin.Context) {

	errList = map[string]string{}

	field, err := server.loadField()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not load playoff field",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": field,
	})
}

// RefreshPlayoffField forces a live pull outside the cron schedule.
func (server *Server) RefreshPlayoffField(c *gin.Context) {

	errList = map[string]string{}

	client := feed.NewClient(feed.LoadConfig())
	if err := feed.RefreshField(server.DB, client); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"status": http.StatusBadGateway,
			"error":  "Could not refresh playoff field",
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

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": field,
	})
}
