package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"PlayoffPredictor/models"
	"PlayoffPredictor/responses"
	"PlayoffPredictor/utils/formaterror"

	"github.com/gin-gonic/gin"
)

func publicUser(user models.User) responses.UserResponse {
	return responses.UserResponse{
		ID:          user.ID,
		PublicID:    user.PublicID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}
}

func (server *Server) CreateUser(c *gin.Context) {

	errList = map[string]string{}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}

	user := models.User{}
	err = json.Unmarshal(body, &user)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("")
	if len(errorMessages) > 0 {
		errList = errorMessages
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	userCreated, err := user.SaveUser(server.DB)
	if err != nil {
		errList = formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": publicUser(*userCreated),
	})
}

func (server *Server) GetUsers(c *gin.Context) {

	errList = map[string]string{}

	user := models.User{}
	users, err := user.FindAllUsers(server.DB)
	if err != nil {
		errList["No_user"] = "No User Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	publicUsers := make([]responses.UserResponse, 0, len(*users))
	for _, u := range *users {
		publicUsers = append(publicUsers, publicUser(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": publicUsers,
	})
}

func (server *Server) GetUser(c *gin.Context) {

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

	user := models.User{}
	userGotten, err := user.FindUserByID(server.DB, uint(uid))
	if err != nil {
		errList["No_user"] = "No User Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": publicUser(*userGotten),
	})
}

func (server *Server) UpdateUser(c *gin.Context) {

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

	// Only the account owner can update it.
	tokenID := c.GetUint("userID")
	if tokenID != uint(uid) {
		errList["Unauthorized"] = "Unauthorized"
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
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

	user := models.User{}
	err = json.Unmarshal(body, &user)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("update")
	if len(errorMessages) > 0 {
		errList = errorMessages
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	updatedUser, err := user.UpdateAUser(server.DB, uint(uid))
	if err != nil {
		errList = formaterror.FormatError(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  errList,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": publicUser(*updatedUser),
	})
}

func (server *Server) DeleteUser(c *gin.Context) {

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

	tokenID := c.GetUint("userID")
	isAdmin := c.GetBool("isAdmin")
	if tokenID != uint(uid) && !isAdmin {
		errList["Unauthorized"] = "Unauthorized"
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  errList,
		})
		return
	}

	user := models.User{}
	pick := models.Pick{}

	// The user's picks go with the account.
	if _, err := pick.DeleteUserPicks(server.DB, uint(uid)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not delete user picks",
		})
		return
	}

	_, err = user.DeleteAUser(server.DB, uint(uid))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not delete user",
		})
		return
	}

	server.invalidateLeaderboards(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "User deleted",
	})
}
