package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"PlayoffPredictor/auth"
	"PlayoffPredictor/mailer"
	"PlayoffPredictor/models"
	"PlayoffPredictor/security"
	"PlayoffPredictor/utils/formaterror"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	magicLinkTTL     = 15 * time.Minute
	passwordResetTTL = 1 * time.Hour
)

func appBaseURL() string {
	base := strings.TrimRight(os.Getenv("APP_BASE_URL"), "/")
	if base == "" {
		base = "http://localhost:3000"
	}
	return base
}

func (server *Server) Login(c *gin.Context) {

	//clear previous error if any
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
	errorMessages := user.Validate("login")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}
	userData, err := server.SignIn(user.Email, user.Password)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userData,
	})
}

func (server *Server) SignIn(email, password string) (map[string]interface{}, error) {

	user := models.User{}

	found, err := user.FindUserByEmail(server.DB, email)
	if err != nil {
		fmt.Println("this is the error getting the user: ", err)
		return nil, err
	}
	err = security.VerifyPassword(found.Password, password)
	if err != nil && err == bcrypt.ErrMismatchedHashAndPassword {
		fmt.Println("this is the error hashing the password: ", err)
		return nil, err
	}
	return server.sessionFor(found)
}

// sessionFor packages the signed token and the public user fields every
// login path returns, password or magic link alike.
func (server *Server) sessionFor(user *models.User) (map[string]interface{}, error) {
	token, err := auth.CreateToken(user.ID)
	if err != nil {
		fmt.Println("this is the error creating the token: ", err)
		return nil, err
	}

	var pickCount int64
	pickModel := models.Pick{}
	server.DB.Model(&pickModel).Where("user_id = ?", user.ID).Count(&pickCount)

	userData := make(map[string]interface{})
	userData["token"] = token
	userData["id"] = user.PublicID
	userData["email"] = user.Email
	userData["username"] = user.Username
	userData["display_name"] = user.DisplayName
	userData["is_admin"] = user.IsAdmin
	userData["has_bracket"] = pickCount > 0

	return userData, nil
}

// RequestMagicLink emails a single-use sign-in link. The response is the
// same whether or not the address is registered.
func (server *Server) RequestMagicLink(c *gin.Context) {

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
	if err := json.Unmarshal(body, &user); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}
	user.Prepare()
	errorMessages := user.Validate("magiclink")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	accepted := gin.H{
		"status":   http.StatusOK,
		"response": "If that email is registered, a sign-in link is on its way",
	}

	found, err := user.FindUserByEmail(server.DB, user.Email)
	if err != nil {
		// Do not reveal whether the account exists.
		c.JSON(http.StatusOK, accepted)
		return
	}

	tokenModel := models.LoginToken{}
	token, err := tokenModel.IssueToken(server.DB, found.ID, models.TokenPurposeMagicLink, magicLinkTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not issue sign-in link",
		})
		return
	}

	link := fmt.Sprintf("%s/login/magic?token=%s", appBaseURL(), token.Token)
	if err := mailer.SendMagicLink(found.Email, found.DisplayName, link); err != nil {
		log.Printf("magic link email to %s failed: %v", found.Email, err)
	}

	c.JSON(http.StatusOK, accepted)
}

// RedeemMagicLink exchanges an emailed token for a session.
func (server *Server) RedeemMagicLink(c *gin.Context) {

	errList = map[string]string{}

	var payload struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || strings.TrimSpace(payload.Token) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Required token",
		})
		return
	}

	tokenModel := models.LoginToken{}
	token, err := tokenModel.ConsumeToken(server.DB, payload.Token, models.TokenPurposeMagicLink)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Sign-in link is invalid or has expired",
		})
		return
	}

	userModel := models.User{}
	user, err := userModel.FindUserByID(server.DB, token.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Sign-in link is invalid or has expired",
		})
		return
	}

	userData, err := server.sessionFor(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not create session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userData,
	})
}

func (server *Server) ForgotPassword(c *gin.Context) {

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
	if err := json.Unmarshal(body, &user); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}
	user.Prepare()
	errorMessages := user.Validate("forgotpassword")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	accepted := gin.H{
		"status":   http.StatusOK,
		"response": "If that email is registered, a reset link is on its way",
	}

	found, err := user.FindUserByEmail(server.DB, user.Email)
	if err != nil {
		c.JSON(http.StatusOK, accepted)
		return
	}

	tokenModel := models.LoginToken{}
	token, err := tokenModel.IssueToken(server.DB, found.ID, models.TokenPurposePasswordReset, passwordResetTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not issue reset link",
		})
		return
	}

	link := fmt.Sprintf("%s/password/reset?token=%s", appBaseURL(), token.Token)
	if err := mailer.SendPasswordReset(found.Email, found.DisplayName, link); err != nil {
		log.Printf("password reset email to %s failed: %v", found.Email, err)
	}

	c.JSON(http.StatusOK, accepted)
}

func (server *Server) ResetPassword(c *gin.Context) {

	errList = map[string]string{}

	var payload struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}
	if strings.TrimSpace(payload.Token) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Required token",
		})
		return
	}
	if len(payload.NewPassword) < 6 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Password should be at least 6 characters",
		})
		return
	}

	tokenModel := models.LoginToken{}
	token, err := tokenModel.ConsumeToken(server.DB, payload.Token, models.TokenPurposePasswordReset)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Reset link is invalid or has expired",
		})
		return
	}

	userModel := models.User{}
	user, err := userModel.FindUserByID(server.DB, token.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Reset link is invalid or has expired",
		})
		return
	}

	user.Password = payload.NewPassword
	if err := user.UpdatePassword(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not update password",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Password updated, you can log in now",
	})
}
