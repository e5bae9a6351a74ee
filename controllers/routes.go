package controllers

import (
	"PlayoffPredictor/middlewares"

	"github.com/gin-gonic/gin"
)

func (s *Server) initializeRoutes() {

	s.Router.GET("/", func(c *gin.Context) {
		c.Redirect(302, "https://playoffpredictor.onrender.com/")
	})

	s.Router.GET("/metrics", middlewares.MetricsHandler())

	v1 := s.Router.Group("/api/v1")
	{
		// Auth routes
		v1.POST("/login", middlewares.LoginRateLimitMiddleware(), s.Login)
		v1.POST("/login/magic", middlewares.LoginRateLimitMiddleware(), s.RequestMagicLink)
		v1.POST("/login/magic/redeem", s.RedeemMagicLink)
		v1.POST("/password/forgot", middlewares.LoginRateLimitMiddleware(), s.ForgotPassword)
		v1.POST("/password/reset", s.ResetPassword)

		// Users routes
		v1.POST("/users", s.CreateUser)
		v1.GET("/users", s.GetUsers)
		v1.GET("/users/:id", s.GetUser)
		v1.PUT("/users/:id", middlewares.TokenAuthMiddleware(s.DB), s.UpdateUser)
		v1.DELETE("/users/:id", middlewares.TokenAuthMiddleware(s.DB), s.DeleteUser)

		// Playoff field routes
		v1.GET("/teams", s.GetPlayoffField)
		v1.POST("/teams/refresh", middlewares.TokenAuthMiddleware(s.DB), middlewares.AdminOnlyMiddleware(), s.RefreshPlayoffField)

		// Picks routes
		v1.GET("/picks", middlewares.TokenAuthMiddleware(s.DB), s.GetMyPicks)
		v1.PUT("/picks", middlewares.TokenAuthMiddleware(s.DB), s.SavePicks)
		v1.DELETE("/picks", middlewares.TokenAuthMiddleware(s.DB), s.ResetPicks)

		// Bracket views
		v1.GET("/bracket", middlewares.TokenAuthMiddleware(s.DB), s.GetMyBracket)
		v1.GET("/users/:id/bracket", s.GetUserBracket)

		// Results routes
		v1.GET("/results", s.GetResults)
		v1.POST("/results", middlewares.TokenAuthMiddleware(s.DB), middlewares.AdminOnlyMiddleware(), s.CreateResult)

		// Group routes
		// FIX: singular /group/:id so the static /groups listing does not
		// collide with the wildcard in the router tree.
		v1.POST("/groups", middlewares.TokenAuthMiddleware(s.DB), s.CreateGroup)
		v1.GET("/groups", s.GetPublicGroups)
		v1.GET("/mygroups", middlewares.TokenAuthMiddleware(s.DB), s.GetMyGroups)
		v1.GET("/group/:id", s.GetGroup)
		v1.PUT("/group/:id", middlewares.TokenAuthMiddleware(s.DB), s.UpdateGroup)
		v1.DELETE("/group/:id", middlewares.TokenAuthMiddleware(s.DB), s.DeleteGroup)
		v1.POST("/group/:id/join", middlewares.TokenAuthMiddleware(s.DB), s.JoinGroup)
		v1.DELETE("/group/:id/leave", middlewares.TokenAuthMiddleware(s.DB), s.LeaveGroup)
		v1.GET("/group/:id/members", s.GetGroupMembers)
		v1.PATCH("/group/:id/members/:user_id/paid", middlewares.TokenAuthMiddleware(s.DB), s.MarkMemberPaid)
		v1.POST("/group/:id/invite", middlewares.TokenAuthMiddleware(s.DB), s.InviteToGroup)
		v1.GET("/invites/:code", s.GetInvite)
		v1.POST("/invites/:code/join", middlewares.TokenAuthMiddleware(s.DB), s.JoinByInvite)

		// Leaderboard routes
		v1.GET("/group/:id/leaderboard", s.GetLeaderboard)

		// Aggregate pick stats
		v1.GET("/stats/picks", s.GetPickStats)
	}
}
