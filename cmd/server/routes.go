package main

import (
	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Loopz-Back/internal/admin"
	"github.com/ArthurDelaporte/Loopz-Back/internal/auth"
	"github.com/ArthurDelaporte/Loopz-Back/internal/caption"
	"github.com/ArthurDelaporte/Loopz-Back/internal/feed"
	"github.com/ArthurDelaporte/Loopz-Back/internal/follow"
	"github.com/ArthurDelaporte/Loopz-Back/internal/like"
	"github.com/ArthurDelaporte/Loopz-Back/internal/memory"
	"github.com/ArthurDelaporte/Loopz-Back/internal/message"
	"github.com/ArthurDelaporte/Loopz-Back/internal/middleware"
	"github.com/ArthurDelaporte/Loopz-Back/internal/notification"
	"github.com/ArthurDelaporte/Loopz-Back/internal/post"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
	"github.com/ArthurDelaporte/Loopz-Back/internal/realtime"
	"github.com/ArthurDelaporte/Loopz-Back/internal/remix"
	"github.com/ArthurDelaporte/Loopz-Back/internal/report"
)

func registerRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Inscription & Connexion
	api.POST("/signup", auth.Signup)
	api.POST("/login", auth.Login)

	// Lectures publiques, enrichies si l'utilisateur est connecté
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("/explore", feed.GetExplore)
		public.GET("/posts/:id", post.GetPostByID)
		public.GET("/posts/:id/comments", post.GetComments)
		public.GET("/posts/:id/remixes", remix.GetRemixes)
		public.GET("/profiles/:username", profile.GetProfileByUsername)
		public.GET("/profiles/:username/posts", post.GetPostsByUsername)
		public.GET("/profiles/:username/memories", memory.GetMemoriesByUsername)
		public.GET("/profiles/:username/followers", follow.GetFollowers)
		public.GET("/profiles/:username/following", follow.GetFollowing)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/feed", feed.GetFeed)
		authed.GET("/feed/mood", feed.GetMoodFeed)

		authed.POST("/posts", post.CreatePost)
		authed.DELETE("/posts/:id", post.DeletePost)
		authed.POST("/posts/:id/like", like.ToggleLike)
		authed.POST("/posts/:id/comments", post.CreateComment)
		authed.DELETE("/comments/:id", post.DeleteComment)
		authed.POST("/posts/:id/memories", memory.CreateMemory)
		authed.POST("/posts/:id/remixes", remix.CreateRemix)

		authed.GET("/profiles/me", profile.GetMe)
		authed.PATCH("/profiles/me", profile.UpdateMe)
		authed.POST("/follow/:id", follow.ToggleFollow)

		authed.GET("/notifications", notification.GetNotifications)
		authed.GET("/notifications/unread-count", notification.GetUnreadCount)
		authed.PATCH("/notifications/read-all", notification.MarkAllAsRead)
		authed.PATCH("/notifications/:id/read", notification.MarkAsRead)
		authed.DELETE("/notifications/:id", notification.DeleteNotification)

		authed.GET("/messages", message.GetConversations)
		authed.GET("/messages/:partnerId", message.GetConversation)
		authed.POST("/messages", message.SendMessage)

		authed.GET("/realtime/posts", realtime.StreamPosts)
		authed.GET("/realtime/notifications", realtime.StreamNotifications)
		authed.GET("/realtime/messages/:partnerId", realtime.StreamMessages)

		authed.POST("/ai/generate-caption", caption.GenerateCaption)

		authed.POST("/reports", report.CreateReport)
	}

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminOnlyMiddleware())
	{
		adminGroup.GET("/stats", admin.GetDashboardStats)
		adminGroup.GET("/charts/:type", admin.GetChartData)
		adminGroup.GET("/posts", admin.GetRecentPosts)
		adminGroup.DELETE("/posts/:id", admin.DeletePost)
		adminGroup.GET("/top-users", admin.GetTopUsers)
		adminGroup.GET("/reports", report.GetReports)
		adminGroup.GET("/reports/stats", report.GetReportStats)
		adminGroup.PATCH("/reports/:id", report.UpdateReport)
	}
}
