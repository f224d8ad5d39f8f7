package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dvcruz/progtrack/internal/handlers"
)

func registerAuthRoutes(api *gin.RouterGroup, handler *handlers.AuthHandler) {
	auth := api.Group("/auth")
	{
		auth.GET("/me", handler.Me)
		auth.POST("/logout", handler.Logout)
		auth.POST("/password", handler.ChangePassword)
		auth.PUT("/profile", handler.UpdateProfile)
	}
}
