package api

import (
	"asura/tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	stateService service.StateService,
	log logrus.FieldLogger,
) {
	authHandler := NewAuthHandler(authService, log)
	stateHandler := NewStateHandler(stateService, log)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiGroup.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		stateGroup := protected.Group("/state")
		{
			stateGroup.GET("", stateHandler.GetState)
			stateGroup.PUT("", stateHandler.PutState)
			stateGroup.POST("/export", stateHandler.ExportState)
		}
	}
}
