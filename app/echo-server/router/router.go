package router

import (
	"shopReco/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler, authRequired echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/token", handler.IssueToken)
	auth.GET("/token", handler.TokenInfo, authRequired)
	auth.DELETE("/token", handler.RevokeToken, authRequired)
}

func SetupRecoRoutes(api *echo.Group, handler *rest.RecoHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	reco := api.Group("/recommendations")

	reco.POST("", handler.Recommend)
	reco.GET("/debug", handler.DebugRecommend, authRequired, adminOnly)

	api.GET("/sessions/:id/recommendations", handler.RecommendForSession)
}

func SetupSessionRoutes(api *echo.Group, handler *rest.SessionHandler, authRequired echo.MiddlewareFunc) {
	sessions := api.Group("/sessions")

	sessions.GET("/:id", handler.GetSession)
	sessions.POST("", handler.SaveSession, authRequired)
}
