package router

import (
	"smartMarket/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/logout", handler.Logout, authRequired)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, optionalAuth echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.ListProducts)
	products.GET("/best", handler.BestProducts)
	products.GET("/:slug", handler.GetProduct, optionalAuth)
	products.GET("/:slug/similar", handler.SimilarProducts)
	products.POST("/:slug/like", handler.ToggleLike, authRequired)

	api.GET("/categories", handler.ListCategories)
	api.GET("/brands", handler.ListBrands)

	stores := api.Group("/stores")
	stores.GET("", handler.ListStores)
	stores.GET("/:slug", handler.GetStore)
}

func SetComparisonRoutes(api *echo.Group, handler *rest.ComparisonHandler, authRequired echo.MiddlewareFunc, optionalAuth echo.MiddlewareFunc) {
	comparisons := api.Group("/comparisons")

	comparisons.POST("/products", handler.CompareProducts, optionalAuth)
	comparisons.POST("/stores", handler.CompareStores, optionalAuth)
	comparisons.GET("/history", handler.History, authRequired)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc, optionalAuth echo.MiddlewareFunc) {
	reco := api.Group("/recommendations")

	reco.GET("/general", handler.General, optionalAuth)
	reco.GET("/personalized", handler.Personalized, authRequired)
	reco.POST("/track", handler.Track, optionalAuth)
	reco.GET("/realtime", handler.Realtime, authRequired)
}

func SetReportRoutes(api *echo.Group, handler *rest.ReportHandler, authRequired echo.MiddlewareFunc) {
	reports := api.Group("/reports", authRequired)

	reports.POST("/generate", handler.Generate)
	reports.GET("", handler.List)
	reports.GET("/schedules", handler.ListSchedules)
	reports.POST("/schedules", handler.CreateSchedule)
	reports.GET("/:id", handler.Get)
	reports.GET("/:id/status", handler.Status)
	reports.GET("/:id/download", handler.Download)
}

func SetDashboardRoutes(api *echo.Group, handler *rest.DashboardHandler, authRequired echo.MiddlewareFunc) {
	dashboard := api.Group("/dashboard", authRequired)

	dashboard.GET("/analytics", handler.StoreAnalytics)
	dashboard.GET("/products/performance", handler.ProductPerformance)
}
