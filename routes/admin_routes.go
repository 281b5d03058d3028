package routes

import (
	"github.com/kay-mensah/DataPlug/controllers"
	"github.com/kay-mensah/DataPlug/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes sets up the admin-only routes
func initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/bundles", controllers.ListAllBundles)
		admin.POST("/bundles", controllers.CreateBundle)
		admin.PUT("/bundles/:id", controllers.UpdateBundle)
		admin.PATCH("/bundles/:id/toggle", controllers.ToggleBundle)
		admin.POST("/bundles/sync", controllers.SyncDataPackages)

		admin.GET("/orders", controllers.ListAllOrders)
		admin.GET("/orders/export", controllers.ExportOrdersReport)

		admin.GET("/users", controllers.ListUsers)
		admin.PATCH("/users/:id/block", controllers.ToggleUserBlock)
	}
}
