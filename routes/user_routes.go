package routes

import (
	"github.com/kay-mensah/DataPlug/controllers"
	"github.com/kay-mensah/DataPlug/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes sets up the public and authenticated user routes
func initUserRoutes(api *gin.RouterGroup) {
	api.POST("/register", controllers.RegisterUser)
	api.POST("/login", controllers.LoginUser)

	user := api.Group("")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)

		user.GET("/bundles", controllers.ListBundles)
		user.POST("/purchase", controllers.PurchaseBundle)

		user.GET("/wallet", controllers.GetWallet)
		user.GET("/wallet/transactions", controllers.ListWalletTransactions)
		user.POST("/wallet/topup", controllers.InitiateWalletTopup)
		user.POST("/wallet/verify", controllers.VerifyWalletTopup)

		user.GET("/orders", controllers.ListOrders)
		user.GET("/orders/:id", controllers.GetOrder)
		user.GET("/orders/:id/receipt", controllers.DownloadReceipt)
	}
}
