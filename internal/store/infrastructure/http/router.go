package http

import (
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Shop   *ShopHandler
	Cart   *CartHandler
	Wallet *WalletHandler
	Admin  *AdminHandler
}

// NewRouter mounts every route under /api. auth must set the caller identity for the limiter and admin checks.
func NewRouter(handlers Handlers, auth gin.HandlerFunc, limiter *UserRateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api", auth)
	{
		api.GET("/categories", handlers.Shop.ListCategories)
		api.GET("/items", handlers.Shop.ListItems)
		api.GET("/items/:"+ItemIDKey, handlers.Shop.GetItem)
		api.GET("/items/:"+ItemIDKey+"/quote", handlers.Shop.Quote)

		api.GET("/cart", handlers.Cart.ListCart)
		api.GET("/wallet", handlers.Wallet.GetProfile)
		api.GET("/orders", handlers.Wallet.OrderHistory)

		limited := api.Group("/", limiter.Middleware())
		{
			limited.POST("/items/:"+ItemIDKey+"/buy", handlers.Shop.Buy)
			limited.POST("/cart", handlers.Cart.AddLine)
			limited.POST("/cart/checkout", handlers.Cart.Checkout)
		}

		admin := api.Group("/admin", NewAdminMiddleware())
		{
			admin.POST("/categories", handlers.Admin.AddCategory)
			admin.POST("/items", handlers.Admin.AddItem)
			admin.POST("/items/:"+ItemIDKey+"/restock", handlers.Admin.Restock)
			admin.POST("/coupons", handlers.Admin.SaveCoupon)
			admin.POST("/credit", handlers.Admin.Credit)
			admin.GET("/cards", handlers.Admin.ListCards)
			admin.POST("/cards", handlers.Admin.WatchCard)
			admin.DELETE("/cards/:"+CardRefKey, handlers.Admin.UnwatchCard)
		}
	}

	return router
}
