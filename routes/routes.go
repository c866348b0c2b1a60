package routes

import (
	"github.com/gin-gonic/gin"

	"opdrape-backend/ai"
	"opdrape-backend/controllers"
	"opdrape-backend/database"
	"opdrape-backend/middleware"
)

func RegisterRoutes(r *gin.Engine, store *database.Store, generator ai.Generator, jwtSecret []byte) {
	auth := controllers.NewAuthController(store, jwtSecret)
	users := controllers.NewUserController(store)
	products := controllers.NewProductController(store)
	productsAdmin := controllers.NewProductAdminController(store)
	reviews := controllers.NewReviewController(store)
	carts := controllers.NewCartController(store)
	orders := controllers.NewOrderController(store)
	ordersAdmin := controllers.NewOrderAdminController(store)
	adminUsers := controllers.NewAdminController(store)
	chat := controllers.NewAIController(store, generator)

	api := r.Group("/api")
	{
		api.POST("/users/register", auth.Register)
		api.POST("/users/login", auth.Login)

		api.GET("/products", products.GetProducts)
		api.GET("/products/search", products.SearchProducts)
		api.GET("/products/category/:category", products.GetProductsByCategory)
		api.GET("/products/related/:id", products.GetRelatedProducts)
		api.GET("/products/:id", products.GetProductByID)
		api.GET("/products/:id/reviews", reviews.GetProductReviews)

		protected := api.Group("/")
		protected.Use(middleware.Auth(jwtSecret))
		{
			protected.GET("/users/profile", users.GetProfile)
			protected.PATCH("/users/profile", users.UpdateProfile)
			protected.POST("/users/change-password", auth.ChangePassword)
			protected.POST("/users/wishlist/:productId", users.AddToWishlist)
			protected.DELETE("/users/wishlist/:productId", users.RemoveFromWishlist)
			protected.GET("/users/cart", users.GetLegacyCart)

			protected.POST("/products/:id/reviews", reviews.AddProductReview)
			protected.DELETE("/products/:id/reviews", reviews.DeleteProductReview)

			protected.POST("/cart/add", carts.AddToCart)
			protected.GET("/cart", carts.GetCart)
			protected.PUT("/cart/update", carts.UpdateCartItem)
			protected.DELETE("/cart/remove", carts.RemoveFromCart)
			protected.DELETE("/cart/clear", carts.ClearCart)

			protected.POST("/orders", orders.CreateOrder)
			protected.GET("/orders", orders.GetUserOrders)
			protected.GET("/orders/:id", orders.GetOrderByID)
			protected.POST("/orders/:id/cancel", orders.CancelOrder)

			protected.POST("/ai/chat", chat.Chat)
			protected.GET("/ai/suggestions", chat.Suggestions)
			protected.GET("/ai/health", chat.Health)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.POST("/products", productsAdmin.CreateProduct)
				admin.PATCH("/products/:id", productsAdmin.UpdateProduct)
				admin.DELETE("/products/:id", productsAdmin.DeleteProduct)
				admin.GET("/products/low-stock", productsAdmin.GetLowStockProducts)

				admin.GET("/orders", ordersAdmin.GetOrders)
				admin.GET("/orders/:id", ordersAdmin.GetOrderByID)
				admin.PATCH("/orders/:id/status", ordersAdmin.UpdateOrderStatus)

				admin.GET("/users", adminUsers.GetUsers)
				admin.GET("/users/:userId", adminUsers.GetUserByID)
				admin.PATCH("/users/:userId", adminUsers.UpdateUser)
			}
		}
	}
}
