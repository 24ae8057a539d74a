package product

import (
	"github.com/gin-gonic/gin"

	"shophub-api/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	products := r.Group("/products")
	{
		products.GET("", handler.List)
		products.GET("/:productId", handler.Detail)

		admin := products.Group("")
		admin.Use(middleware.AuthMiddleware(jwtSecret))
		{
			admin.POST("", handler.Create)
			admin.PUT("/:productId", handler.Update)
			admin.DELETE("/:productId", handler.Delete)
		}
	}
}
