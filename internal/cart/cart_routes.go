package cart

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	carts := r.Group("/cart")
	{
		carts.GET("/:userId", handler.Get)
		carts.GET("/:userId/count", handler.Count)

		carts.POST("/toggle", handler.Toggle)
		carts.PUT("/update", handler.Update)
		carts.DELETE("/remove", handler.Remove)
		carts.DELETE("/:userId", handler.Clear)
		carts.POST("/quote", handler.Quote)
	}
}
