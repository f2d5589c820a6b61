package api

import "github.com/gin-gonic/gin"

// RegisterRoutes 将预约相关的路由挂载到给定的路由组下。
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
	}
}
