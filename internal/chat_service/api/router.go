package api

import "github.com/gin-gonic/gin"

// RegisterRoutes 将对话相关的路由挂载到给定的路由组下。
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	chat := rg.Group("/chat")
	{
		chat.POST("/query", h.Query)
	}
}
