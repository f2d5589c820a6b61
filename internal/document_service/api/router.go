package api

import "github.com/gin-gonic/gin"

// RegisterRoutes 将文档相关的路由挂载到给定的路由组下。
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	documents := rg.Group("/documents")
	{
		documents.POST("/upload", h.Upload)
	}
}
