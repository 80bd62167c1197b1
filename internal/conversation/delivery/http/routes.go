package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	conversation := rg.Group("/conversation")
	{
		conversation.POST("/messages", h.PostMessage)
	}
}
