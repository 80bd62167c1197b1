package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	anchors := rg.Group("/anchors")
	{
		anchors.PUT("", h.Set)
		anchors.GET("", h.List)
		anchors.GET("/:name", h.Resolve)
		anchors.DELETE("/:name", h.Delete)
	}
}
