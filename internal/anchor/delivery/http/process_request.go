package http

import (
	"github.com/gin-gonic/gin"
)

// processSetReq binds and validates the set anchor request body.
func (h *handler) processSetReq(c *gin.Context) (setReq, error) {
	var req setReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
