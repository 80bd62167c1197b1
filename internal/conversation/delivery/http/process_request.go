package http

import (
	"github.com/gin-gonic/gin"
)

// processPostMessageReq binds and validates the message request body.
func (h *handler) processPostMessageReq(c *gin.Context) (postMessageReq, error) {
	var req postMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
