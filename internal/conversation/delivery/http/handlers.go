package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"waypilot/internal/nlu"
	pkgErrors "waypilot/pkg/errors"
	"waypilot/pkg/response"
)

// PostMessage godoc
// @Summary     Send a conversation message
// @Description Processes one user utterance through the errand assistant and returns the outcome: a reply, a clarification question, or a planned route.
// @Tags        Conversation
// @Accept      json
// @Produce     json
// @Param       body body postMessageReq true "Message"
// @Success     200 {object} postMessageResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Language model unavailable"
// @Router      /api/v1/conversation/messages [POST]
func (h *handler) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processPostMessageReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.orch.ProcessRequest(ctx, req.SessionID, req.Message, req.location())
	if err != nil {
		h.l.Errorf(ctx, "orchestrator.ProcessRequest: %v", err)
		if errors.Is(err, nlu.ErrUnavailable) {
			response.Error(c, pkgErrors.NewHTTPError(503, "assistant is temporarily unavailable, please try again"))
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, h.newPostMessageResp(out))
}
