package voice

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"waypilot/internal/nlu"
	"waypilot/pkg/geo"
	pkgResponse "waypilot/pkg/response"
)

// HandleTranscript processes one voice turn.
// @Summary     Voice webhook
// @Description Accepts a speech transcript from the voice gateway, runs it through the assistant, and returns the reply to speak.
// @Tags        Voice
// @Accept      json
// @Produce     json
// @Param       X-Voice-Signature header string true "HMAC-SHA256 of the body, hex, prefixed with sha256="
// @Param       body body transcriptReq true "Transcript"
// @Success     200 {object} transcriptResp
// @Failure     401 {object} map[string]string "invalid signature"
// @Failure     429 {object} map[string]string "rate limit exceeded"
// @Router      /webhook/voice [POST]
func (h *Handler) HandleTranscript(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to read voice webhook body: %v", err)
		pkgResponse.Error(c, err)
		return
	}

	signature := c.GetHeader("X-Voice-Signature")
	if err := h.security.ValidateSignature(body, signature); err != nil {
		h.l.Errorf(ctx, "Voice signature verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var req transcriptReq
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		pkgResponse.Error(c, err)
		return
	}
	if req.Transcript == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transcript is required"})
		return
	}

	caller := req.SessionID
	if caller == "" {
		caller = c.ClientIP()
	}
	if err := h.security.CheckRateLimit(caller); err != nil {
		h.l.Warnf(ctx, "Voice rate limit exceeded: %v", err)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	out, err := h.orch.ProcessRequest(ctx, req.SessionID, req.Transcript, geo.Point{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		h.l.Errorf(ctx, "Voice ProcessRequest: %v", err)
		if errors.Is(err, nlu.ErrUnavailable) {
			pkgResponse.OK(c, transcriptResp{
				SessionID: req.SessionID,
				Speak:     "Sorry, I can't help right now. Please try again in a moment.",
				Completed: true,
			})
			return
		}
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, transcriptResp{
		SessionID: out.SessionID,
		Speak:     out.Response,
		Completed: out.Completed,
		Listening: !out.Completed,
		Options:   out.ClarificationOptions,
	})
}
