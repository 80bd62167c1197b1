package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	conversationHTTP "waypilot/internal/conversation/delivery/http"
)

// setupConversationDomain wires the conversation surface onto the API group.
// The orchestrator itself is built in main and injected through Config so the
// same instance backs both the REST surface and the voice webhook.
func (srv *HTTPServer) setupConversationDomain(ctx context.Context, api *gin.RouterGroup) error {
	h := conversationHTTP.New(srv.l, srv.orchestrator)
	conversationHTTP.RegisterRoutes(api, h)

	srv.l.Infof(ctx, "Conversation domain registered")
	return nil
}
