package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	anchorHTTP "waypilot/internal/anchor/delivery/http"
)

// setupAnchorDomain wires the saved-place CRUD surface onto the API group.
func (srv *HTTPServer) setupAnchorDomain(ctx context.Context, api *gin.RouterGroup) error {
	if srv.anchorUC == nil {
		srv.l.Infof(ctx, "Anchor usecase not configured, skipping anchor routes")
		return nil
	}

	h := anchorHTTP.New(srv.l, srv.anchorUC)
	anchorHTTP.RegisterRoutes(api, h)

	srv.l.Infof(ctx, "Anchor domain registered")
	return nil
}
