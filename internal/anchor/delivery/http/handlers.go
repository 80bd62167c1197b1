package http

import (
	"github.com/gin-gonic/gin"

	"waypilot/internal/anchor"
	"waypilot/pkg/response"
)

// Set godoc
// @Summary     Set an anchor
// @Description Creates or replaces a named saved location. Provide either coordinates or an address to geocode.
// @Tags        Anchors
// @Accept      json
// @Produce     json
// @Param       body body setReq true "Anchor data"
// @Success     200 {object} setResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     422 {object} response.Resp "Unresolvable address"
// @Router      /api/v1/anchors [PUT]
func (h *handler) Set(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSetReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Set(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Set: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSetResp(output))
}

// Resolve godoc
// @Summary     Resolve an anchor
// @Description Returns the saved location for a name.
// @Tags        Anchors
// @Accept      json
// @Produce     json
// @Param       name    path  string true  "Anchor name"
// @Param       user_id query string true  "User ID"
// @Success     200 {object} resolveResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/anchors/{name} [GET]
func (h *handler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Resolve(ctx, anchor.ResolveInput{
		UserID: c.Query("user_id"),
		Name:   c.Param("name"),
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.Resolve: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newResolveResp(output))
}

// List godoc
// @Summary     List anchors
// @Description Returns all of a user's saved locations sorted by name.
// @Tags        Anchors
// @Accept      json
// @Produce     json
// @Param       user_id query string true "User ID"
// @Success     200 {object} listResp
// @Router      /api/v1/anchors [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.List(ctx, anchor.ListInput{UserID: c.Query("user_id")})
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(output))
}

// Delete godoc
// @Summary     Delete an anchor
// @Description Removes a saved location by name.
// @Tags        Anchors
// @Accept      json
// @Produce     json
// @Param       name    path  string true "Anchor name"
// @Param       user_id query string true "User ID"
// @Success     200 {object} response.Resp "OK"
// @Router      /api/v1/anchors/{name} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.Delete(ctx, c.Query("user_id"), c.Param("name")); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}
