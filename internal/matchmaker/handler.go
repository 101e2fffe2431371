package matchmaker

import (
	"errors"
	"net/http"

	"CardTable/internal/game/variant"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// callerAddress 优先使用 JWT 中间件注入的地址
func callerAddress(c *gin.Context, body string) string {
	if addr := c.GetString("address"); addr != "" {
		return addr
	}
	return body
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, variant.ErrUnknownVariant), errors.Is(err, ErrMissingAddress):
		return http.StatusBadRequest
	case errors.Is(err, ErrAlreadyInRoom):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// POST /match/join  body: {variant}
func (h *Handler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Address = callerAddress(c, req.Address)

	room, queued, err := h.svc.Join(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	if queued {
		v, _ := variant.Lookup(req.Variant)
		c.JSON(http.StatusOK, JoinResponse{
			Queued: true, Variant: v.Name(), TableSize: v.Seats,
		})
		return
	}
	c.JSON(http.StatusOK, JoinResponse{
		Queued: false, Variant: room.Variant, TableSize: room.TableSize, RoomID: room.ID, Players: room.Players,
	})
}

// POST /match/cancel
func (h *Handler) Cancel(c *gin.Context) {
	var req CancelRequest
	_ = c.ShouldBindJSON(&req)
	if err := h.svc.Cancel(c.Request.Context(), callerAddress(c, req.Address)); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
