package websocket

import (
	"net/http"

	"CardTable/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// 鉴权由 JWT 中间件完成，这里不再校验来源
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// ServeWS 处理 GET /ws：地址取自 JWT 中间件写入的 "address"
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := c.GetString("address")
		if addr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing address"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.Log.Warn("ws upgrade failed", "addr", addr, "err", err)
			return
		}

		client := newClient(hub, addr, conn)
		if !hub.registerClient(client) {
			// Hub 已关闭
			_ = conn.Close()
			return
		}
		utils.Log.Debug("ws connected", "addr", addr)
		client.serve()
	}
}
