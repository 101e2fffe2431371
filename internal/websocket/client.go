package websocket

import (
	"time"

	"CardTable/internal/utils"

	"github.com/gorilla/websocket"
)

// Client 一个已鉴权玩家的连接；Send 只由 Hub 关闭
type Client struct {
	Address string
	Conn    *websocket.Conn
	Send    chan OutgoingMessage
	Hub     *Hub
}

const (
	writeWait      = 10 * time.Second    // 单次写超时
	pongWait       = 60 * time.Second    // 收不到 pong 即断开
	pingPeriod     = (pongWait * 9) / 10 // 心跳周期，须小于 pongWait
	maxMessageSize = 4 << 10             // 上行消息上限
	sendBuffer     = 32                  // 下行缓冲，满了由 Hub 丢弃
)

func newClient(hub *Hub, addr string, conn *websocket.Conn) *Client {
	return &Client{
		Address: addr,
		Conn:    conn,
		Send:    make(chan OutgoingMessage, sendBuffer),
		Hub:     hub,
	}
}

// serve 启动读写协程，连接的生命周期由两者共同结束
func (c *Client) serve() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) deadline() time.Time { return time.Now().Add(writeWait) }

// writePump 把 Hub 投递的事件写给前端，并定时发 ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				// 被 Hub 踢下线或 Hub 关闭
				_ = c.Conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), c.deadline())
				return
			}
			_ = c.Conn.SetWriteDeadline(c.deadline())
			if err := c.Conn.WriteJSON(msg); err != nil {
				utils.Log.Debug("ws write failed", "addr", c.Address, "event", msg.Event, "err", err)
				return
			}

		case <-ticker.C:
			if err := c.Conn.WriteControl(websocket.PingMessage, nil, c.deadline()); err != nil {
				return
			}
		}
	}
}

// readPump 读取上行消息转交 Hub；返回时注销连接
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregisterClient(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg IncomingMessage
		if err := c.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				utils.Log.Debug("ws read failed", "addr", c.Address, "err", err)
			}
			return
		}
		// From 以鉴权后的地址为准，忽略客户端自报
		msg.From = c.Address
		if !c.Hub.forward(msg) {
			return
		}
	}
}
