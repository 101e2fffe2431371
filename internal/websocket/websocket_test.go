package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastToPlayers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c1 := &Client{Address: "0xA", Send: make(chan OutgoingMessage, 1), Hub: hub}
	c2 := &Client{Address: "0xB", Send: make(chan OutgoingMessage, 1), Hub: hub}

	hub.register <- c1
	hub.register <- c2

	msg := OutgoingMessage{
		Event: "dealt_public",
		Data:  map[string]interface{}{"table": "room123"},
	}

	hub.BroadcastToPlayers([]string{"0xA", "0xB"}, msg)

	m1 := <-c1.Send
	m2 := <-c2.Send

	assert.Equal(t, "dealt_public", m1.Event)
	assert.Equal(t, "dealt_public", m2.Event)
}

func TestHubSendToPlayer(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c1 := &Client{Address: "0xA", Send: make(chan OutgoingMessage, 1), Hub: hub}
	c2 := &Client{Address: "0xB", Send: make(chan OutgoingMessage, 1), Hub: hub}

	hub.register <- c1
	hub.register <- c2

	hub.SendToPlayer("0xA", OutgoingMessage{Event: "deal_hand", Data: "hello A"})

	received := <-c1.Send
	assert.Equal(t, "deal_hand", received.Event)
	assert.Equal(t, "hello A", received.Data)

	time.Sleep(10 * time.Millisecond)

	// B 不应收到私牌
	select {
	case <-c2.Send:
		assert.Fail(t, "B should NOT receive anything")
	default:
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c := &Client{Address: "0xA", Send: make(chan OutgoingMessage, 1), Hub: hub}

	hub.register <- c
	time.Sleep(10 * time.Millisecond)
	_, ok := hub.ClientByAddress("0xA")
	assert.True(t, ok, "client should be registered")

	hub.unregister <- c
	time.Sleep(10 * time.Millisecond)
	_, ok = hub.ClientByAddress("0xA")
	assert.False(t, ok, "client should be removed after unregister")

	_, open := <-c.Send
	assert.False(t, open, "send channel should be closed")
}

func TestHubReplacesDuplicateAddress(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	old := &Client{Address: "0xA", Send: make(chan OutgoingMessage, 1), Hub: hub}
	cur := &Client{Address: "0xA", Send: make(chan OutgoingMessage, 1), Hub: hub}
	hub.register <- old
	hub.register <- cur

	_, open := <-old.Send
	assert.False(t, open)

	// 旧连接注销不影响新连接
	hub.unregister <- old
	time.Sleep(10 * time.Millisecond)
	got, ok := hub.ClientByAddress("0xA")
	assert.True(t, ok)
	assert.Same(t, cur, got)
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c := &Client{Address: "0xA", Send: make(chan OutgoingMessage, 1), Hub: hub}
	hub.register <- c

	hub.SendToPlayer("0xA", OutgoingMessage{Event: "first"})
	hub.SendToPlayer("0xA", OutgoingMessage{Event: "second"})
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, "first", (<-c.Send).Event)
	select {
	case m := <-c.Send:
		assert.Fail(t, "unexpected message", m.Event)
	default:
	}
}

func TestHubClose(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	c := &Client{Address: "0xA", Send: make(chan OutgoingMessage, 1), Hub: hub}
	hub.register <- c

	hub.Close()
	hub.Close()
	<-done

	_, open := <-c.Send
	assert.False(t, open)

	// 关闭后发送不应阻塞
	hub.BroadcastToPlayers([]string{"0xA"}, OutgoingMessage{Event: "late"})
	hub.SendToPlayer("0xA", OutgoingMessage{Event: "late"})
	assert.False(t, hub.registerClient(&Client{Address: "0xB", Send: make(chan OutgoingMessage, 1), Hub: hub}))
	assert.False(t, hub.forward(IncomingMessage{From: "0xA", Event: "chat"}))
	hub.unregisterClient(c)
}

func TestServeWSRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	incoming := make(chan IncomingMessage, 1)
	hub.OnIncoming = func(m IncomingMessage) { incoming <- m }
	go hub.Run()
	defer hub.Close()

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { c.Set("address", "0xA") }, ServeWS(hub))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// 客户端自报的 from 会被覆盖
	require.NoError(t, conn.WriteJSON(IncomingMessage{From: "0xEVIL", Event: "chat", Data: "hi"}))
	select {
	case m := <-incoming:
		assert.Equal(t, "0xA", m.From)
		assert.Equal(t, "chat", m.Event)
		assert.Equal(t, "hi", m.Data)
	case <-time.After(time.Second):
		t.Fatal("incoming message not delivered")
	}

	hub.SendToPlayer("0xA", OutgoingMessage{Event: "deal_hand", Data: "cards"})
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var out OutgoingMessage
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "deal_hand", out.Event)
	assert.Equal(t, "cards", out.Data)
}

func TestServeWSRequiresAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/ws", ServeWS(hub))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ws", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
}

func BenchmarkHubBroadcast(b *testing.B) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c1 := &Client{Address: "0xA", Send: make(chan OutgoingMessage, 1024), Hub: hub}
	c2 := &Client{Address: "0xB", Send: make(chan OutgoingMessage, 1024), Hub: hub}
	hub.register <- c1
	hub.register <- c2

	go func() {
		for range c1.Send {
		}
	}()
	go func() {
		for range c2.Send {
		}
	}()

	b.ResetTimer()
	msg := OutgoingMessage{Event: "bench", Data: nil}
	for i := 0; i < b.N; i++ {
		hub.BroadcastToPlayers([]string{"0xA", "0xB"}, msg)
	}
}
