package manager

import (
	"errors"
	"fmt"
	"sync"

	"CardTable/internal/game/dealer"
	"CardTable/internal/game/engine"
	"CardTable/internal/game/table"
	"CardTable/internal/game/variant"
	"CardTable/internal/matchmaker"
	"CardTable/internal/utils"
	"CardTable/internal/websocket"
)

var (
	ErrRoomExists   = errors.New("room already running")
	ErrRoomNotFound = errors.New("room not found")
)

// GameManager 管理所有对局
type GameManager struct {
	mu           sync.RWMutex
	engines      map[string]*engine.Engine   // roomID → engine
	rooms        map[string]*matchmaker.Room // roomID → room
	playerToRoom map[string]string           // player address → roomID
	hub          websocket.HubInterface

	// Seed 非零时所有桌子使用固定种子洗牌
	Seed int64
	// OnRoomClosed 在房间结束后调用（释放匹配状态）
	OnRoomClosed func(*matchmaker.Room)
}

func NewGameManager(hub websocket.HubInterface) *GameManager {
	return &GameManager{
		engines:      make(map[string]*engine.Engine),
		rooms:        make(map[string]*matchmaker.Room),
		playerToRoom: make(map[string]string),
		hub:          hub,
	}
}

// StartRoom 创建桌子并启动 engine；发牌失败时不登记
func (m *GameManager) StartRoom(r *matchmaker.Room) error {
	v, err := variant.Lookup(r.Variant)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.engines[r.ID]; ok {
		return fmt.Errorf("%w: %s", ErrRoomExists, r.ID)
	}

	t := table.New(r.ID, v, r.Players)
	t.CreatedAt = r.CreatedAt
	eng := engine.NewEngine(t, m.hub)
	if m.Seed != 0 {
		eng.Dealer = dealer.NewDealer(m.Seed)
	}
	if err := eng.Start(); err != nil {
		return fmt.Errorf("start room %s: %w", r.ID, err)
	}

	m.engines[r.ID] = eng
	m.rooms[r.ID] = r
	// 建立玩家地址 → 房间 ID 映射
	for _, p := range r.Players {
		m.playerToRoom[p] = r.ID
	}
	utils.Log.Info("room started", "room", r.ID, "variant", v.Name())
	return nil
}

// EndRoom 停止 engine，通知玩家并释放房间
func (m *GameManager) EndRoom(id string) error {
	m.mu.Lock()
	eng, ok := m.engines[id]
	room := m.rooms[id]
	if ok {
		delete(m.engines, id)
		delete(m.rooms, id)
		for _, p := range room.Players {
			if m.playerToRoom[p] == id {
				delete(m.playerToRoom, p)
			}
		}
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}

	eng.Stop()
	<-eng.Done()
	m.hub.BroadcastToPlayers(room.Players, websocket.OutgoingMessage{
		Event: websocket.EventTableClosed,
		Data:  map[string]any{"table": id},
	})
	utils.Log.Info("room closed", "room", id)

	if m.OnRoomClosed != nil {
		m.OnRoomClosed(room)
	}
	return nil
}

// Engine 返回房间对应的 engine
func (m *GameManager) Engine(roomID string) (*engine.Engine, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	eng, ok := m.engines[roomID]
	return eng, ok
}

// RoomOf 返回玩家所在房间
func (m *GameManager) RoomOf(addr string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.playerToRoom[addr]
	return id, ok
}

// HandlePlayerMessage 统一入口（来自 Hub.Incoming）
func (m *GameManager) HandlePlayerMessage(msg websocket.IncomingMessage) {
	m.mu.RLock()
	roomID := m.playerToRoom[msg.From]
	eng := m.engines[roomID]
	m.mu.RUnlock()

	if eng == nil {
		utils.Log.Debug("message without room", "from", msg.From, "event", msg.Event)
		return
	}

	switch msg.Event {

	case websocket.EventPlayerAction:
		// 交给 Engine（出牌、宣言、查看手牌等）
		if !eng.EnqueueAction(msg.From, msg.Data) {
			utils.Log.Warn("action after close", "room", roomID, "from", msg.From)
		}

	case websocket.EventChat:
		// 桌内聊天广播
		m.hub.BroadcastToPlayers(
			eng.Table.Players,
			websocket.OutgoingMessage{
				Event: websocket.EventChat,
				Data: map[string]any{
					"from": msg.From,
					"text": msg.Data,
				},
			},
		)

	case websocket.EventLeaveTable:
		if err := m.EndRoom(roomID); err != nil {
			utils.Log.Warn("leave table", "room", roomID, "err", err)
		}
	}
}
