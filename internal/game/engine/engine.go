package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"CardTable/internal/game/card"
	"CardTable/internal/game/dealer"
	"CardTable/internal/game/table"
	"CardTable/internal/utils"
	"CardTable/internal/websocket"
)

// ---------------------
//   ACTION DEFINITION
// ---------------------

const (
	ActionHand         = "hand"
	ActionPlay         = "play"
	ActionDeclarations = "declarations"
	ActionMarriage     = "marriage"
)

var ErrUnknownAction = errors.New("unknown action")

type Action struct {
	Player  string
	Payload any
}

// ActionRequest player_action 的解码结果
type ActionRequest struct {
	Action string `json:"action"`
	// Trump 非空时覆盖桌面将牌（仅 marriage 使用）
	Trump *card.Suit `json:"trump,omitempty"`
}

// ---------------------
//       ENGINE
// ---------------------

// Engine 独占一张桌子的牌堆与手牌；所有修改都在 actionLoop 里串行执行
type Engine struct {
	Table      *table.Table
	Dealer     *dealer.Dealer
	Hub        websocket.HubInterface
	actionChan chan Action
	mu         sync.RWMutex
	stopped    bool
	done       chan struct{}
}

func NewEngine(t *table.Table, hub websocket.HubInterface) *Engine {
	return &Engine{
		Table:      t,
		Dealer:     dealer.NewDealer(time.Now().UnixNano()),
		Hub:        hub,
		actionChan: make(chan Action, 32), // 防止死锁
		done:       make(chan struct{}),
	}
}

// Start: 发牌 + 广播 + 启动 action loop
func (e *Engine) Start() error {
	if err := e.Table.Deal(e.Dealer); err != nil {
		utils.Log.Error("deal failed", "table", e.Table.ID, "err", err)
		return err
	}
	utils.Log.Info("dealt", "table", e.Table.ID, "variant", e.Table.Variant.Name(), "stock", e.Table.Deck.Size())

	// 私牌发给对应玩家
	for _, addr := range e.Table.Players {
		h, _ := e.Table.Hand(addr)
		e.Hub.SendToPlayer(addr, websocket.OutgoingMessage{
			Event: websocket.EventDealHand,
			Data: map[string]any{
				"table":   e.Table.ID,
				"variant": e.Table.Variant.Name(),
				"you":     addr,
				"cards":   h.Cards(),
			},
		})
	}

	// 公共信息广播
	e.Hub.BroadcastToPlayers(e.Table.Players, websocket.OutgoingMessage{
		Event: websocket.EventDealtPublic,
		Data:  e.Table.Public(),
	})

	go e.actionLoop()
	return nil
}

// 动作循环：异步读取玩家操作
func (e *Engine) actionLoop() {
	defer close(e.done)
	for act := range e.actionChan {
		e.handleAction(act)
	}
	e.Table.State = table.StateFinished
}

// EnqueueAction 玩家动作入口（GameManager 调用），Stop 之后的动作被丢弃
func (e *Engine) EnqueueAction(player string, payload any) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.stopped {
		return false
	}
	e.actionChan <- Action{Player: player, Payload: payload}
	return true
}

// Stop 关闭动作队列，已入队的动作仍会执行；可重复调用
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.stopped {
		e.stopped = true
		close(e.actionChan)
	}
}

// Done 在 Stop 后动作循环处理完剩余动作时关闭
func (e *Engine) Done() <-chan struct{} { return e.done }

func decodeAction(payload any) (ActionRequest, error) {
	var req ActionRequest
	switch p := payload.(type) {
	case ActionRequest:
		return p, nil
	case string:
		req.Action = p
		return req, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(b, &req); err != nil {
		return req, fmt.Errorf("bad action payload: %w", err)
	}
	return req, nil
}

// 分发玩家动作
func (e *Engine) handleAction(a Action) {
	req, err := decodeAction(a.Payload)
	if err == nil {
		err = e.apply(a.Player, req)
	}
	if err != nil {
		utils.Log.Warn("action rejected", "table", e.Table.ID, "player", a.Player, "action", req.Action, "err", err)
		e.Hub.SendToPlayer(a.Player, websocket.OutgoingMessage{
			Event: websocket.EventActionError,
			Data: map[string]any{
				"table":  e.Table.ID,
				"action": req.Action,
				"error":  err.Error(),
			},
		})
	}
}

func (e *Engine) apply(player string, req ActionRequest) error {
	h, err := e.Table.Hand(player)
	if err != nil {
		return err
	}

	switch req.Action {
	case ActionHand:
		e.Hub.SendToPlayer(player, websocket.OutgoingMessage{
			Event: websocket.EventHand,
			Data:  map[string]any{"table": e.Table.ID, "cards": h.Cards()},
		})
		return nil

	case ActionPlay:
		return e.play(player, h)

	case ActionDeclarations:
		return e.declare(player, h)

	case ActionMarriage:
		return e.marriage(player, h, req.Trump)
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
}

func (e *Engine) play(player string, h *dealer.Hand) error {
	war, err := h.War()
	if err != nil {
		return err
	}
	c, err := war.PlayCard()
	if err != nil {
		return err
	}
	utils.Log.Debug("card played", "table", e.Table.ID, "player", player, "card", c.Short())
	e.Hub.BroadcastToPlayers(e.Table.Players, websocket.OutgoingMessage{
		Event: websocket.EventCardPlayed,
		Data: map[string]any{
			"table":  e.Table.ID,
			"player": player,
			"card":   c,
			"left":   war.Size(),
		},
	})
	if war.AllowFaceUp() {
		e.Hub.BroadcastToPlayers(e.Table.Players, websocket.OutgoingMessage{
			Event: websocket.EventFaceUp,
			Data:  map[string]any{"table": e.Table.ID, "player": player, "left": war.Size()},
		})
	}
	return nil
}

func (e *Engine) declare(player string, h *dealer.Hand) error {
	b, err := h.Belote()
	if err != nil {
		return err
	}
	highest := make(map[card.Suit]card.Card)
	for _, s := range e.Table.Variant.Suits.Suits() {
		c, ok, err := b.HighestOfSuit(s)
		if err != nil {
			return err
		}
		if ok {
			highest[s] = c
		}
	}
	e.Hub.BroadcastToPlayers(e.Table.Players, websocket.OutgoingMessage{
		Event: websocket.EventDeclare,
		Data: map[string]any{
			"table":        e.Table.ID,
			"player":       player,
			"declarations": b.Declarations(),
			"highest":      highest,
		},
	})
	return nil
}

func (e *Engine) marriage(player string, h *dealer.Hand, override *card.Suit) error {
	s, err := h.SixtySix()
	if err != nil {
		return err
	}
	trump := e.Table.Trump
	if override != nil {
		trump = *override
	}
	twenty, err := s.Twenty(trump)
	if err != nil {
		return err
	}
	forty, err := s.Forty(trump)
	if err != nil {
		return err
	}
	e.Hub.BroadcastToPlayers(e.Table.Players, websocket.OutgoingMessage{
		Event: websocket.EventMarriage,
		Data: map[string]any{
			"table":  e.Table.ID,
			"player": player,
			"trump":  trump,
			"twenty": twenty,
			"forty":  forty,
		},
	})
	return nil
}
