package matchmaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CardTable/internal/game/variant"
	"CardTable/internal/utils"
	"CardTable/internal/websocket"

	"github.com/google/uuid"
)

var (
	ErrAlreadyInRoom  = errors.New("player already in room")
	ErrMissingAddress = errors.New("missing address")
)

type Service struct {
	repo        Repo
	playerTTL   int // seconds, 用于防止遗留队列
	hub         HubBroadcaster
	OnRoomReady func(*Room) // 成桌时调用的回调函数
}

type HubBroadcaster interface {
	BroadcastToPlayers(addrs []string, msg websocket.OutgoingMessage)
}

func NewService(repo Repo, playerTTL int, hub HubBroadcaster) *Service {
	return &Service{repo: repo, playerTTL: playerTTL, hub: hub}
}

// Join 入队并尝试立即成桌（随机）。若可成桌，返回房间；否则返回排队中。
func (s *Service) Join(ctx context.Context, req JoinRequest) (*Room, bool, error) {
	if req.Address == "" {
		return nil, false, ErrMissingAddress
	}
	v, err := variant.Lookup(req.Variant)
	if err != nil {
		return nil, false, err
	}
	pool, size := v.Name(), v.Seats

	// 防止重复匹配：检测玩家是否已经在房间中
	if store, ok := s.repo.(RoomStore); ok {
		roomID, err := store.GetPlayerRoom(ctx, req.Address)
		if err != nil {
			return nil, false, err
		}
		if roomID != "" {
			return nil, false, fmt.Errorf("%w: %s in %s", ErrAlreadyInRoom, req.Address, roomID)
		}
	}

	if err := s.repo.Enqueue(ctx, pool, size, req.Address, s.playerTTL); err != nil {
		return nil, false, err
	}
	cnt, err := s.repo.Count(ctx, pool, size)
	if err != nil {
		return nil, false, err
	}
	if int(cnt) < size {
		return nil, true, nil // queued
	}
	addrs, err := s.repo.PopNRandom(ctx, pool, size, size)
	if err != nil {
		return nil, false, err
	}
	if len(addrs) < size {
		// 并发竞争导致人数不足：回退为排队状态
		return nil, true, nil
	}
	room := &Room{
		ID:        uuid.NewString(),
		Variant:   pool,
		TableSize: size,
		Players:   addrs,
		CreatedAt: time.Now(),
	}

	if store, ok := s.repo.(RoomStore); ok {
		if err := store.SaveRoom(ctx, room, s.playerTTL); err != nil {
			utils.Log.Warn("save room failed", "room", room.ID, "err", err)
		}
	}
	utils.Log.Info("room formed", "room", room.ID, "variant", room.Variant, "players", room.Players)

	// 通知所有桌内玩家
	s.hub.BroadcastToPlayers(addrs, websocket.OutgoingMessage{
		Event: websocket.EventMatched,
		Data: map[string]any{
			"roomId":    room.ID,
			"variant":   room.Variant,
			"tableSize": room.TableSize,
			"players":   room.Players,
		},
	})

	// 启动游戏逻辑
	if s.OnRoomReady != nil {
		go s.OnRoomReady(room)
	}

	return room, false, nil
}

func (s *Service) Cancel(ctx context.Context, address string) error {
	if address == "" {
		return ErrMissingAddress
	}
	return s.repo.Remove(ctx, address)
}

// Release 释放已结束房间的玩家，使其可以重新匹配
func (s *Service) Release(ctx context.Context, room *Room) error {
	store, ok := s.repo.(RoomStore)
	if !ok {
		return nil
	}
	return store.ReleaseRoom(ctx, room)
}
