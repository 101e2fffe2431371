package matchmaker

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

type memRepo struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	pools   map[string]map[string]struct{} // key -> set(address)
	players map[string]string              // address -> key
	rooms   map[string]*Room               // roomID -> room
	seated  map[string]string              // address -> roomID
}

// NewMemoryRepo 内存版，单进程部署与测试使用；TTL 被忽略
func NewMemoryRepo() Repo {
	return &memRepo{
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		pools:   make(map[string]map[string]struct{}),
		players: make(map[string]string),
		rooms:   make(map[string]*Room),
		seated:  make(map[string]string),
	}
}

func (m *memRepo) Enqueue(ctx context.Context, pool string, tableSize int, address string, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := poolKey(pool, tableSize)
	// 一个玩家只在一个池中排队：换池时先离开旧池
	if prev, ok := m.players[address]; ok && prev != key {
		m.leave(prev, address)
	}
	if _, ok := m.pools[key]; !ok {
		m.pools[key] = make(map[string]struct{})
	}
	m.pools[key][address] = struct{}{}
	m.players[address] = key
	return nil
}

func (m *memRepo) PopNRandom(ctx context.Context, pool string, tableSize int, n int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := poolKey(pool, tableSize)
	s, ok := m.pools[key]
	if !ok || len(s) < n {
		return []string{}, nil
	}

	addrs := make([]string, 0, len(s))
	for a := range s {
		addrs = append(addrs, a)
	}
	m.rnd.Shuffle(len(addrs), func(i, j int) { addrs[i], addrs[j] = addrs[j], addrs[i] })

	chosen := addrs[:n]
	for _, a := range chosen {
		delete(s, a)
		delete(m.players, a)
	}
	if len(s) == 0 {
		delete(m.pools, key)
	}
	return chosen, nil
}

func (m *memRepo) Remove(ctx context.Context, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, ok := m.players[address]
	if !ok {
		return nil
	}
	m.leave(key, address)
	delete(m.players, address)
	return nil
}

// leave 从池中移除玩家，池空则删除；调用方持有锁
func (m *memRepo) leave(key, address string) {
	if s, ok := m.pools[key]; ok {
		delete(s, address)
		if len(s) == 0 {
			delete(m.pools, key)
		}
	}
}

func (m *memRepo) Count(ctx context.Context, pool string, tableSize int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.pools[poolKey(pool, tableSize)])), nil
}

func (m *memRepo) SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[room.ID] = room
	for _, a := range room.Players {
		m.seated[a] = room.ID
	}
	return nil
}

func (m *memRepo) GetPlayerRoom(ctx context.Context, address string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seated[address], nil
}

func (m *memRepo) ReleaseRoom(ctx context.Context, room *Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, room.ID)
	for _, a := range room.Players {
		if m.seated[a] == room.ID {
			delete(m.seated, a)
		}
	}
	return nil
}
