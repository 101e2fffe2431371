package matchmaker

import (
	"context"
	"fmt"
)

// Repo 定义对匹配池的抽象操作；池以 variant+tableSize 区分
type Repo interface {
	// Enqueue 将地址加入指定池
	Enqueue(ctx context.Context, pool string, tableSize int, address string, ttlSeconds int) error
	// PopNRandom 随机弹出 N 人（原子）
	PopNRandom(ctx context.Context, pool string, tableSize int, n int) ([]string, error)
	// Remove 将玩家从当前池移除（用于取消）
	Remove(ctx context.Context, address string) error
	// Count 返回池内人数
	Count(ctx context.Context, pool string, tableSize int) (int64, error)
}

// RoomStore 记录已成桌的房间；房间释放前，桌上玩家不能再次排队
type RoomStore interface {
	SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error
	GetPlayerRoom(ctx context.Context, address string) (string, error)
	ReleaseRoom(ctx context.Context, room *Room) error
}

func poolKey(pool string, tableSize int) string {
	return fmt.Sprintf("mm:pool:%s:%d", pool, tableSize)
}

func playerKey(addr string) string {
	return fmt.Sprintf("mm:player:%s", addr)
}

func roomKey(id string) string {
	return fmt.Sprintf("mm:room:%s", id)
}

func playerRoomKey(addr string) string {
	return fmt.Sprintf("mm:playerRoom:%s", addr)
}
