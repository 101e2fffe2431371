package matchmaker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
}

// key 约定：
//
//	set: mm:pool:{variant}:{tableSize}  -> Set(address,...)
//	kv : mm:player:{address}            -> "variant:tableSize"（取消时定位池）
//	kv : mm:room:{id}                   -> Room JSON
//	kv : mm:playerRoom:{address}        -> roomID（防止重复匹配）
func NewRedisRepo(rdb *redis.Client) Repo {
	return &redisRepo{rdb: rdb}
}

// Enqueue 入池；玩家已在其他池中排队时先从旧池移除（集合为空时 Redis 自动删除 key）
func (r *redisRepo) Enqueue(ctx context.Context, pool string, tableSize int, address string, ttlSeconds int) error {
	ref := fmt.Sprintf("%s:%d", pool, tableSize)
	prev, err := r.rdb.Get(ctx, playerKey(address)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	p := r.rdb.TxPipeline()
	if prevPool, prevSize, ok := parsePoolRef(prev); ok && prev != ref {
		p.SRem(ctx, poolKey(prevPool, prevSize), address)
	}
	p.SAdd(ctx, poolKey(pool, tableSize), address)
	p.Set(ctx, playerKey(address), ref, time.Duration(ttlSeconds)*time.Second)
	_, err = p.Exec(ctx)
	return err
}

func (r *redisRepo) PopNRandom(ctx context.Context, pool string, tableSize int, n int) ([]string, error) {
	key := poolKey(pool, tableSize)
	// SPOP COUNT 原子地随机弹出 n 个成员
	res, err := r.rdb.SPopN(ctx, key, int64(n)).Result()
	if err != nil {
		return nil, err
	}
	if len(res) > 0 && len(res) < n {
		// 人数不足：放回去，保持池不变
		members := make([]any, len(res))
		for i, a := range res {
			members[i] = a
		}
		if err := r.rdb.SAdd(ctx, key, members...).Err(); err != nil {
			return nil, err
		}
		return []string{}, nil
	}
	if len(res) > 0 {
		p := r.rdb.Pipeline()
		for _, addr := range res {
			p.Del(ctx, playerKey(addr))
		}
		if _, err := p.Exec(ctx); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// removeScript 删除 playerKey、从集合移除成员；集合为空则删除集合
// KEYS[1] = playerKey, KEYS[2] = poolKey, ARGV[1] = address
var removeScript = redis.NewScript(`
redis.call("DEL", KEYS[1])
redis.call("SREM", KEYS[2], ARGV[1])
if redis.call("SCARD", KEYS[2]) == 0 then
	redis.call("DEL", KEYS[2])
end
return 1
`)

func (r *redisRepo) Remove(ctx context.Context, address string) error {
	kv, err := r.rdb.Get(ctx, playerKey(address)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}

	pool, size, ok := parsePoolRef(kv)
	if !ok {
		return r.rdb.Del(ctx, playerKey(address)).Err()
	}
	return removeScript.Run(ctx, r.rdb, []string{playerKey(address), poolKey(pool, size)}, address).Err()
}

// parsePoolRef 拆分 "variant:tableSize"
func parsePoolRef(kv string) (string, int, bool) {
	i := strings.LastIndex(kv, ":")
	if i <= 0 {
		return "", 0, false
	}
	size, err := strconv.Atoi(kv[i+1:])
	if err != nil {
		return "", 0, false
	}
	return kv[:i], size, true
}

func (r *redisRepo) Count(ctx context.Context, pool string, tableSize int) (int64, error) {
	return r.rdb.SCard(ctx, poolKey(pool, tableSize)).Result()
}

func (r *redisRepo) SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	ttl := time.Duration(ttlSeconds) * time.Second
	p := r.rdb.Pipeline()
	p.Set(ctx, roomKey(room.ID), data, ttl)
	for _, addr := range room.Players {
		p.Set(ctx, playerRoomKey(addr), room.ID, ttl)
	}
	_, err = p.Exec(ctx)
	return err
}

func (r *redisRepo) GetPlayerRoom(ctx context.Context, address string) (string, error) {
	val, err := r.rdb.Get(ctx, playerRoomKey(address)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *redisRepo) ReleaseRoom(ctx context.Context, room *Room) error {
	keys := []string{roomKey(room.ID)}
	for _, addr := range room.Players {
		keys = append(keys, playerRoomKey(addr))
	}
	return r.rdb.Del(ctx, keys...).Err()
}
