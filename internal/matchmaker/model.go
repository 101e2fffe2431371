package matchmaker

import "time"

// JoinRequest 前端提交的匹配请求；桌子人数由玩法决定
type JoinRequest struct {
	Address string `json:"address"`
	Variant string `json:"variant" binding:"required"` // "war"、"belote"、"sixtysix"
}

// JoinResponse 返回是否已成桌；若已成桌则给出房间信息
type JoinResponse struct {
	Queued    bool     `json:"queued"`
	RoomID    string   `json:"roomId,omitempty"`
	Players   []string `json:"players,omitempty"`
	Variant   string   `json:"variant"`
	TableSize int      `json:"tableSize"`
}

// CancelRequest 取消匹配
type CancelRequest struct {
	Address string `json:"address"`
}

// Room 组桌结果
type Room struct {
	ID        string    `json:"id"`
	Variant   string    `json:"variant"`
	TableSize int       `json:"tableSize"`
	Players   []string  `json:"players"`
	CreatedAt time.Time `json:"createdAt"`
}
