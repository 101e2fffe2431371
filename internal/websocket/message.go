package websocket

// 服务端下发的事件名
const (
	EventMatched     = "matched"
	EventDealHand    = "deal_hand"
	EventDealtPublic = "dealt_public"
	EventCardPlayed  = "card_played"
	EventFaceUp      = "face_up"
	EventDeclare     = "declarations"
	EventMarriage    = "marriage"
	EventHand        = "hand"
	EventActionError = "action_error"
	EventChat        = "chat"
	EventTableClosed = "table_closed"
)

// 客户端上行的事件名
const (
	EventPlayerAction = "player_action"
	EventLeaveTable   = "leave_table"
)

type OutgoingMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type IncomingMessage struct {
	From  string `json:"from"`
	Event string `json:"event"`
	Data  any    `json:"data"`
}
