package dto

// 房间状态
const (
	STATUS_LOBBY    = "LOBBY"
	STATUS_PLAYING  = "PLAYING"
	STATUS_FINISHED = "FINISHED"
)

// 游戏阶段
const (
	STATE_WAITING   = "WAITING"
	STATE_MOVING    = "MOVING"
	STATE_ANSWERING = "ANSWERING"
	STATE_FINISHED  = "FINISHED"
)

type Room struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Status      string   `json:"status"`
	GameState   string   `json:"game_state"`
	CurrentTurn int      `json:"current_turn"`
	// 房主的用户 ID，对应 users 表；房主的玩家记录由 players.is_host 标记
	HostID      string   `json:"host_id"`
	Players     []Player `json:"players,omitempty"`
}

type CreateRoomResponse struct {
	Room       Room   `json:"room"`
	InviteLink string `json:"invite_link"`
}

type RoomSummary struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Status      string   `json:"status"`
	PlayerCount int      `json:"player_count"`
	IsHost      bool     `json:"is_host"`
	Players     []Player `json:"players"`
}

type JoinRoomResponse struct {
	Joined Player `json:"joined"`
	// 已经在房间内时为 true，重复加入不算错误
	AlreadyJoined bool `json:"already_joined"`
}
