package game

import "byte-battle-be/internal/service/dto"

// 房间内的在线玩家，持久化字段之外额外持有连接的响应通道
type Player struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Position int    `json:"position"`
	// 已收集的字母，去重后按收集顺序拼接
	Inventory string `json:"inventory"`
	IsHost    bool   `json:"is_host"`

	RespCh chan ResponseWrapper `json:"-"`
}

// Store 是游戏状态机依赖的外部存储接口
// 每次状态变更成功后都会通过它落库
type Store interface {
	UpdateRoomState(code string, status string, gameState string, currentTurn int) error
	UpdatePlayerPosition(playerID string, position int) error
	UpdatePlayerInventory(playerID string, inventory string) error
	DeletePlayer(playerID string) error
	PickQuestion(category string, difficulty string) (*dto.Question, error)
}
