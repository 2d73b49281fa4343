package dto

// 房间内的玩家记录，和数据库 players 表一一对应
type Player struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	RoomID   string `json:"room_id"`
	Username string `json:"username"`
	Position int    `json:"position"`
	// 已收集的字母，按收集顺序拼接而成的字符串
	Inventory string `json:"inventory"`
	IsHost    bool   `json:"is_host"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	// 不参与序列化
	PasswordDigest string `json:"-"`
}
