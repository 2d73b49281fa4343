package game

import "byte-battle-be/internal/service/dto"

// WS 层鉴权后构造的加入请求，携带玩家快照和连接的响应通道
type JoinGameRequest struct {
	Player Player               `json:"-"`
	RespCh chan ResponseWrapper `json:"-"`
}

type PlayerMovedRequest struct {
	TargetPosition int `json:"target_position"`
}

type AnswerSubmittedRequest struct {
	QuestionID  string `json:"question_id"`
	AnswerIndex int    `json:"answer_index"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

// 连接断开时由读协程构造
type ExitGameRequest struct {
	PlayerID string               `json:"player_id"`
	RespCh   chan ResponseWrapper `json:"-"`
}

type TimeoutRequest struct {
	Stage string `json:"stage"`
}

// -------- 响应负载 --------

type PublicPlayer struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Position      int    `json:"position"`
	Inventory     string `json:"inventory"`
	IsHost        bool   `json:"is_host"`
	IsCurrentTurn bool   `json:"is_current_turn"`
}

type RoomStateResponse struct {
	Status      string         `json:"status"`
	GameState   string         `json:"game_state"`
	CurrentTurn int            `json:"current_turn"`
	Players     []PublicPlayer `json:"players"`
}

type GameStartedResponse struct {
	CurrentTurn int    `json:"current_turn"`
	GameState   string `json:"game_state"`
}

type DiceRolledResponse struct {
	PlayerID      string `json:"player_id"`
	DiceValue     int    `json:"dice_value"`
	PossibleMoves []int  `json:"possible_moves"`
}

type DuelInfo struct {
	OpponentID     string `json:"opponent_id"`
	OpponentUserID string `json:"opponent_user_id"`
}

type PlayerMovedResponse struct {
	PlayerID string              `json:"player_id"`
	Position int                 `json:"position"`
	House    House               `json:"house"`
	Duel     *DuelInfo           `json:"duel,omitempty"`
	Question *dto.PublicQuestion `json:"question,omitempty"`
}

type CardDrawnResponse struct {
	PlayerID  string `json:"player_id"`
	Card      Card   `json:"card"`
	Inventory string `json:"inventory"`
}

type AnswerResultResponse struct {
	PlayerID      string `json:"player_id"`
	Correct       bool   `json:"correct"`
	CorrectIndex  int    `json:"correct_index"`
	Reward        string `json:"reward,omitempty"`
	Inventory     string `json:"inventory"`
	HasAllLetters bool   `json:"has_all_letters"`
}

type TurnChangedResponse struct {
	CurrentTurn int    `json:"current_turn"`
	PlayerID    string `json:"player_id"`
}

type GameOverResponse struct {
	WinnerID string `json:"winner_id"`
	Username string `json:"username"`
}

type PlayerDisconnectedResponse struct {
	PlayerID string `json:"player_id"`
}

type ChatResponse struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type ExitGameResponse struct {
	LeftPlayerID   string `json:"left_player_id"`
	LeftPlayerName string `json:"left_player_name"`
}
