package game

import (
	"sync/atomic"
	"time"

	"byte-battle-be/internal/service/dto"

	"go.uber.org/zap"
)

type GameContext struct {
	RoomCode  string
	Status    string
	GameStage string
	HostID    string

	// 回合顺序为玩家加入顺序，CurrentTurn 是其中的下标
	TurnOrder   []string
	CurrentTurn int
	Players     map[string]*Player

	// 当前回合的骰子点数，掷骰后有效
	DiceValue int
	// 当前待回答的题目，ANSWERING 阶段有效
	PendingQuestion *dto.Question
	// 抽到 EXTRA_ROLL 卡时置位，本回合结束后不切换玩家
	ExtraRoll bool
	// 抽到 SKIP_TURN 卡的玩家，下个回合被跳过一次
	SkipNext map[string]bool
	// 获胜玩家，进入终局阶段前设置
	WinnerID string

	Store       Store
	TurnTimeout time.Duration
	// 抽题难度，空串表示不限
	QuestionDifficulty string

	TmoCh chan RequestWrapper
	Timer *time.Timer

	// 供注册表的清理协程跨 goroutine 读取，必须用原子操作
	occupancy atomic.Int64
	finished  atomic.Bool
}

// Occupancy 返回房间内在线玩家数，清理协程用
func (gc *GameContext) Occupancy() int {
	return int(gc.occupancy.Load())
}

// Finished 返回游戏是否已进入终局，清理协程用
func (gc *GameContext) Finished() bool {
	return gc.finished.Load()
}

// CurrentPlayer 返回当前回合的玩家，房间为空时返回 nil
func (gc *GameContext) CurrentPlayer() *Player {
	if len(gc.TurnOrder) == 0 {
		return nil
	}

	return gc.Players[gc.TurnOrder[gc.CurrentTurn]]
}

// NormalizeTurn 把 CurrentTurn 规整到合法下标
// 玩家数量因断线收缩后必须调用
func (gc *GameContext) NormalizeTurn() {
	if len(gc.TurnOrder) == 0 {
		gc.CurrentTurn = 0
		return
	}

	gc.CurrentTurn %= len(gc.TurnOrder)
}

// AdvanceTurn 把回合交给下一位玩家
// 回合计数始终对当前存活玩家数取模；被 SKIP_TURN 卡标记的玩家被跳过一次
// 广播 TURN_CHANGED 由 WAITING 阶段的 OnEnter 统一负责
func (gc *GameContext) AdvanceTurn() {
	if len(gc.TurnOrder) == 0 {
		return
	}

	if gc.ExtraRoll {
		// 额外掷骰：回合不变
		gc.ExtraRoll = false
	} else {
		gc.CurrentTurn = (gc.CurrentTurn + 1) % len(gc.TurnOrder)

		if next := gc.CurrentPlayer(); next != nil && gc.SkipNext[next.ID] {
			delete(gc.SkipNext, next.ID)
			gc.CurrentTurn = (gc.CurrentTurn + 1) % len(gc.TurnOrder)
		}
	}

	gc.DiceValue = 0
	gc.PendingQuestion = nil
}

// PersistRoomState 把房间状态写入存储
// 写失败只记日志，不中断房间（存储错误对单条消息是致命的，对房间不是）
func (gc *GameContext) PersistRoomState() {
	// LOBBY 不是持久化的游戏阶段，落库时映射为 WAITING
	gameState := gc.GameStage
	if gameState == STAGE_LOBBY {
		gameState = dto.STATE_WAITING
	}

	if err := gc.Store.UpdateRoomState(gc.RoomCode, gc.Status, gameState, gc.CurrentTurn); err != nil {
		zap.L().Error(
			"持久化房间状态失败",
			zap.String("room_code", gc.RoomCode),
			zap.Error(err),
		)
	}
}

// BuildRoomState 构造完整的房间快照，用于 ROOM_STATE 广播
func (gc *GameContext) BuildRoomState() RoomStateResponse {
	players := make([]PublicPlayer, 0, len(gc.TurnOrder))

	for idx, id := range gc.TurnOrder {
		p := gc.Players[id]
		players = append(players, PublicPlayer{
			ID:            p.ID,
			Username:      p.Username,
			Position:      p.Position,
			Inventory:     p.Inventory,
			IsHost:        p.IsHost,
			IsCurrentTurn: gc.Status == dto.STATUS_PLAYING && idx == gc.CurrentTurn,
		})
	}

	return RoomStateResponse{
		Status:      gc.Status,
		GameState:   gc.GameStage,
		CurrentTurn: gc.CurrentTurn,
		Players:     players,
	}
}

func (gc *GameContext) BroadcastResp(resp ResponseWrapper) {
	for _, p := range gc.Players {
		if p.RespCh == nil {
			continue
		}

		select {
		case p.RespCh <- resp:
			zap.L().Debug(
				"成功发送广播响应",
				zap.String("player_id", p.ID),
				zap.Any("response", resp),
			)
		default:
			zap.L().Warn(
				"发送广播响应失败：玩家响应通道已满",
				zap.String("player_id", p.ID),
			)
		}
	}
}

func (gc *GameContext) UnicastResp(playerID string, resp ResponseWrapper) {
	player, ok := gc.Players[playerID]
	if !ok || player.RespCh == nil {
		zap.L().Warn(
			"无法找到玩家进行单播响应",
			zap.String("player_id", playerID),
		)
		return
	}

	select {
	case player.RespCh <- resp:
		zap.L().Debug(
			"发送单播响应成功",
			zap.String("player_id", playerID),
			zap.Any("response", resp),
		)
	default:
		zap.L().Warn(
			"发送单播响应失败：玩家响应通道已满",
			zap.String("player_id", playerID),
		)
	}
}

// SetTimeout 设置当前阶段的超时定时器
// 到期后向 TmoCh 投递一个 TIMEOUT 请求，由事件循环处理
func (gc *GameContext) SetTimeout(stage string, d time.Duration) {
	gc.ClearTimeout()

	// 配置为 0 时关闭超时托管
	if d <= 0 {
		return
	}

	gc.Timer = time.AfterFunc(d, func() {
		wrapper := RequestWrapper{
			Type: REQ_TIMEOUT,
			Data: mustMarshal(TimeoutRequest{Stage: stage}),
		}

		select {
		case gc.TmoCh <- wrapper:
		default:
			zap.L().Warn(
				"超时事件投递失败：通道已满",
				zap.String("room_code", gc.RoomCode),
			)
		}
	})
}

func (gc *GameContext) ClearTimeout() {
	if gc.Timer != nil {
		gc.Timer.Stop()
		gc.Timer = nil
	}
}
