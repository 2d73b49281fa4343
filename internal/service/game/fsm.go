package game

import (
	"time"

	"byte-battle-be/internal/service/dto"

	"go.uber.org/zap"
)

// GameMachine 是房间的游戏状态机，负责管理游戏状态和事件循环
// 每个房间独占一个 goroutine 顺序消费请求，同一房间的状态变更
// 天然串行化，不需要额外加锁
type GameMachine struct {
	ctx     *GameContext
	handler StageHandler
	// 这是所有的用户的请求汇总的通道
	reqCh chan RequestWrapper
	// 结束通道，用于通知游戏状态机退出事件循环
	doneCh chan struct{}

	createdAt time.Time
}

// MachineOptions 是建房时从配置带入的对局参数
type MachineOptions struct {
	// 回合超时时间，0 表示关闭超时托管
	TurnTimeout time.Duration
	// 抽题难度，空串表示不限
	QuestionDifficulty string
}

func NewGameMachine(room *dto.Room, store Store, opts MachineOptions, doneCh chan struct{}) *GameMachine {
	// 对局中途恢复时沿用存储里的阶段，其余情况从大厅开始
	stage := STAGE_LOBBY
	if room.Status == dto.STATUS_PLAYING {
		stage = room.GameState
	}

	ctx := &GameContext{
		RoomCode:           room.Code,
		Status:             room.Status,
		GameStage:          stage,
		HostID:             room.HostID,
		CurrentTurn:        room.CurrentTurn,
		TurnOrder:          make([]string, 0, len(room.Players)),
		Players:            make(map[string]*Player),
		SkipNext:           make(map[string]bool),
		Store:              store,
		TurnTimeout:        opts.TurnTimeout,
		QuestionDifficulty: opts.QuestionDifficulty,
		TmoCh:              make(chan RequestWrapper, 64),
	}

	// 预载已登记的玩家名单，连接通道等重连时再补上
	for _, p := range room.Players {
		ctx.Players[p.ID] = &Player{
			ID:        p.ID,
			UserID:    p.UserID,
			Username:  p.Username,
			Position:  p.Position,
			Inventory: p.Inventory,
			IsHost:    p.IsHost,
		}
		ctx.TurnOrder = append(ctx.TurnOrder, p.ID)
	}

	reqCh := make(chan RequestWrapper, 64)

	gm := &GameMachine{
		ctx:       ctx,
		handler:   NewLobbyStageHandler(),
		reqCh:     reqCh,
		doneCh:    doneCh,
		createdAt: time.Now(),
	}

	// 设置 onSwitch 回调
	onSwitch := func(nextStage string) {
		gm.ctx.GameStage = nextStage
	}

	gm.handler.SetOnSwitch(onSwitch)

	return gm
}

func (gm *GameMachine) GetReqCh() chan RequestWrapper {
	return gm.reqCh
}

func (gm *GameMachine) Start() {
	// 恢复的房间可能不在大厅阶段，先切到正确的 handler
	if gm.ctx.GameStage != gm.handler.Stage() {
		gm.switchStage()
	}

	// 执行初始 handler 的 OnEnter
	gm.handler.OnEnter(gm.ctx)

	// 进入事件循环
	for {
		// 从请求通道或超时通道接收事件
		var req RequestWrapper

		select {
		case req = <-gm.reqCh:
			zap.L().Debug(
				"接收到客户端请求",
				zap.String("room_code", gm.ctx.RoomCode),
				zap.Any("request", req),
			)
		case req = <-gm.ctx.TmoCh:
			zap.L().Debug(
				"接收到超时事件",
				zap.String("room_code", gm.ctx.RoomCode),
			)
		case <-gm.doneCh:
			zap.L().Info(
				"收到退出信号，结束游戏状态机",
				zap.String("room_code", gm.ctx.RoomCode),
			)
			return
		}

		// 处理请求；非法请求只回发错误事件，绝不改动状态
		err := gm.handler.OnHandle(gm.ctx, req)
		if err != nil {
			zap.L().Debug(
				"处理请求失败",
				zap.Error(err),
				zap.String("stage", gm.handler.Stage()),
				zap.Any("request", req),
			)

			// 只向发起者单播拒绝事件，不广播
			if req.PlayerID != "" {
				gm.ctx.UnicastResp(req.PlayerID, WrapErrResponse(err.Error()))
			}
		}

		// 检查状态是否发生变化
		if gm.ctx.GameStage != gm.handler.Stage() {
			// 状态发生变化，执行切换
			gm.switchStage()

			// 执行新阶段的 OnEnter
			gm.handler.OnEnter(gm.ctx)
		}
	}
}

func (gm *GameMachine) switchStage() {
	// 执行当前 handler 的 OnExit
	gm.handler.OnExit(gm.ctx)

	// 根据新状态创建对应的 handler
	var newHandler StageHandler

	switch gm.ctx.GameStage {
	case STAGE_LOBBY:
		newHandler = NewLobbyStageHandler()
	case STAGE_WAITING:
		newHandler = NewWaitTurnStageHandler()
	case STAGE_MOVING:
		newHandler = NewMovingStageHandler()
	case STAGE_ANSWERING:
		newHandler = NewAnsweringStageHandler()
	case STAGE_FINISHED:
		newHandler = NewFinishStageHandler()
	default:
		zap.L().Error(
			"未知的游戏阶段",
			zap.String("stage", gm.ctx.GameStage),
		)
		return
	}

	// 设置 onSwitch 回调
	onSwitch := func(nextStage string) {
		gm.ctx.GameStage = nextStage
	}

	newHandler.SetOnSwitch(onSwitch)

	// 更新当前 handler
	gm.handler = newHandler
}

func (gm *GameMachine) IsFinished() bool {
	return gm.ctx.Finished()
}

func (gm *GameMachine) IsEmpty() bool {
	return gm.ctx.Occupancy() == 0
}

func (gm *GameMachine) CreatedAt() time.Time {
	return gm.createdAt
}
