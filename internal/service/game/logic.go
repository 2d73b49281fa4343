package game

import (
	"errors"
	"math/rand"

	"byte-battle-be/internal/service/dto"

	"go.uber.org/zap"
)

// 一局游戏分为 5 个阶段：
// 1. 大厅阶段（LOBBY）：玩家可以加入房间，等待房主开始游戏
// 2. 等待阶段（WAITING）：等待当前回合的玩家掷骰子
// 3. 移动阶段（MOVING）：骰子已掷出，等待当前玩家选择目标格子
// 4. 答题阶段（ANSWERING）：落在主题格上，等待当前玩家作答
// 5. 结束阶段（FINISHED）：有玩家集齐字母到达中心格，游戏结束
const (
	STAGE_LOBBY     = "LOBBY"
	STAGE_WAITING   = "WAITING"
	STAGE_MOVING    = "MOVING"
	STAGE_ANSWERING = "ANSWERING"
	STAGE_FINISHED  = "FINISHED"
)

// 一个房间最多 6 名玩家
const MAX_PLAYERS = 6

type StageHandler interface {
	Stage() string

	OnEnter(ctx *GameContext)
	OnHandle(ctx *GameContext, req RequestWrapper) error
	OnExit(ctx *GameContext)

	SetOnSwitch(func(nextStage string))
}

// 大厅阶段是整个游戏最初始的阶段
type lobbyStageHandler struct {
	onSwitch func(string)
}

func NewLobbyStageHandler() *lobbyStageHandler {
	return &lobbyStageHandler{}
}

func (lsh *lobbyStageHandler) Stage() string {
	return STAGE_LOBBY
}

func (lsh *lobbyStageHandler) OnEnter(ctx *GameContext) {
	ctx.Status = dto.STATUS_LOBBY
	ctx.GameStage = STAGE_LOBBY
}

func (lsh *lobbyStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if jreq := TryUnwrapJoinGameRequest(req); jreq != nil {
		return onPlayerJoin(ctx, jreq)
	}

	if ereq := TryUnwrapExitGameRequest(req); ereq != nil {
		onPlayerExit(ctx, ereq.PlayerID, ereq.RespCh)
		return nil
	}

	if creq := TryUnwrapChatRequest(req); creq != nil {
		return onChat(ctx, req.PlayerID, creq.Message)
	}

	if req.Type == REQ_START_GAME {
		player, ok := ctx.Players[req.PlayerID]
		if !ok {
			return errors.New("无法开始游戏：玩家不在房间内")
		}

		// 只有房主可以开始游戏
		if !player.IsHost {
			return errors.New("无法开始游戏：只有房主可以开始")
		}

		if len(ctx.TurnOrder) < 2 {
			return errors.New("无法开始游戏：至少需要 2 名玩家")
		}

		ctx.Status = dto.STATUS_PLAYING
		ctx.CurrentTurn = 0
		ctx.PersistRoomState()

		ctx.BroadcastResp(WrapResponse(
			RESP_GAME_STARTED,
			GameStartedResponse{
				CurrentTurn: 0,
				GameState:   STAGE_WAITING,
			},
		))

		zap.L().Info(
			"游戏开始",
			zap.String("room_code", ctx.RoomCode),
			zap.Int("players", len(ctx.TurnOrder)),
		)

		lsh.onSwitch(STAGE_WAITING)

		return nil
	}

	return errors.New("大厅阶段不支持该请求类型")
}

func (lsh *lobbyStageHandler) OnExit(ctx *GameContext) {
}

func (lsh *lobbyStageHandler) SetOnSwitch(onSwitch func(string)) {
	lsh.onSwitch = onSwitch
}

// 等待阶段处理器：等待当前玩家掷骰子
type waitTurnStageHandler struct {
	onSwitch func(string)
}

func NewWaitTurnStageHandler() *waitTurnStageHandler {
	return &waitTurnStageHandler{}
}

func (wsh *waitTurnStageHandler) Stage() string {
	return STAGE_WAITING
}

func (wsh *waitTurnStageHandler) OnEnter(ctx *GameContext) {
	// 进入等待阶段时玩家数可能已经收缩，先规整回合下标
	ctx.NormalizeTurn()
	ctx.PersistRoomState()

	current := ctx.CurrentPlayer()
	if current == nil {
		return
	}

	ctx.BroadcastResp(WrapResponse(
		RESP_TURN_CHANGED,
		TurnChangedResponse{
			CurrentTurn: ctx.CurrentTurn,
			PlayerID:    current.ID,
		},
	))

	ctx.SetTimeout(STAGE_WAITING, ctx.TurnTimeout)
}

func (wsh *waitTurnStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if jreq := TryUnwrapJoinGameRequest(req); jreq != nil {
		return onPlayerJoin(ctx, jreq)
	}

	if ereq := TryUnwrapExitGameRequest(req); ereq != nil {
		if currentLeft := onPlayerExit(ctx, ereq.PlayerID, ereq.RespCh); currentLeft {
			// 当前玩家断线，回合下标已经指向下一位，原地通报新回合
			if current := ctx.CurrentPlayer(); current != nil {
				ctx.BroadcastResp(WrapResponse(
					RESP_TURN_CHANGED,
					TurnChangedResponse{
						CurrentTurn: ctx.CurrentTurn,
						PlayerID:    current.ID,
					},
				))
			}

			ctx.SetTimeout(STAGE_WAITING, ctx.TurnTimeout)
		}
		return nil
	}

	if creq := TryUnwrapChatRequest(req); creq != nil {
		return onChat(ctx, req.PlayerID, creq.Message)
	}

	if treq := TryUnwrapTimeoutRequest(req); treq != nil {
		if treq.Stage == STAGE_WAITING {
			// 当前玩家迟迟不掷骰子，自动跳过
			zap.L().Info(
				"回合超时，跳过当前玩家",
				zap.String("room_code", ctx.RoomCode),
				zap.Int("current_turn", ctx.CurrentTurn),
			)

			ctx.AdvanceTurn()
			ctx.NormalizeTurn()
			ctx.PersistRoomState()

			if current := ctx.CurrentPlayer(); current != nil {
				ctx.BroadcastResp(WrapResponse(
					RESP_TURN_CHANGED,
					TurnChangedResponse{
						CurrentTurn: ctx.CurrentTurn,
						PlayerID:    current.ID,
					},
				))
			}

			ctx.SetTimeout(STAGE_WAITING, ctx.TurnTimeout)

			return nil
		}
	}

	if req.Type == REQ_ROLL_DICE {
		current := ctx.CurrentPlayer()
		if current == nil {
			return errors.New("房间内没有玩家")
		}

		// 服务器端校验回合归属，不信任客户端声明
		if req.PlayerID != current.ID {
			return errors.New("还没轮到你掷骰子")
		}

		ctx.DiceValue = rand.Intn(6) + 1

		ctx.BroadcastResp(WrapResponse(
			RESP_DICE_ROLLED,
			DiceRolledResponse{
				PlayerID:      current.ID,
				DiceValue:     ctx.DiceValue,
				PossibleMoves: PossibleMoves(current.Position, ctx.DiceValue, current.Inventory),
			},
		))

		wsh.onSwitch(STAGE_MOVING)

		return nil
	}

	if req.Type == REQ_GAME_WON {
		if err := onGameWon(ctx, req.PlayerID); err != nil {
			return err
		}

		wsh.onSwitch(STAGE_FINISHED)

		return nil
	}

	return errors.New("等待阶段只接受掷骰子请求")
}

func (wsh *waitTurnStageHandler) OnExit(ctx *GameContext) {
	ctx.ClearTimeout()
}

func (wsh *waitTurnStageHandler) SetOnSwitch(onSwitch func(string)) {
	wsh.onSwitch = onSwitch
}

// 移动阶段处理器：骰子已掷出，等待当前玩家提交目标格子
type movingStageHandler struct {
	onSwitch func(string)
}

func NewMovingStageHandler() *movingStageHandler {
	return &movingStageHandler{}
}

func (msh *movingStageHandler) Stage() string {
	return STAGE_MOVING
}

func (msh *movingStageHandler) OnEnter(ctx *GameContext) {
	ctx.PersistRoomState()
	ctx.SetTimeout(STAGE_MOVING, ctx.TurnTimeout)
}

func (msh *movingStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if jreq := TryUnwrapJoinGameRequest(req); jreq != nil {
		return onPlayerJoin(ctx, jreq)
	}

	if ereq := TryUnwrapExitGameRequest(req); ereq != nil {
		if currentLeft := onPlayerExit(ctx, ereq.PlayerID, ereq.RespCh); currentLeft {
			msh.onSwitch(STAGE_WAITING)
		}
		return nil
	}

	if creq := TryUnwrapChatRequest(req); creq != nil {
		return onChat(ctx, req.PlayerID, creq.Message)
	}

	if treq := TryUnwrapTimeoutRequest(req); treq != nil {
		if treq.Stage == STAGE_MOVING {
			// 掷了骰子却不走，本回合作废
			ctx.AdvanceTurn()
			msh.onSwitch(STAGE_WAITING)
			return nil
		}
	}

	if mreq := TryUnwrapPlayerMovedRequest(req); mreq != nil {
		current := ctx.CurrentPlayer()
		if current == nil {
			return errors.New("房间内没有玩家")
		}

		if req.PlayerID != current.ID {
			return errors.New("还没轮到你移动")
		}

		// 合法性校验失败时状态不变，只回发拒绝事件
		if err := ValidateMove(current.Position, mreq.TargetPosition, ctx.DiceValue, current.Inventory); err != nil {
			return err
		}

		// 决斗检测在传送之前，以落点为准
		var duel *DuelInfo
		for _, id := range ctx.TurnOrder {
			other := ctx.Players[id]
			if other.ID != current.ID && other.Position == mreq.TargetPosition {
				duel = &DuelInfo{
					OpponentID:     other.ID,
					OpponentUserID: other.UserID,
				}
				break
			}
		}

		current.Position = mreq.TargetPosition
		persistPosition(ctx, current)

		house := HouseAt(current.Position)

		// 主题格先抽题再广播，广播里带上公开版题目
		var question *dto.PublicQuestion
		if house.Type == HOUSE_THEME {
			q, err := ctx.Store.PickQuestion(house.Category, ctx.QuestionDifficulty)
			if err != nil {
				zap.L().Error(
					"抽题失败，本回合跳过答题",
					zap.String("room_code", ctx.RoomCode),
					zap.String("category", house.Category),
					zap.Error(err),
				)
			} else {
				ctx.PendingQuestion = q
				public := q.Sanitize()
				question = &public
			}
		}

		ctx.BroadcastResp(WrapResponse(
			RESP_PLAYER_MOVED,
			PlayerMovedResponse{
				PlayerID: current.ID,
				Position: current.Position,
				House:    house,
				Duel:     duel,
				Question: question,
			},
		))

		switch house.Type {
		case HOUSE_CENTER:
			// 能通过移动校验走进中心格，说明字母已经集齐
			ctx.WinnerID = current.ID
			msh.onSwitch(STAGE_FINISHED)

		case HOUSE_TELEPORT:
			// 先按真实落点广播，再补一条传送后的位置更新
			dest := TeleportDest(current.Position)
			current.Position = dest
			persistPosition(ctx, current)

			ctx.BroadcastResp(WrapResponse(
				RESP_PLAYER_MOVED,
				PlayerMovedResponse{
					PlayerID: current.ID,
					Position: dest,
					House:    HouseAt(dest),
				},
			))

			ctx.AdvanceTurn()
			msh.onSwitch(STAGE_WAITING)

		case HOUSE_MYSTERY:
			card := DrawCard()
			applyCardEffect(ctx, current, card)

			ctx.BroadcastResp(WrapResponse(
				RESP_CARD_DRAWN,
				CardDrawnResponse{
					PlayerID:  current.ID,
					Card:      card,
					Inventory: current.Inventory,
				},
			))

			ctx.AdvanceTurn()
			msh.onSwitch(STAGE_WAITING)

		case HOUSE_THEME:
			if ctx.PendingQuestion == nil {
				// 抽题失败，直接进入下一回合
				ctx.AdvanceTurn()
				msh.onSwitch(STAGE_WAITING)
				return nil
			}

			msh.onSwitch(STAGE_ANSWERING)
		}

		return nil
	}

	if req.Type == REQ_GAME_WON {
		if err := onGameWon(ctx, req.PlayerID); err != nil {
			return err
		}

		msh.onSwitch(STAGE_FINISHED)

		return nil
	}

	return errors.New("移动阶段只接受移动请求")
}

func (msh *movingStageHandler) OnExit(ctx *GameContext) {
	ctx.ClearTimeout()
}

func (msh *movingStageHandler) SetOnSwitch(onSwitch func(string)) {
	msh.onSwitch = onSwitch
}

// 答题阶段处理器：落在主题格，等待当前玩家作答
type answeringStageHandler struct {
	onSwitch func(string)
}

func NewAnsweringStageHandler() *answeringStageHandler {
	return &answeringStageHandler{}
}

func (ash *answeringStageHandler) Stage() string {
	return STAGE_ANSWERING
}

func (ash *answeringStageHandler) OnEnter(ctx *GameContext) {
	ctx.PersistRoomState()
	ctx.SetTimeout(STAGE_ANSWERING, ctx.TurnTimeout)
}

func (ash *answeringStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if jreq := TryUnwrapJoinGameRequest(req); jreq != nil {
		return onPlayerJoin(ctx, jreq)
	}

	if ereq := TryUnwrapExitGameRequest(req); ereq != nil {
		if currentLeft := onPlayerExit(ctx, ereq.PlayerID, ereq.RespCh); currentLeft {
			ash.onSwitch(STAGE_WAITING)
		}
		return nil
	}

	if creq := TryUnwrapChatRequest(req); creq != nil {
		return onChat(ctx, req.PlayerID, creq.Message)
	}

	if treq := TryUnwrapTimeoutRequest(req); treq != nil {
		if treq.Stage == STAGE_ANSWERING {
			// 超时视为放弃作答，没有奖励
			ctx.AdvanceTurn()
			ash.onSwitch(STAGE_WAITING)
			return nil
		}
	}

	if areq := TryUnwrapAnswerSubmittedRequest(req); areq != nil {
		current := ctx.CurrentPlayer()
		if current == nil {
			return errors.New("房间内没有玩家")
		}

		if req.PlayerID != current.ID {
			return errors.New("还没轮到你答题")
		}

		q := ctx.PendingQuestion
		if q == nil {
			return errors.New("当前没有待回答的题目")
		}

		if areq.QuestionID != q.ID {
			return errors.New("提交的题目和当前题目不匹配")
		}

		correct := areq.AnswerIndex == q.CorrectIndex

		// 答对发放该分类下一个未收集的字母
		// 该分类字母已集齐时不发放也不报错（幂等）
		reward := ""
		if correct {
			reward = NextLetter(q.Category, current.Inventory)
			if reward != "" {
				current.Inventory += reward
				persistInventory(ctx, current)
			}
		}

		ctx.BroadcastResp(WrapResponse(
			RESP_ANSWER_RESULT,
			AnswerResultResponse{
				PlayerID:      current.ID,
				Correct:       correct,
				CorrectIndex:  q.CorrectIndex,
				Reward:        reward,
				Inventory:     current.Inventory,
				HasAllLetters: HasAllLetters(current.Inventory),
			},
		))

		ctx.AdvanceTurn()
		ash.onSwitch(STAGE_WAITING)

		return nil
	}

	if req.Type == REQ_GAME_WON {
		if err := onGameWon(ctx, req.PlayerID); err != nil {
			return err
		}

		ash.onSwitch(STAGE_FINISHED)

		return nil
	}

	return errors.New("答题阶段只接受作答请求")
}

func (ash *answeringStageHandler) OnExit(ctx *GameContext) {
	ctx.ClearTimeout()
}

func (ash *answeringStageHandler) SetOnSwitch(onSwitch func(string)) {
	ash.onSwitch = onSwitch
}

// 结束阶段处理器
type finishStageHandler struct {
	onSwitch func(string)
}

func NewFinishStageHandler() *finishStageHandler {
	return &finishStageHandler{}
}

func (fsh *finishStageHandler) Stage() string {
	return STAGE_FINISHED
}

func (fsh *finishStageHandler) OnEnter(ctx *GameContext) {
	ctx.ClearTimeout()

	ctx.Status = dto.STATUS_FINISHED
	ctx.PersistRoomState()

	winnerName := ""
	if winner, ok := ctx.Players[ctx.WinnerID]; ok {
		winnerName = winner.Username
	}

	ctx.BroadcastResp(WrapResponse(
		RESP_GAME_OVER,
		GameOverResponse{
			WinnerID: ctx.WinnerID,
			Username: winnerName,
		},
	))

	zap.L().Info(
		"游戏结束",
		zap.String("room_code", ctx.RoomCode),
		zap.String("winner_id", ctx.WinnerID),
	)

	ctx.finished.Store(true)
}

func (fsh *finishStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if jreq := TryUnwrapJoinGameRequest(req); jreq != nil {
		return onPlayerJoin(ctx, jreq)
	}

	if ereq := TryUnwrapExitGameRequest(req); ereq != nil {
		onPlayerExit(ctx, ereq.PlayerID, ereq.RespCh)
		return nil
	}

	if creq := TryUnwrapChatRequest(req); creq != nil {
		return onChat(ctx, req.PlayerID, creq.Message)
	}

	return errors.New("游戏已结束")
}

func (fsh *finishStageHandler) OnExit(ctx *GameContext) {
	// 强制确定为 FINISHED 阶段，防止出现异常状态
	ctx.GameStage = STAGE_FINISHED
}

func (fsh *finishStageHandler) SetOnSwitch(onSwitch func(string)) {
	fsh.onSwitch = onSwitch
}

// onPlayerJoin 处理玩家接入
// 同一玩家重复接入视为断线重连：替换响应通道并重发房间快照
// 游戏开始后不再接受新玩家，只接受重连
func onPlayerJoin(ctx *GameContext, req *JoinGameRequest) error {
	player := req.Player
	player.RespCh = req.RespCh

	if existing, exists := ctx.Players[player.ID]; exists {
		zap.L().Info(
			"检测到相同 player ID，执行断线重连",
			zap.String("player_id", player.ID),
			zap.String("username", player.Username),
		)

		// 旧连接的读协程可能还在往自己的通道里写错误回执
		// 这里绝不能关闭它，只发一条顶替通知，由连接层自行收尾
		if existing.RespCh != nil {
			select {
			case existing.RespCh <- WrapResponse(RESP_EXIT_GAME, ExitGameResponse{
				LeftPlayerID:   player.ID,
				LeftPlayerName: player.Username,
			}):
			default:
			}
		} else {
			// 旧连接已断开，本次重连让在线人数 +1
			ctx.occupancy.Add(1)
		}

		// 保留内存中的位置和字母，只替换连接
		existing.RespCh = player.RespCh

		ctx.BroadcastResp(WrapResponse(RESP_ROOM_STATE, ctx.BuildRoomState()))

		return nil
	}

	if ctx.Status != dto.STATUS_LOBBY {
		// 不在房间名单里又不是重连，拒绝
		rejectJoiner(req, "游戏已经开始，无法加入")
		return errors.New("游戏已经开始，无法加入")
	}

	if len(ctx.TurnOrder) >= MAX_PLAYERS {
		rejectJoiner(req, "房间已满")
		return errors.New("房间已满")
	}

	ctx.Players[player.ID] = &player
	ctx.TurnOrder = append(ctx.TurnOrder, player.ID)
	ctx.occupancy.Add(1)

	zap.L().Info(
		"玩家加入房间",
		zap.String("room_code", ctx.RoomCode),
		zap.String("player_id", player.ID),
		zap.String("username", player.Username),
	)

	ctx.BroadcastResp(WrapResponse(RESP_ROOM_STATE, ctx.BuildRoomState()))

	return nil
}

// 加入被拒时玩家还不在房间名单里，错误只能直接写回连接通道
func rejectJoiner(req *JoinGameRequest, msg string) {
	select {
	case req.RespCh <- WrapErrResponse(msg):
	default:
	}
}

// onPlayerExit 处理玩家断开
// 返回值表示断开的是否是当前回合的玩家，由调用方决定是否切回等待阶段
func onPlayerExit(ctx *GameContext, playerID string, reqRespCh chan ResponseWrapper) bool {
	player, exists := ctx.Players[playerID]
	if !exists {
		zap.L().Warn(
			"玩家不存在，无法退出",
			zap.String("player_id", playerID),
		)
		return false
	}

	// 检查 RespCh 是否匹配，不匹配说明该连接已被重连顶替
	if player.RespCh != reqRespCh {
		zap.L().Info(
			"检测到旧连接退出（已被顶替），忽略",
			zap.String("player_id", playerID),
		)
		return false
	}

	wasCurrent := false
	if current := ctx.CurrentPlayer(); current != nil && current.ID == playerID {
		wasCurrent = true
	}

	// 先回一条退出确认再关通道，让连接侧能够区分正常退出
	select {
	case player.RespCh <- WrapResponse(RESP_EXIT_GAME, ExitGameResponse{
		LeftPlayerID:   playerID,
		LeftPlayerName: player.Username,
	}):
	default:
	}

	close(player.RespCh)
	player.RespCh = nil
	ctx.occupancy.Add(-1)

	// 从回合顺序和名单中移除，并保持 CurrentTurn 指向原玩家
	idx := -1
	for i, id := range ctx.TurnOrder {
		if id == playerID {
			idx = i
			break
		}
	}

	if idx >= 0 {
		ctx.TurnOrder = append(ctx.TurnOrder[:idx], ctx.TurnOrder[idx+1:]...)
		if idx < ctx.CurrentTurn {
			ctx.CurrentTurn--
		}
	}

	delete(ctx.Players, playerID)
	ctx.NormalizeTurn()

	if err := ctx.Store.DeletePlayer(playerID); err != nil {
		zap.L().Error(
			"删除玩家记录失败",
			zap.String("player_id", playerID),
			zap.Error(err),
		)
	}

	zap.L().Info(
		"玩家离开房间",
		zap.String("room_code", ctx.RoomCode),
		zap.String("player_id", playerID),
	)

	// 房间还有人时才广播离开事件
	if len(ctx.Players) > 0 {
		ctx.BroadcastResp(WrapResponse(
			RESP_PLAYER_DISCONNECTED,
			PlayerDisconnectedResponse{PlayerID: playerID},
		))

		ctx.BroadcastResp(WrapResponse(RESP_ROOM_STATE, ctx.BuildRoomState()))
	}

	ctx.PersistRoomState()

	return wasCurrent && len(ctx.Players) > 0
}

func onChat(ctx *GameContext, playerID string, message string) error {
	player, ok := ctx.Players[playerID]
	if !ok {
		return errors.New("玩家不在房间内")
	}

	ctx.BroadcastResp(WrapResponse(
		RESP_CHAT,
		ChatResponse{
			PlayerID: player.ID,
			Username: player.Username,
			Message:  message,
		},
	))

	return nil
}

// onGameWon 校验胜利声明
// 必须站在中心格并且集齐全部字母，不信任客户端自报的胜利
func onGameWon(ctx *GameContext, playerID string) error {
	player, ok := ctx.Players[playerID]
	if !ok {
		return errors.New("玩家不在房间内")
	}

	if player.Position != CENTER_POSITION {
		return errors.New("没有到达中心格，不能宣布胜利")
	}

	if !HasAllLetters(player.Inventory) {
		return errors.New("字母尚未集齐，不能宣布胜利")
	}

	ctx.WinnerID = player.ID

	return nil
}

func applyCardEffect(ctx *GameContext, player *Player, card Card) {
	switch card.Effect {
	case EFFECT_GAIN_LETTER:
		if letter := MissingLetter(player.Inventory); letter != "" {
			player.Inventory += letter
			persistInventory(ctx, player)
		}

	case EFFECT_LOSE_LETTER:
		if runes := []rune(player.Inventory); len(runes) > 0 {
			player.Inventory = string(runes[:len(runes)-1])
			persistInventory(ctx, player)
		}

	case EFFECT_EXTRA_ROLL:
		ctx.ExtraRoll = true

	case EFFECT_SKIP_TURN:
		ctx.SkipNext[player.ID] = true
	}
}

func persistPosition(ctx *GameContext, player *Player) {
	if err := ctx.Store.UpdatePlayerPosition(player.ID, player.Position); err != nil {
		zap.L().Error(
			"持久化玩家位置失败",
			zap.String("player_id", player.ID),
			zap.Error(err),
		)
	}
}

func persistInventory(ctx *GameContext, player *Player) {
	if err := ctx.Store.UpdatePlayerInventory(player.ID, player.Inventory); err != nil {
		zap.L().Error(
			"持久化玩家物品栏失败",
			zap.String("player_id", player.ID),
			zap.Error(err),
		)
	}
}
