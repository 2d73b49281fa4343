package game

import (
	"errors"
	"testing"
	"time"

	"byte-battle-be/internal/service/dto"
)

// stubStore 只记录写入，供阶段处理器测试使用
type stubStore struct {
	question    *dto.Question
	positions   map[string]int
	inventories map[string]string
	deleted     []string

	// 最近一次抽题收到的难度参数
	pickedDifficulty string
}

func newStubStore() *stubStore {
	return &stubStore{
		positions:   make(map[string]int),
		inventories: make(map[string]string),
	}
}

func (s *stubStore) UpdateRoomState(code string, status string, gameState string, currentTurn int) error {
	return nil
}

func (s *stubStore) UpdatePlayerPosition(playerID string, position int) error {
	s.positions[playerID] = position
	return nil
}

func (s *stubStore) UpdatePlayerInventory(playerID string, inventory string) error {
	s.inventories[playerID] = inventory
	return nil
}

func (s *stubStore) DeletePlayer(playerID string) error {
	s.deleted = append(s.deleted, playerID)
	return nil
}

func (s *stubStore) PickQuestion(category string, difficulty string) (*dto.Question, error) {
	s.pickedDifficulty = difficulty
	if s.question == nil {
		return nil, errors.New("题库为空")
	}
	return s.question, nil
}

func newTestContext(store Store, players ...*Player) *GameContext {
	ctx := &GameContext{
		RoomCode:  "TEST42",
		Status:    dto.STATUS_PLAYING,
		GameStage: STAGE_WAITING,
		TurnOrder: make([]string, 0, len(players)),
		Players:   make(map[string]*Player),
		SkipNext:  make(map[string]bool),
		Store:     store,
		TmoCh:     make(chan RequestWrapper, 8),
	}

	for _, p := range players {
		if p.RespCh == nil {
			p.RespCh = make(chan ResponseWrapper, 32)
		}
		ctx.Players[p.ID] = p
		ctx.TurnOrder = append(ctx.TurnOrder, p.ID)
		ctx.occupancy.Add(1)
	}

	return ctx
}

// 把 onSwitch 接到 ctx 上，模拟状态机事件循环的行为
func wireHandler(ctx *GameContext, handler StageHandler) {
	handler.SetOnSwitch(func(nextStage string) {
		ctx.GameStage = nextStage
	})
}

// 取出某个玩家收到的全部指定类型响应
func drainResponses(p *Player, respType string) []ResponseWrapper {
	var out []ResponseWrapper
	for {
		select {
		case resp := <-p.RespCh:
			if resp.Type == respType {
				out = append(out, resp)
			}
		default:
			return out
		}
	}
}

func TestWaitTurnStage_RejectsOutOfTurnRoll(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana"}
	p2 := &Player{ID: "p2", Username: "bruno"}

	ctx := newTestContext(newStubStore(), p1, p2)

	wsh := NewWaitTurnStageHandler()
	wireHandler(ctx, wsh)

	req := RequestWrapper{
		Type:     REQ_ROLL_DICE,
		PlayerID: "p2",
	}

	if err := wsh.OnHandle(ctx, req); err == nil {
		t.Fatalf("out-of-turn roll should be rejected")
	}

	if ctx.DiceValue != 0 {
		t.Fatalf("rejected roll mutated dice value: %d", ctx.DiceValue)
	}

	if ctx.GameStage != STAGE_WAITING {
		t.Fatalf("rejected roll switched stage to %s", ctx.GameStage)
	}
}

func TestWaitTurnStage_RollSwitchesToMoving(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana", Position: 5}
	p2 := &Player{ID: "p2", Username: "bruno"}

	ctx := newTestContext(newStubStore(), p1, p2)

	wsh := NewWaitTurnStageHandler()
	wireHandler(ctx, wsh)

	req := RequestWrapper{
		Type:     REQ_ROLL_DICE,
		PlayerID: "p1",
	}

	if err := wsh.OnHandle(ctx, req); err != nil {
		t.Fatalf("roll failed: %v", err)
	}

	if ctx.DiceValue < 1 || ctx.DiceValue > 6 {
		t.Fatalf("dice value out of range: %d", ctx.DiceValue)
	}

	if ctx.GameStage != STAGE_MOVING {
		t.Fatalf("want stage MOVING, got %s", ctx.GameStage)
	}

	// 两名玩家都应收到掷骰广播
	for _, p := range []*Player{p1, p2} {
		rolled := drainResponses(p, RESP_DICE_ROLLED)
		if len(rolled) != 1 {
			t.Fatalf("player %s want 1 DICE_ROLLED, got %d", p.ID, len(rolled))
		}

		data := rolled[0].Data.(DiceRolledResponse)
		if data.PlayerID != "p1" || data.DiceValue != ctx.DiceValue {
			t.Fatalf("unexpected roll payload: %+v", data)
		}
		if len(data.PossibleMoves) == 0 {
			t.Fatalf("possible moves missing")
		}
	}
}

func TestMovingStage_TeleportBroadcastsBothPositions(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana", Position: 46}
	p2 := &Player{ID: "p2", Username: "bruno"}

	store := newStubStore()
	ctx := newTestContext(store, p1, p2)
	ctx.GameStage = STAGE_MOVING
	ctx.DiceValue = 4

	msh := NewMovingStageHandler()
	wireHandler(ctx, msh)

	req := RequestWrapper{
		Type:     REQ_PLAYER_MOVED,
		PlayerID: "p1",
		Data:     mustMarshal(PlayerMovedRequest{TargetPosition: 50}),
	}

	if err := msh.OnHandle(ctx, req); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	// 先广播真实落点 50，再广播传送后的 70
	moved := drainResponses(p2, RESP_PLAYER_MOVED)
	if len(moved) != 2 {
		t.Fatalf("want 2 PLAYER_MOVED, got %d", len(moved))
	}

	first := moved[0].Data.(PlayerMovedResponse)
	second := moved[1].Data.(PlayerMovedResponse)

	if first.Position != 50 || first.House.Type != HOUSE_TELEPORT {
		t.Fatalf("first broadcast wrong: %+v", first)
	}
	if second.Position != 70 {
		t.Fatalf("second broadcast wrong: %+v", second)
	}

	if p1.Position != 70 {
		t.Fatalf("player position want 70, got %d", p1.Position)
	}
	if store.positions["p1"] != 70 {
		t.Fatalf("persisted position want 70, got %d", store.positions["p1"])
	}

	// 传送后回合交给下一位
	if ctx.GameStage != STAGE_WAITING {
		t.Fatalf("want stage WAITING, got %s", ctx.GameStage)
	}
	if ctx.CurrentTurn != 1 {
		t.Fatalf("want turn 1, got %d", ctx.CurrentTurn)
	}
}

func TestMovingStage_RejectsIllegalMove(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana", Position: 2}
	p2 := &Player{ID: "p2", Username: "bruno"}

	ctx := newTestContext(newStubStore(), p1, p2)
	ctx.GameStage = STAGE_MOVING
	ctx.DiceValue = 2

	msh := NewMovingStageHandler()
	wireHandler(ctx, msh)

	req := RequestWrapper{
		Type:     REQ_PLAYER_MOVED,
		PlayerID: "p1",
		Data:     mustMarshal(PlayerMovedRequest{TargetPosition: 6}),
	}

	err := msh.OnHandle(ctx, req)
	if !errors.Is(err, ErrMoveTooFar) {
		t.Fatalf("want ErrMoveTooFar, got %v", err)
	}

	// 拒绝的移动不改变任何状态
	if p1.Position != 2 {
		t.Fatalf("rejected move mutated position: %d", p1.Position)
	}
	if ctx.GameStage != STAGE_MOVING {
		t.Fatalf("rejected move switched stage to %s", ctx.GameStage)
	}
	if ctx.CurrentTurn != 0 {
		t.Fatalf("rejected move advanced turn to %d", ctx.CurrentTurn)
	}
}

func TestMovingStage_CenterWinsWithAllLetters(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana", Position: 40, Inventory: "LATIGID@"}
	p2 := &Player{ID: "p2", Username: "bruno"}

	ctx := newTestContext(newStubStore(), p1, p2)
	ctx.GameStage = STAGE_MOVING
	ctx.DiceValue = 4

	msh := NewMovingStageHandler()
	wireHandler(ctx, msh)

	req := RequestWrapper{
		Type:     REQ_PLAYER_MOVED,
		PlayerID: "p1",
		Data:     mustMarshal(PlayerMovedRequest{TargetPosition: 44}),
	}

	if err := msh.OnHandle(ctx, req); err != nil {
		t.Fatalf("winning move failed: %v", err)
	}

	if ctx.WinnerID != "p1" {
		t.Fatalf("want winner p1, got %q", ctx.WinnerID)
	}
	if ctx.GameStage != STAGE_FINISHED {
		t.Fatalf("want stage FINISHED, got %s", ctx.GameStage)
	}
}

func TestMovingStage_CenterLockedWithoutLetters(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana", Position: 40, Inventory: "DIG"}
	p2 := &Player{ID: "p2", Username: "bruno"}

	ctx := newTestContext(newStubStore(), p1, p2)
	ctx.GameStage = STAGE_MOVING
	ctx.DiceValue = 4

	msh := NewMovingStageHandler()
	wireHandler(ctx, msh)

	req := RequestWrapper{
		Type:     REQ_PLAYER_MOVED,
		PlayerID: "p1",
		Data:     mustMarshal(PlayerMovedRequest{TargetPosition: 44}),
	}

	if err := msh.OnHandle(ctx, req); !errors.Is(err, ErrCenterLocked) {
		t.Fatalf("want ErrCenterLocked, got %v", err)
	}

	if ctx.WinnerID != "" {
		t.Fatalf("locked center produced winner %q", ctx.WinnerID)
	}
}

func TestMovingStage_ThemeHouseDrawsQuestion(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana", Position: 1}
	p2 := &Player{ID: "p2", Username: "bruno"}

	store := newStubStore()
	store.question = &dto.Question{
		ID:           "q1",
		Category:     "PSI",
		Text:         "teste",
		Options:      []string{"a", "b", "c"},
		CorrectIndex: 2,
	}

	ctx := newTestContext(store, p1, p2)
	ctx.GameStage = STAGE_MOVING
	ctx.DiceValue = 3

	msh := NewMovingStageHandler()
	wireHandler(ctx, msh)

	req := RequestWrapper{
		Type:     REQ_PLAYER_MOVED,
		PlayerID: "p1",
		Data:     mustMarshal(PlayerMovedRequest{TargetPosition: 3}),
	}

	if err := msh.OnHandle(ctx, req); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	if ctx.GameStage != STAGE_ANSWERING {
		t.Fatalf("want stage ANSWERING, got %s", ctx.GameStage)
	}
	if ctx.PendingQuestion == nil || ctx.PendingQuestion.ID != "q1" {
		t.Fatalf("pending question not set")
	}

	// 广播携带公开版题目，不能带答案
	moved := drainResponses(p2, RESP_PLAYER_MOVED)
	if len(moved) != 1 {
		t.Fatalf("want 1 PLAYER_MOVED, got %d", len(moved))
	}

	data := moved[0].Data.(PlayerMovedResponse)
	if data.Question == nil || data.Question.ID != "q1" {
		t.Fatalf("broadcast missing public question: %+v", data)
	}
}

func TestMovingStage_ThemeHousePicksConfiguredDifficulty(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana", Position: 1}
	p2 := &Player{ID: "p2", Username: "bruno"}

	store := newStubStore()
	store.question = &dto.Question{
		ID:           "q1",
		Category:     "PSI",
		Text:         "teste",
		Options:      []string{"a", "b", "c"},
		CorrectIndex: 0,
	}

	ctx := newTestContext(store, p1, p2)
	ctx.GameStage = STAGE_MOVING
	ctx.DiceValue = 3
	ctx.QuestionDifficulty = "hard"

	msh := NewMovingStageHandler()
	wireHandler(ctx, msh)

	req := RequestWrapper{
		Type:     REQ_PLAYER_MOVED,
		PlayerID: "p1",
		Data:     mustMarshal(PlayerMovedRequest{TargetPosition: 3}),
	}

	if err := msh.OnHandle(ctx, req); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	// 配置的抽题难度要透传到题库查询
	if store.pickedDifficulty != "hard" {
		t.Fatalf("want difficulty hard, got %q", store.pickedDifficulty)
	}
}

func TestAnsweringStage_CorrectAnswerAwardsLetter(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana", Position: 3}
	p2 := &Player{ID: "p2", Username: "bruno"}

	store := newStubStore()
	ctx := newTestContext(store, p1, p2)
	ctx.GameStage = STAGE_ANSWERING
	ctx.PendingQuestion = &dto.Question{
		ID:           "q1",
		Category:     "PSI",
		CorrectIndex: 1,
	}

	ash := NewAnsweringStageHandler()
	wireHandler(ctx, ash)

	req := RequestWrapper{
		Type:     REQ_ANSWER_SUBMITTED,
		PlayerID: "p1",
		Data:     mustMarshal(AnswerSubmittedRequest{QuestionID: "q1", AnswerIndex: 1}),
	}

	if err := ash.OnHandle(ctx, req); err != nil {
		t.Fatalf("answer failed: %v", err)
	}

	if p1.Inventory != "D" {
		t.Fatalf("want inventory D, got %q", p1.Inventory)
	}
	if store.inventories["p1"] != "D" {
		t.Fatalf("inventory not persisted")
	}

	results := drainResponses(p2, RESP_ANSWER_RESULT)
	if len(results) != 1 {
		t.Fatalf("want 1 ANSWER_RESULT, got %d", len(results))
	}

	data := results[0].Data.(AnswerResultResponse)
	if !data.Correct || data.Reward != "D" || data.CorrectIndex != 1 {
		t.Fatalf("unexpected answer payload: %+v", data)
	}

	if ctx.GameStage != STAGE_WAITING {
		t.Fatalf("want stage WAITING, got %s", ctx.GameStage)
	}
	if ctx.CurrentTurn != 1 {
		t.Fatalf("want turn 1, got %d", ctx.CurrentTurn)
	}
	if ctx.PendingQuestion != nil {
		t.Fatalf("pending question not cleared")
	}
}

func TestAnsweringStage_WrongAnswerNoReward(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana"}
	p2 := &Player{ID: "p2", Username: "bruno"}

	ctx := newTestContext(newStubStore(), p1, p2)
	ctx.GameStage = STAGE_ANSWERING
	ctx.PendingQuestion = &dto.Question{
		ID:           "q1",
		Category:     "PSI",
		CorrectIndex: 1,
	}

	ash := NewAnsweringStageHandler()
	wireHandler(ctx, ash)

	req := RequestWrapper{
		Type:     REQ_ANSWER_SUBMITTED,
		PlayerID: "p1",
		Data:     mustMarshal(AnswerSubmittedRequest{QuestionID: "q1", AnswerIndex: 3}),
	}

	if err := ash.OnHandle(ctx, req); err != nil {
		t.Fatalf("answer failed: %v", err)
	}

	if p1.Inventory != "" {
		t.Fatalf("wrong answer awarded %q", p1.Inventory)
	}

	// 答错同样结束回合
	if ctx.GameStage != STAGE_WAITING || ctx.CurrentTurn != 1 {
		t.Fatalf("turn not advanced: stage=%s turn=%d", ctx.GameStage, ctx.CurrentTurn)
	}
}

func TestAnsweringStage_RejectsMismatchedQuestion(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana"}
	p2 := &Player{ID: "p2", Username: "bruno"}

	ctx := newTestContext(newStubStore(), p1, p2)
	ctx.GameStage = STAGE_ANSWERING
	ctx.PendingQuestion = &dto.Question{ID: "q1", Category: "PSI", CorrectIndex: 0}

	ash := NewAnsweringStageHandler()
	wireHandler(ctx, ash)

	req := RequestWrapper{
		Type:     REQ_ANSWER_SUBMITTED,
		PlayerID: "p1",
		Data:     mustMarshal(AnswerSubmittedRequest{QuestionID: "q9", AnswerIndex: 0}),
	}

	if err := ash.OnHandle(ctx, req); err == nil {
		t.Fatalf("mismatched question should be rejected")
	}

	if ctx.GameStage != STAGE_ANSWERING {
		t.Fatalf("rejected answer switched stage to %s", ctx.GameStage)
	}
}

func TestLobbyStage_StartRequiresHostAndTwoPlayers(t *testing.T) {
	host := &Player{ID: "p1", Username: "ana", IsHost: true}

	ctx := newTestContext(newStubStore(), host)
	ctx.Status = dto.STATUS_LOBBY
	ctx.GameStage = STAGE_LOBBY

	lsh := NewLobbyStageHandler()
	wireHandler(ctx, lsh)

	// 人数不足
	req := RequestWrapper{Type: REQ_START_GAME, PlayerID: "p1"}
	if err := lsh.OnHandle(ctx, req); err == nil {
		t.Fatalf("start with one player should be rejected")
	}

	p2 := &Player{ID: "p2", Username: "bruno", RespCh: make(chan ResponseWrapper, 32)}
	ctx.Players["p2"] = p2
	ctx.TurnOrder = append(ctx.TurnOrder, "p2")

	// 非房主
	req = RequestWrapper{Type: REQ_START_GAME, PlayerID: "p2"}
	if err := lsh.OnHandle(ctx, req); err == nil {
		t.Fatalf("start by non-host should be rejected")
	}

	req = RequestWrapper{Type: REQ_START_GAME, PlayerID: "p1"}
	if err := lsh.OnHandle(ctx, req); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if ctx.Status != dto.STATUS_PLAYING {
		t.Fatalf("want status PLAYING, got %s", ctx.Status)
	}
	if ctx.GameStage != STAGE_WAITING {
		t.Fatalf("want stage WAITING, got %s", ctx.GameStage)
	}

	started := drainResponses(p2, RESP_GAME_STARTED)
	if len(started) != 1 {
		t.Fatalf("want 1 GAME_STARTED, got %d", len(started))
	}
}

func TestPlayerExit_AdjustsTurnIndex(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana"}
	p2 := &Player{ID: "p2", Username: "bruno"}
	p3 := &Player{ID: "p3", Username: "carla"}

	store := newStubStore()
	ctx := newTestContext(store, p1, p2, p3)
	ctx.CurrentTurn = 2

	currentLeft := onPlayerExit(ctx, "p3", p3.RespCh)
	if !currentLeft {
		t.Fatalf("exit of current player not detected")
	}

	// 下标回绕到首位玩家
	if ctx.CurrentTurn != 0 {
		t.Fatalf("want turn 0, got %d", ctx.CurrentTurn)
	}

	if len(ctx.TurnOrder) != 2 {
		t.Fatalf("turn order not shrunk: %v", ctx.TurnOrder)
	}

	if len(store.deleted) != 1 || store.deleted[0] != "p3" {
		t.Fatalf("player record not deleted: %v", store.deleted)
	}

	if got := ctx.Occupancy(); got != 2 {
		t.Fatalf("want occupancy 2, got %d", got)
	}

	disconnected := drainResponses(p1, RESP_PLAYER_DISCONNECTED)
	if len(disconnected) != 1 {
		t.Fatalf("want 1 PLAYER_DISCONNECTED, got %d", len(disconnected))
	}
}

func TestPlayerExit_BeforeCurrentShiftsIndex(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana"}
	p2 := &Player{ID: "p2", Username: "bruno"}
	p3 := &Player{ID: "p3", Username: "carla"}

	ctx := newTestContext(newStubStore(), p1, p2, p3)
	ctx.CurrentTurn = 2

	if currentLeft := onPlayerExit(ctx, "p1", p1.RespCh); currentLeft {
		t.Fatalf("exit of non-current player misdetected")
	}

	// p3 仍然是当前玩家
	if current := ctx.CurrentPlayer(); current == nil || current.ID != "p3" {
		t.Fatalf("current player shifted unexpectedly")
	}
}

func TestPlayerExit_IgnoresSupersededConnection(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana"}
	p2 := &Player{ID: "p2", Username: "bruno"}

	store := newStubStore()
	ctx := newTestContext(store, p1, p2)

	// 旧连接的通道和当前绑定的不一致
	staleCh := make(chan ResponseWrapper, 1)
	if currentLeft := onPlayerExit(ctx, "p1", staleCh); currentLeft {
		t.Fatalf("stale exit misdetected as current")
	}

	if _, exists := ctx.Players["p1"]; !exists {
		t.Fatalf("stale exit removed the player")
	}
	if len(store.deleted) != 0 {
		t.Fatalf("stale exit deleted the record")
	}
}

func TestPlayerJoin_ReconnectKeepsProgress(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana", Position: 37, Inventory: "DI"}
	p2 := &Player{ID: "p2", Username: "bruno"}

	ctx := newTestContext(newStubStore(), p1, p2)

	oldCh := p1.RespCh
	newCh := make(chan ResponseWrapper, 32)

	err := onPlayerJoin(ctx, &JoinGameRequest{
		Player: Player{ID: "p1", Username: "ana"},
		RespCh: newCh,
	})
	if err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}

	// 旧通道收到顶替通知，但保持打开，旧读协程的回执还会往里写
	select {
	case resp := <-oldCh:
		if resp.Type != RESP_EXIT_GAME {
			t.Fatalf("want EXIT_GAME on old channel, got %s", resp.Type)
		}
	case <-time.After(time.Second):
		t.Fatalf("old channel got no supersede notice")
	}
	oldCh <- WrapErrResponse("连接已断开")

	kept := ctx.Players["p1"]
	if kept.Position != 37 || kept.Inventory != "DI" {
		t.Fatalf("reconnect dropped progress: %+v", kept)
	}
	if kept.RespCh != newCh {
		t.Fatalf("reconnect did not replace channel")
	}
}

func TestPlayerJoin_RejectsStrangerMidGame(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana"}
	p2 := &Player{ID: "p2", Username: "bruno"}

	ctx := newTestContext(newStubStore(), p1, p2)

	joinCh := make(chan ResponseWrapper, 1)
	err := onPlayerJoin(ctx, &JoinGameRequest{
		Player: Player{ID: "p9", Username: "zoe"},
		RespCh: joinCh,
	})
	if err == nil {
		t.Fatalf("mid-game stranger should be rejected")
	}

	if _, exists := ctx.Players["p9"]; exists {
		t.Fatalf("rejected joiner was added")
	}

	// 拒绝事件直接写回连接通道
	select {
	case resp := <-joinCh:
		if resp.Type != RESP_ERROR {
			t.Fatalf("want ERROR response, got %s", resp.Type)
		}
	default:
		t.Fatalf("no rejection sent to joiner")
	}
}

func TestApplyCardEffect_AllEffects(t *testing.T) {
	store := newStubStore()
	p1 := &Player{ID: "p1", Username: "ana", Inventory: "@D"}
	ctx := newTestContext(store, p1)

	applyCardEffect(ctx, p1, Card{Effect: EFFECT_GAIN_LETTER})
	if p1.Inventory != "@DI" {
		t.Fatalf("gain letter want @DI, got %q", p1.Inventory)
	}
	if store.inventories["p1"] != "@DI" {
		t.Fatalf("gain letter not persisted")
	}

	applyCardEffect(ctx, p1, Card{Effect: EFFECT_LOSE_LETTER})
	if p1.Inventory != "@D" {
		t.Fatalf("lose letter want @D, got %q", p1.Inventory)
	}

	applyCardEffect(ctx, p1, Card{Effect: EFFECT_EXTRA_ROLL})
	if !ctx.ExtraRoll {
		t.Fatalf("extra roll not flagged")
	}

	applyCardEffect(ctx, p1, Card{Effect: EFFECT_SKIP_TURN})
	if !ctx.SkipNext["p1"] {
		t.Fatalf("skip turn not flagged")
	}
}

func TestAdvanceTurn_ExtraRollAndSkip(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana"}
	p2 := &Player{ID: "p2", Username: "bruno"}
	p3 := &Player{ID: "p3", Username: "carla"}

	ctx := newTestContext(newStubStore(), p1, p2, p3)

	// 额外回合：下标不动，标记消耗
	ctx.ExtraRoll = true
	ctx.AdvanceTurn()
	if ctx.CurrentTurn != 0 || ctx.ExtraRoll {
		t.Fatalf("extra roll not consumed: turn=%d flag=%v", ctx.CurrentTurn, ctx.ExtraRoll)
	}

	// 跳过标记的玩家只被跳过一次
	ctx.SkipNext["p2"] = true
	ctx.AdvanceTurn()
	if current := ctx.CurrentPlayer(); current == nil || current.ID != "p3" {
		t.Fatalf("skip turn not honored, current: %+v", ctx.CurrentPlayer())
	}
	if ctx.SkipNext["p2"] {
		t.Fatalf("skip flag not consumed")
	}

	ctx.AdvanceTurn()
	if current := ctx.CurrentPlayer(); current == nil || current.ID != "p1" {
		t.Fatalf("turn should wrap to p1, current: %+v", ctx.CurrentPlayer())
	}
}

func TestGameWon_RequiresCenterAndLetters(t *testing.T) {
	p1 := &Player{ID: "p1", Username: "ana", Position: 12, Inventory: "@DIGITAL"}

	ctx := newTestContext(newStubStore(), p1)

	if err := onGameWon(ctx, "p1"); err == nil {
		t.Fatalf("win off center should be rejected")
	}

	p1.Position = CENTER_POSITION
	p1.Inventory = "DIG"
	if err := onGameWon(ctx, "p1"); err == nil {
		t.Fatalf("win without letters should be rejected")
	}

	p1.Inventory = "@DIGITAL"
	if err := onGameWon(ctx, "p1"); err != nil {
		t.Fatalf("valid win rejected: %v", err)
	}
	if ctx.WinnerID != "p1" {
		t.Fatalf("winner not recorded")
	}
}
