package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"byte-battle-be/internal/config"
	"byte-battle-be/internal/service/dto"
	"byte-battle-be/internal/service/game"
	"byte-battle-be/internal/storage"

	"go.uber.org/zap"
)

// 房间码字符集，去掉了容易混淆的 0/O/1/I
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const ROOM_CODE_LEN = 6

// 空房间在清理前的宽限时间，给刚创建的房间留出连接窗口
const emptyRoomGrace = 2 * time.Minute

type RoomService struct {
	state *roomServiceState
}

type roomServiceState struct {
	mu sync.RWMutex

	store *storage.Store
	cfg   *config.AppConfig

	// 从房间码到游戏状态机的映射
	machines map[string]*machineEntry

	cleanUpDone chan struct{}
}

type machineEntry struct {
	machine *game.GameMachine
	doneCh  chan struct{}
}

func NewRoomService(store *storage.Store, cfg *config.AppConfig) *RoomService {
	state := &roomServiceState{
		store:       store,
		cfg:         cfg,
		machines:    make(map[string]*machineEntry),
		cleanUpDone: make(chan struct{}),
	}

	// 启动一个 goroutine 定期清理过期的房间
	go startCleanupLoop(state)

	return &RoomService{
		state: state,
	}
}

func startCleanupLoop(state *roomServiceState) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-state.cleanUpDone:
			return

		case <-ticker.C:
			state.mu.Lock()

			for code, entry := range state.machines {
				if !isMachineEvictable(entry.machine) {
					continue
				}

				zap.S().Infof("房间 %s 状态失效，开始清理", code)

				// 通知对应的房间 goroutine 退出
				close(entry.doneCh)
				delete(state.machines, code)
			}

			state.mu.Unlock()
		}
	}
}

func (rs *RoomService) Close() {
	close(rs.state.cleanUpDone)

	rs.state.mu.Lock()
	defer rs.state.mu.Unlock()

	for code, entry := range rs.state.machines {
		close(entry.doneCh)
		delete(rs.state.machines, code)
	}
}

// CreateRoom 创建新房间，创建者自动成为房主并占据第一个回合位
func (rs *RoomService) CreateRoom(userID string) (dto.CreateRoomResponse, error) {
	user, err := rs.state.store.FindUserByID(userID)
	if err != nil {
		return dto.CreateRoomResponse{}, errors.New("用户不存在")
	}

	// 生成房间码，撞码则重试
	var code string
	for i := 0; i < 10; i++ {
		candidate := generateRoomCode()
		if _, err := rs.state.store.FindRoomByCode(candidate); errors.Is(err, storage.ErrNotFound) {
			code = candidate
			break
		}
	}
	if code == "" {
		return dto.CreateRoomResponse{}, errors.New("生成房间码失败")
	}

	host := dto.Player{
		ID:       game.ShortID(),
		UserID:   user.ID,
		Username: user.Username,
		Position: 0,
		IsHost:   true,
	}

	room := dto.Room{
		ID:          game.GenID(),
		Code:        code,
		Status:      dto.STATUS_LOBBY,
		GameState:   dto.STATE_WAITING,
		CurrentTurn: 0,
		HostID:      user.ID,
		Players:     []dto.Player{host},
	}

	if err := rs.state.store.CreateRoom(room, host); err != nil {
		zap.S().Errorf("房间 %s 写入存储失败：%v", code, err)
		return dto.CreateRoomResponse{}, errors.New("创建房间失败")
	}

	rs.startMachine(&room)

	zap.S().Infof("房间 %s 由 %s 创建", code, user.Username)

	return dto.CreateRoomResponse{
		Room:       room,
		InviteLink: rs.InviteLink(code),
	}, nil
}

// JoinRoom 通过 HTTP 将玩家登记进房间
// 重复加入是幂等的，返回 AlreadyJoined 供客户端直接走重连流程
func (rs *RoomService) JoinRoom(userID string, roomCode string) (dto.JoinRoomResponse, error) {
	if roomCode == "" {
		return dto.JoinRoomResponse{}, errors.New("房间码不能为空")
	}

	room, err := rs.state.store.FindRoomByCode(roomCode)
	if err != nil {
		return dto.JoinRoomResponse{}, errors.New("房间不存在")
	}

	if existing, err := rs.state.store.FindPlayer(userID, roomCode); err == nil {
		return dto.JoinRoomResponse{
			Joined:        *existing,
			AlreadyJoined: true,
		}, nil
	}

	if room.Status != dto.STATUS_LOBBY {
		return dto.JoinRoomResponse{}, errors.New("游戏已经开始，无法加入")
	}

	if len(room.Players) >= game.MAX_PLAYERS {
		return dto.JoinRoomResponse{}, errors.New("房间已满")
	}

	user, err := rs.state.store.FindUserByID(userID)
	if err != nil {
		return dto.JoinRoomResponse{}, errors.New("用户不存在")
	}

	player := dto.Player{
		ID:       game.ShortID(),
		UserID:   user.ID,
		RoomID:   room.ID,
		Username: user.Username,
		Position: 0,
	}

	if err := rs.state.store.CreatePlayer(player); err != nil {
		zap.S().Errorf("房间 %s 登记玩家 %s 失败：%v", roomCode, user.Username, err)
		return dto.JoinRoomResponse{}, errors.New("加入房间失败")
	}

	zap.S().Infof("房间 %s 接纳玩家 %s", roomCode, user.Username)

	return dto.JoinRoomResponse{Joined: player}, nil
}

func (rs *RoomService) GetRoom(roomCode string) (*dto.Room, error) {
	room, err := rs.state.store.FindRoomByCode(roomCode)
	if err != nil {
		return nil, errors.New("房间不存在")
	}

	return room, nil
}

func (rs *RoomService) ListRooms(userID string) ([]dto.RoomSummary, error) {
	return rs.state.store.ListRoomsByUser(userID)
}

// AttachPlayer 返回房间状态机的请求通道，供 websocket 层投递事件
// 如果状态机不在内存中（例如服务重启后），从存储恢复一个
func (rs *RoomService) AttachPlayer(roomCode string) (chan game.RequestWrapper, error) {
	rs.state.mu.RLock()
	entry, exists := rs.state.machines[roomCode]
	rs.state.mu.RUnlock()

	if exists {
		if entry.machine.IsFinished() {
			return nil, errors.New("游戏已经结束")
		}

		return entry.machine.GetReqCh(), nil
	}

	room, err := rs.state.store.FindRoomByCode(roomCode)
	if err != nil {
		return nil, errors.New("房间不存在")
	}

	if room.Status == dto.STATUS_FINISHED {
		return nil, errors.New("游戏已经结束")
	}

	rs.state.mu.Lock()
	defer rs.state.mu.Unlock()

	// 加写锁后再次检查，避免并发恢复出两个状态机
	if entry, exists := rs.state.machines[roomCode]; exists {
		return entry.machine.GetReqCh(), nil
	}

	zap.S().Infof("房间 %s 状态机不在内存中，从存储恢复", roomCode)

	return rs.startMachineLocked(room).machine.GetReqCh(), nil
}

func (rs *RoomService) InviteLink(roomCode string) string {
	return fmt.Sprintf("http://%s:%d/join?code=%s", rs.state.cfg.Host, rs.state.cfg.Port, roomCode)
}

func (rs *RoomService) startMachine(room *dto.Room) {
	rs.state.mu.Lock()
	defer rs.state.mu.Unlock()

	rs.startMachineLocked(room)
}

func (rs *RoomService) startMachineLocked(room *dto.Room) *machineEntry {
	doneCh := make(chan struct{})

	opts := game.MachineOptions{
		TurnTimeout:        time.Duration(rs.state.cfg.TurnTimeoutSec) * time.Second,
		QuestionDifficulty: rs.state.cfg.QuestionDifficulty,
	}
	machine := game.NewGameMachine(room, rs.state.store, opts, doneCh)

	entry := &machineEntry{
		machine: machine,
		doneCh:  doneCh,
	}
	rs.state.machines[room.Code] = entry

	go machine.Start()

	return entry
}

func isMachineEvictable(machine *game.GameMachine) bool {
	if machine.IsFinished() {
		return true
	}

	if machine.IsEmpty() && time.Since(machine.CreatedAt()) > emptyRoomGrace {
		return true
	}

	return false
}

func generateRoomCode() string {
	buf := make([]byte, ROOM_CODE_LEN)
	for i := range buf {
		buf[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}

	return string(buf)
}
