package websocket

import (
	"encoding/json"
	"time"

	"byte-battle-be/internal/service/game"
	"byte-battle-be/internal/state"

	"github.com/gorilla/websocket"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

// 首次请求的 data 字段，携带认证令牌
type joinPayload struct {
	Token string `json:"token"`
}

func JoinGame(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		conn, err := upgrader.Upgrade(
			ctx.ResponseWriter(),
			ctx.Request(),
			nil,
		)
		if err != nil {
			zap.L().Error("升级到WebSocket失败", zap.Error(err))
			ctx.StatusCode(iris.StatusBadRequest)
			return
		}

		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
		conn.SetPongHandler(heartbeatHandler(conn))

		clientIP := ctx.RemoteAddr()

		// 读取首次请求，必须是携带令牌的 JOIN_ROOM
		_, msg, err := conn.ReadMessage()
		if err != nil {
			zap.L().Error(
				"读取首次请求失败",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			return
		}

		var wrapper game.RequestWrapper

		if err := json.Unmarshal(msg, &wrapper); err != nil {
			zap.L().Error(
				"解析首次请求失败",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)

			return
		}

		if wrapper.Type != game.REQ_JOIN_ROOM || wrapper.RoomCode == "" {
			zap.L().Error(
				"首次请求不是JOIN_ROOM类型",
				zap.String("client_ip", clientIP),
				zap.Any("wrapper", wrapper),
			)

			conn.WriteJSON(game.WrapErrResponse("首次请求必须是 JOIN_ROOM"))

			return
		}

		var payload joinPayload
		if wrapper.Data != nil {
			json.Unmarshal(wrapper.Data, &payload)
		}

		// 鉴权：令牌里的用户必须和请求声明的一致
		userID, err := appState.AuthSvc.ValidateToken(payload.Token)
		if err != nil {
			zap.L().Warn(
				"WebSocket鉴权失败",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)

			conn.WriteJSON(game.WrapErrResponse("令牌无效"))

			return
		}

		if wrapper.UserID != "" && wrapper.UserID != userID {
			zap.L().Warn(
				"请求声明的用户和令牌不一致",
				zap.String("client_ip", clientIP),
				zap.String("claimed", wrapper.UserID),
				zap.String("actual", userID),
			)

			conn.WriteJSON(game.WrapErrResponse("身份校验失败"))

			return
		}

		// 玩家必须先通过 HTTP 接口登记进房间
		record, err := appState.Store.FindPlayer(userID, wrapper.RoomCode)
		if err != nil {
			zap.L().Warn(
				"玩家未登记进房间",
				zap.String("client_ip", clientIP),
				zap.String("user_id", userID),
				zap.String("room_code", wrapper.RoomCode),
			)

			conn.WriteJSON(game.WrapErrResponse("请先加入房间"))

			return
		}

		// 获取游戏状态机的请求通道
		reqCh, err := appState.RoomSvc.AttachPlayer(wrapper.RoomCode)
		if err != nil {
			zap.L().Error(
				"接入房间状态机失败",
				zap.String("client_ip", clientIP),
				zap.String("room_code", wrapper.RoomCode),
				zap.Error(err),
			)

			conn.WriteJSON(game.WrapErrResponse(err.Error()))

			return
		}

		respCh := make(chan game.ResponseWrapper, 64)

		playerID := record.ID

		joinReq := game.JoinGameRequest{
			Player: game.Player{
				ID:        record.ID,
				UserID:    record.UserID,
				Username:  record.Username,
				Position:  record.Position,
				Inventory: record.Inventory,
				IsHost:    record.IsHost,
			},
			RespCh: respCh,
		}

		joinWrapper := game.RequestWrapper{
			Type:       game.REQ_JOIN_ROOM,
			RoomCode:   wrapper.RoomCode,
			PlayerID:   playerID,
			UserID:     userID,
			NativeData: &joinReq,
		}

		sendTimer := time.NewTimer(3 * time.Second)
		defer sendTimer.Stop()

		select {
		case reqCh <- joinWrapper:
		case <-sendTimer.C:
			zap.L().Error(
				"房间状态机繁忙，加入请求发送超时",
				zap.String("client_ip", clientIP),
				zap.String("room_code", wrapper.RoomCode),
			)

			conn.WriteJSON(game.WrapErrResponse("房间繁忙，请稍后再试"))

			return
		}

		zap.L().Info(
			"玩家成功接入房间",
			zap.String("client_ip", clientIP),
			zap.String("room_code", wrapper.RoomCode),
			zap.String("player_id", playerID),
			zap.String("username", record.Username),
		)

		// 写协程的退出信号
		writeDoneCh := make(chan struct{})
		defer close(writeDoneCh)

		// 写入协程
		go func() {
			ticker := time.NewTicker(HEARTBEAT_INTERVAL)
			defer ticker.Stop()

			for {
				select {
				case <-writeDoneCh:
					zap.L().Info(
						"WebSocket写入协程退出",
						zap.String("client_ip", clientIP),
					)
					return

				case <-ticker.C:
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						zap.L().Error(
							"发送心跳失败",
							zap.String("client_ip", clientIP),
							zap.Error(err),
						)
						return
					}

					conn.SetWriteDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))

				case resp, ok := <-respCh:
					// 检测到channel已关闭（玩家退出或被重连顶替时状态机关闭了通道）
					if !ok {
						zap.L().Info(
							"响应通道已关闭，退出写协程",
							zap.String("client_ip", clientIP),
						)
						return
					}

					if err := conn.WriteJSON(resp); err != nil {
						zap.L().Error(
							"发送消息失败",
							zap.String("client_ip", clientIP),
							zap.Error(err),
						)
						return
					}

					// 收到退出/顶替通知后主动断开，触发读协程退出
					if resp.Type == game.RESP_EXIT_GAME {
						zap.L().Info(
							"连接已退出或被顶替，关闭 WebSocket",
							zap.String("client_ip", clientIP),
						)
						conn.Close()
						return
					}
				}
			}
		}()

		// 读取协程（主协程）
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(
					err,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure,
				) {
					zap.L().Error(
						"读取消息失败",
						zap.String("client_ip", clientIP),
						zap.Error(err),
					)
				}

				break
			}

			// 解析消息
			var wrapper game.RequestWrapper

			if err := json.Unmarshal(msg, &wrapper); err != nil {
				zap.L().Error(
					"解析消息失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)

				respCh <- game.WrapErrResponse("无效的请求格式")

				continue
			}

			// 内部专用类型不接受客户端发送
			if wrapper.Type == game.REQ_EXIT_GAME || wrapper.Type == game.REQ_TIMEOUT {
				respCh <- game.WrapErrResponse("不支持的请求类型")
				continue
			}

			// 身份由连接绑定，不信任客户端自报的 player_id
			wrapper.PlayerID = playerID
			wrapper.UserID = userID

			// 将解析后的请求发送到游戏状态机
			select {
			case reqCh <- wrapper:
				zap.L().Debug(
					"发送请求到游戏状态机",
					zap.String("client_ip", clientIP),
					zap.Any("request_wrapper", wrapper),
				)
			default:
				zap.L().Error(
					"发送请求到游戏状态机失败：请求通道已满",
					zap.String("client_ip", clientIP),
				)

				respCh <- game.WrapErrResponse("房间繁忙，请稍后再试")
			}
		}

		// 读循环退出，表示客户端断开连接
		// 发送 ExitGame 请求通知游戏状态机清理玩家
		zap.L().Info(
			"客户端连接断开，发送退出请求",
			zap.String("client_ip", clientIP),
			zap.String("player_id", playerID),
		)

		exitReq := game.ExitGameRequest{
			PlayerID: playerID,
			RespCh:   respCh,
		}

		exitWrapper := game.RequestWrapper{
			Type:       game.REQ_EXIT_GAME,
			PlayerID:   playerID,
			NativeData: &exitReq,
		}

		select {
		case reqCh <- exitWrapper:
			zap.L().Debug(
				"发送退出请求成功",
				zap.String("player_id", playerID),
			)
		default:
			zap.L().Warn(
				"发送退出请求失败：请求通道已满",
				zap.String("player_id", playerID),
			)
			// 即使发送失败也继续等待，确保资源回收
		}

		// 等待状态机关闭响应通道或超时
		drainTimer := time.NewTimer(3 * time.Second)
		defer drainTimer.Stop()

	drain:
		for {
			select {
			case resp, ok := <-respCh:
				if !ok {
					zap.L().Info(
						"响应通道已关闭，玩家退出完成",
						zap.String("player_id", playerID),
					)
					break drain
				}

				if resp.Type == game.RESP_EXIT_GAME {
					zap.L().Info(
						"收到退出确认，玩家退出完成",
						zap.String("player_id", playerID),
					)
					break drain
				}

			case <-drainTimer.C:
				zap.L().Warn(
					"等待退出确认超时，强制退出",
					zap.String("player_id", playerID),
				)
				break drain
			}
		}

		zap.L().Info(
			"WebSocket连接处理完成",
			zap.String("client_ip", clientIP),
			zap.String("player_id", playerID),
		)
	}
}
