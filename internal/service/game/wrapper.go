package game

import (
	"encoding/json"

	"go.uber.org/zap"
)

// 请求类型，和客户端约定的消息标签一致
const (
	REQ_JOIN_ROOM        = "JOIN_ROOM"
	REQ_START_GAME       = "START_GAME"
	REQ_ROLL_DICE        = "ROLL_DICE"
	REQ_PLAYER_MOVED     = "PLAYER_MOVED"
	REQ_ANSWER_SUBMITTED = "ANSWER_SUBMITTED"
	REQ_GAME_WON         = "GAME_WON"
	REQ_CHAT             = "CHAT"

	// 以下两种只在服务器内部构造，不接受客户端直接发送
	REQ_EXIT_GAME = "EXIT_GAME"
	REQ_TIMEOUT   = "TIMEOUT"
)

type RequestWrapper struct {
	Type     string          `json:"type"`
	RoomCode string          `json:"room_code,omitempty"`
	PlayerID string          `json:"player_id,omitempty"`
	UserID   string          `json:"user_id,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`

	// 服务器内部构造的请求直接携带原生数据，不走 JSON
	NativeData any `json:"-"`
}

func TryUnwrapJoinGameRequest(wrapper RequestWrapper) *JoinGameRequest {
	if wrapper.Type != REQ_JOIN_ROOM {
		return nil
	}

	// 加入请求只会由 WS 层在鉴权之后构造，必须携带原生数据
	req, ok := wrapper.NativeData.(*JoinGameRequest)
	if !ok {
		zap.L().Error(
			"JoinGameRequest 缺少原生数据",
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return req
}

func TryUnwrapPlayerMovedRequest(wrapper RequestWrapper) *PlayerMovedRequest {
	if wrapper.Type != REQ_PLAYER_MOVED {
		return nil
	}

	var playerMovedRequest PlayerMovedRequest

	err := json.Unmarshal(wrapper.Data, &playerMovedRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap PlayerMovedRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &playerMovedRequest
}

func TryUnwrapAnswerSubmittedRequest(wrapper RequestWrapper) *AnswerSubmittedRequest {
	if wrapper.Type != REQ_ANSWER_SUBMITTED {
		return nil
	}

	var answerSubmittedRequest AnswerSubmittedRequest

	err := json.Unmarshal(wrapper.Data, &answerSubmittedRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap AnswerSubmittedRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &answerSubmittedRequest
}

func TryUnwrapChatRequest(wrapper RequestWrapper) *ChatRequest {
	if wrapper.Type != REQ_CHAT {
		return nil
	}

	var chatRequest ChatRequest

	err := json.Unmarshal(wrapper.Data, &chatRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap ChatRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &chatRequest
}

func TryUnwrapExitGameRequest(wrapper RequestWrapper) *ExitGameRequest {
	if wrapper.Type != REQ_EXIT_GAME {
		return nil
	}

	req, ok := wrapper.NativeData.(*ExitGameRequest)
	if !ok {
		zap.L().Error(
			"ExitGameRequest 缺少原生数据",
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return req
}

func TryUnwrapTimeoutRequest(wrapper RequestWrapper) *TimeoutRequest {
	if wrapper.Type != REQ_TIMEOUT {
		return nil
	}

	var timeoutRequest TimeoutRequest

	err := json.Unmarshal(wrapper.Data, &timeoutRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap TimeoutRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &timeoutRequest
}

// 响应类型
const (
	RESP_ERROR = "ERROR"

	RESP_ROOM_STATE          = "ROOM_STATE"
	RESP_GAME_STARTED        = "GAME_STARTED"
	RESP_DICE_ROLLED         = "DICE_ROLLED"
	RESP_PLAYER_MOVED        = "PLAYER_MOVED"
	RESP_CARD_DRAWN          = "CARD_DRAWN"
	RESP_ANSWER_RESULT       = "ANSWER_RESULT"
	RESP_TURN_CHANGED        = "TURN_CHANGED"
	RESP_GAME_OVER           = "GAME_OVER"
	RESP_PLAYER_DISCONNECTED = "PLAYER_DISCONNECTED"
	RESP_CHAT                = "CHAT"
	RESP_EXIT_GAME           = "EXIT_GAME"
)

type ResponseWrapper struct {
	Type   string `json:"type"`
	Data   any    `json:"data,omitempty"`
	ErrMsg string `json:"error,omitempty"`
}

func WrapResponse(respType string, data any) ResponseWrapper {
	return ResponseWrapper{
		Type: respType,
		Data: data,
	}
}

func WrapErrResponse(errMsg string) ResponseWrapper {
	return ResponseWrapper{
		Type:   RESP_ERROR,
		ErrMsg: errMsg,
	}
}
