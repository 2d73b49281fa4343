package http

import (
	"byte-battle-be/internal/state"

	"github.com/kataras/iris/v12"
	qrcode "github.com/skip2/go-qrcode"
)

func CreateRoom(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		userID := ctx.Values().GetString(ctxKeyUserID)

		resp, err := appState.RoomSvc.CreateRoom(userID)
		if err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		ctx.JSON(resp)
	}
}

func ListRooms(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		userID := ctx.Values().GetString(ctxKeyUserID)

		rooms, err := appState.RoomSvc.ListRooms(userID)
		if err != nil {
			ctx.StatusCode(iris.StatusInternalServerError)
			ctx.JSON(iris.Map{
				"error": "查询房间列表失败",
			})
			return
		}

		ctx.JSON(rooms)
	}
}

func JoinRoom(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		userID := ctx.Values().GetString(ctxKeyUserID)
		code := ctx.Params().GetString("code")

		resp, err := appState.RoomSvc.JoinRoom(userID, code)
		if err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		ctx.JSON(resp)
	}
}

func GetRoom(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		code := ctx.Params().GetString("code")

		room, err := appState.RoomSvc.GetRoom(code)
		if err != nil {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		ctx.JSON(room)
	}
}

// GetRoomQR 返回房间邀请链接的二维码 PNG
func GetRoomQR(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		code := ctx.Params().GetString("code")

		if _, err := appState.RoomSvc.GetRoom(code); err != nil {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		png, err := qrcode.Encode(appState.RoomSvc.InviteLink(code), qrcode.Medium, 256)
		if err != nil {
			ctx.StatusCode(iris.StatusInternalServerError)
			ctx.JSON(iris.Map{
				"error": "生成二维码失败",
			})
			return
		}

		ctx.ContentType("image/png")
		ctx.Write(png)
	}
}
