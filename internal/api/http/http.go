package http

import (
	"fmt"

	"byte-battle-be/internal/api/http/websocket"
	"byte-battle-be/internal/state"

	"github.com/kataras/iris/v12"
)

func RunServer(appState *state.AppState) {
	app := iris.Default()

	api := app.Party("/api/v1")

	api.Post("/auth/register", Register(appState))
	api.Post("/auth/login", Login(appState))
	api.Get("/auth/me", RequireAuth(appState), Me(appState))

	api.Post("/rooms/create", RequireAuth(appState), CreateRoom(appState))
	api.Get("/rooms", RequireAuth(appState), ListRooms(appState))
	api.Post("/rooms/{code}/join", RequireAuth(appState), JoinRoom(appState))
	api.Get("/rooms/{code}", RequireAuth(appState), GetRoom(appState))
	api.Get("/rooms/{code}/qr", GetRoomQR(appState))

	api.Get("/questions", RequireAuth(appState), ListQuestions(appState))

	api.Get("/ws/join", websocket.JoinGame(appState))

	addr := fmt.Sprintf(
		"%s:%d",
		appState.Cfg.Host,
		appState.Cfg.Port,
	)

	app.Listen(addr)
}
