package state

import (
	"byte-battle-be/internal/config"
	"byte-battle-be/internal/service"
	"byte-battle-be/internal/storage"
)

type AppState struct {
	Cfg     *config.AppConfig
	Store   *storage.Store
	AuthSvc *service.AuthService
	RoomSvc *service.RoomService
}

func NewAppState(
	cfg *config.AppConfig,
	store *storage.Store,
	authSvc *service.AuthService,
	roomSvc *service.RoomService,
) *AppState {
	return &AppState{
		Cfg:     cfg,
		Store:   store,
		AuthSvc: authSvc,
		RoomSvc: roomSvc,
	}
}
