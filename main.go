package main

import (
	"byte-battle-be/internal/api/http"
	"byte-battle-be/internal/config"
	"byte-battle-be/internal/logger"
	"byte-battle-be/internal/service"
	"byte-battle-be/internal/state"
	"byte-battle-be/internal/storage"

	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg := config.InitConfig()

	// 初始化日志器
	logger.InitLogger(cfg.LogLevel)

	// 打开数据库并初始化表结构与题库
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		zap.L().Fatal("打开数据库失败", zap.Error(err))
	}
	defer store.Close()

	if err := store.Setup(); err != nil {
		zap.L().Fatal("初始化数据库失败", zap.Error(err))
	}

	// 组装应用状态
	appState := state.NewAppState(
		cfg,
		store,
		service.NewAuthService(store, cfg.JWTSecret),
		service.NewRoomService(store, cfg),
	)

	// 启动服务器
	http.RunServer(appState)
}
