package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	// SQLite 数据库文件路径
	DBPath string `mapstructure:"db_path"`
	// 签发会话令牌使用的密钥
	JWTSecret string `mapstructure:"jwt_secret"`
	// 回合超时时间，单位秒，超时后自动跳过当前玩家
	TurnTimeoutSec int `mapstructure:"turn_timeout_sec"`
	// 抽题难度，留空则不限难度
	QuestionDifficulty string `mapstructure:"question_difficulty"`
}

var cfg *AppConfig

func GetConfig() *AppConfig {
	if cfg == nil {
		cfg = InitConfig()
	}

	return cfg
}

func InitConfig() *AppConfig {
	v := viper.New()

	v.SetConfigFile("app_config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.SetDefault("db_path", "byte_battle.db")
	v.SetDefault("turn_timeout_sec", 45)

	if err := v.ReadInConfig(); err != nil {
		panic(fmt.Errorf("加载配置失败: %w", err))
	}

	var config AppConfig

	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("解析配置失败: %w", err))
	}

	if config.JWTSecret == "" {
		panic(fmt.Errorf("配置缺少 jwt_secret"))
	}

	return &config
}
