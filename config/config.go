package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	JWT struct {
		Secret string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
	} `mapstructure:"jwt"`
	Match struct {
		PlayerTTL int `mapstructure:"player_ttl"` // seconds
	} `mapstructure:"match"`
	Game struct {
		Seed int64 `mapstructure:"seed"` // 0 表示按时间取种子
	} `mapstructure:"game"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

var C Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("match.player_ttl", 300)
	v.SetDefault("game.seed", 0)
	v.SetDefault("log.level", "info")
}

// Load 读取配置文件（path 为空时只用默认值），CARDTABLE_* 环境变量优先
func Load(path string) error {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("CARDTABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	C = c
	return nil
}
