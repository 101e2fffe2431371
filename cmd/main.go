package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"CardTable/config"
	"CardTable/internal/auth"
	"CardTable/internal/game/manager"
	"CardTable/internal/game/variant"
	"CardTable/internal/matchmaker"
	"CardTable/internal/middleware"
	"CardTable/internal/storage"
	"CardTable/internal/utils"
	"CardTable/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	if err := config.Load(*cfgPath); err != nil {
		utils.Log.Fatal("config load failed", "err", err)
	}
	utils.Init(config.C.Log.Level)

	//-------------------------------------------------------
	// 1. 初始化 Redis
	//-------------------------------------------------------
	rdb, err := storage.InitRedis(context.Background(),
		config.C.Redis.Addr,
		config.C.Redis.Password,
		config.C.Redis.DB,
	)
	if err != nil {
		utils.Log.Fatal("redis init failed", "err", err)
	}
	defer rdb.Close()

	//-------------------------------------------------------
	// 2. 初始化 Gin + CORS
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/variants", func(c *gin.Context) {
		infos := make([]variant.Info, 0, len(variant.All()))
		for _, v := range variant.All() {
			infos = append(infos, v.Info())
		}
		c.JSON(http.StatusOK, infos)
	})

	//-------------------------------------------------------
	// 3. 初始化 Hub（必须最先启动）
	//-------------------------------------------------------
	hub := websocket.NewHub()
	defer hub.Close()

	//-------------------------------------------------------
	// 4. 初始化 GameManager（用来启动 Engine）
	//-------------------------------------------------------
	gameMgr := manager.NewGameManager(hub)
	gameMgr.Seed = config.C.Game.Seed
	hub.OnIncoming = gameMgr.HandlePlayerMessage
	go hub.Run()

	//-------------------------------------------------------
	// 5. 初始化匹配系统 Matchmaker
	//-------------------------------------------------------
	repo := matchmaker.NewRedisRepo(rdb)
	svc := matchmaker.NewService(repo, config.C.Match.PlayerTTL, hub)

	// 成桌回调：让 GameManager 接手并启动 Engine
	svc.OnRoomReady = func(room *matchmaker.Room) {
		if err := gameMgr.StartRoom(room); err != nil {
			utils.Log.Error("start room failed", "room", room.ID, "err", err)
			_ = svc.Release(context.Background(), room)
		}
	}
	// 房间结束：玩家可以重新匹配
	gameMgr.OnRoomClosed = func(room *matchmaker.Room) {
		if err := svc.Release(context.Background(), room); err != nil {
			utils.Log.Warn("release room failed", "room", room.ID, "err", err)
		}
	}

	secret := []byte(config.C.JWT.Secret)

	authGroup := r.Group("/auth")
	{
		ah := auth.NewHandler(secret, config.C.JWT.TTL)
		authGroup.GET("/nonce", ah.GetNonce)
		authGroup.POST("/nonce", ah.PostNonce)
		authGroup.POST("/login", ah.Login)
	}

	//-------------------------------------------------------
	// 6. WebSocket 入口 + 匹配路由（需 JWT）
	//-------------------------------------------------------
	protected := r.Group("/", middleware.JwtAuthMiddleware(secret))
	{
		protected.GET("/ws", websocket.ServeWS(hub))

		mh := matchmaker.NewHandler(svc)
		protected.POST("/match/join", mh.Join)
		protected.POST("/match/cancel", mh.Cancel)
	}

	//-------------------------------------------------------
	// 7. 启动服务器
	//-------------------------------------------------------
	utils.Log.Info("server running", "port", config.C.Server.Port)
	if err := r.Run(config.C.Server.Port); err != nil {
		utils.Log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
