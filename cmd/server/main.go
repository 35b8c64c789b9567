package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"deeplink-generator/internal/config"
	"deeplink-generator/internal/deeplink"
	"deeplink-generator/internal/form"
	"deeplink-generator/internal/handler"
	"deeplink-generator/internal/middleware"
	"deeplink-generator/internal/qrcode"
	"deeplink-generator/internal/store"
	"deeplink-generator/pkg/database"
	"deeplink-generator/pkg/logger"
	"deeplink-generator/pkg/redis"

	_ "deeplink-generator/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Snowflake Deeplink Generator API
// @version 1.0
// @description 生成 Snowflake 控制台深链接、带 UTM 参数的追踪链接和二维码
// @host localhost:8080
// @BasePath /
func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("配置加载失败: %v", err))
	}

	if err := logger.InitLogger(logger.Options{
		Level:      cfg.Log.Level,
		Filename:   cfg.Log.Filename,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	}); err != nil {
		panic(fmt.Sprintf("日志初始化失败: %v", err))
	}
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zap.S()

	// 数据库不可用时仍然可以生成链接，只是不能保存和编辑
	var st store.Store
	db, err := database.Open(cfg.Database, cfg.App.Mode == "debug")
	if err != nil {
		sugaredLogger.Errorf("数据库初始化失败，记录将不会被保存: %v", err)
	} else {
		defer func() {
			if err := database.Close(db); err != nil {
				sugaredLogger.Errorf("关闭数据库连接失败: %v", err)
			}
		}()
		sugaredLogger.Infof("✅ 数据库连接成功 (%s)", cfg.Database.Driver)
		st = store.NewGormStore(db)
	}

	if st != nil && cfg.Cache.Host != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := redis.NewRedisClient(ctx, &redis.Options{
			Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
		})
		cancel()
		if err != nil {
			sugaredLogger.Warnf("缓存连接失败: %v", err)
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
				}
			}()
			ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
			st = store.NewCachedStore(st, redis.NewCache(rdb, cfg.Cache.Prefix), ttl, sugaredLogger)
			sugaredLogger.Info("✅ 缓存连接成功")
		}
	}

	controller := form.NewController(
		st,
		qrcode.NewEncoder(cfg.QRCode.ModuleSize, cfg.QRCode.NoBorder),
		deeplink.New(cfg.Deeplink.Host),
		sugaredLogger,
	)
	linkHandler := handler.NewLinkHandler(controller, sugaredLogger)

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))
	router.Use(middleware.RateLimit(&cfg.RateLimit))
	router.Use(middleware.Identity(cfg.Identity.Header, cfg.Identity.DefaultName))

	router.LoadHTMLGlob(cfg.Server.Templates)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(router, linkHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
	sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugaredLogger.Fatalf("服务启动失败: %v", err)
	}
}

func registerRoutes(router *gin.Engine, linkHandler *handler.LinkHandler) {
	router.GET("/", linkHandler.IndexPage)
	router.POST("/", linkHandler.SubmitForm)
	router.POST("/example", linkHandler.ExampleForm)
	router.GET("/edit", linkHandler.EditPage)
	router.POST("/edit", linkHandler.UpdateForm)
	router.GET("/health", linkHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/me", linkHandler.CurrentAuthor)
		api.POST("/links", linkHandler.CreateLink)
		api.GET("/links", linkHandler.ListLinks)
		api.GET("/links/:id", linkHandler.GetLink)
		api.PUT("/links/:id", linkHandler.UpdateLink)
		api.GET("/links/:id/qrcode", linkHandler.RecordQRCode)
		api.POST("/preview", linkHandler.Preview)
		api.GET("/example", linkHandler.Example)
		api.GET("/qrcode", linkHandler.QRCode)
	}
}
