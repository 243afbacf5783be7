package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	accountapp "farm_market_service/internal/account/app"
	accountrepo "farm_market_service/internal/account/repository"
	"farm_market_service/internal/api/handlers"
	"farm_market_service/internal/api/router"
	chatapp "farm_market_service/internal/chat/app"
	chatrepo "farm_market_service/internal/chat/repository"
	notifapp "farm_market_service/internal/notification/app"
	notifrepo "farm_market_service/internal/notification/repository"
	supportapp "farm_market_service/internal/support/app"
	supportrepo "farm_market_service/internal/support/repository"
	"farm_market_service/pkg/config"
	"farm_market_service/pkg/database"
	"farm_market_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.MarketService, config.EnvConfig.MarketServiceLogPath)
	cfg := config.LoadConfig[config.Market](config.EnvConfig.MarketService, config.EnvConfig.MarketServiceYAMLPath)

	// 2. 建立 Mongo 連線 (存對話與通知)
	ctx := context.Background()
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.Mongo.RetryCount,
			RetryInterval: time.Duration(cfg.Mongo.RetryInterval),
		},
		cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	// 3. 建立 Redis 連線 (Pub/Sub)
	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	// 4. 建立 PostgreSQL 連線 (帳號用 pgx，工單用 gorm)
	pgURI := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pgConn := database.Connection{
		ConnectStr:    pgURI,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	}
	pgPool, err := database.NewDatabaseConnection(pgConn)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect postgreSQL err : %v", err))
	}
	defer pgPool.Close()

	gormDB, err := database.NewPGConnection(pgConn)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("open gorm postgreSQL err : %v", err))
	}

	// 5. 建立 RabbitMQ 連線 (後台通知 queue)
	rabbitURI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.IP, cfg.RabbitMQ.Port)
	rabbitConn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    rabbitURI,
		RetryCount:    cfg.RabbitMQ.RetryCount,
		RetryInterval: time.Duration(cfg.RabbitMQ.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect rabbitMQ err : %v", err))
	}
	defer rabbitConn.Close()

	rabbitChannel, err := database.GetRabbitMQChannelWithRetry(rabbitConn, cfg.RabbitMQ.RetryCount, time.Duration(cfg.RabbitMQ.RetryInterval))
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("get rabbitMQ channel err : %v", err))
	}
	defer rabbitChannel.Close()

	// 6. 初始化 Repository
	convRepo := chatrepo.NewMongoConversationRepository(mongo.Database)
	historyRepo := chatrepo.NewMongoHistoryRepository(mongo.Database)
	pub := chatrepo.NewRedisPubSub(redisClient)
	notificationRepo := notifrepo.NewNotificationRepository(mongo.Database)
	accountRepo := accountrepo.NewAccountRepository(pgPool)
	ticketRepo := supportrepo.NewTicketRepo(gormDB)
	if err := ticketRepo.AutoMigrate(); err != nil {
		logger.Log.Fatal(fmt.Sprintf("ticket auto migrate err : %v", err))
	}

	jobQueue, err := notifrepo.NewJobQueue(database.NewRabbitRepository(rabbitChannel))
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("declare notification queue err : %v", err))
	}

	// 7. 初始化 UseCases
	conversationUC := chatapp.NewConversationUseCase(convRepo, historyRepo, pub, jobQueue)
	accountUC := accountapp.NewAccountUseCase(accountRepo)
	ticketUC := supportapp.NewTicketUseCase(ticketRepo, jobQueue)
	notificationUC := notifapp.NewNotificationUseCase(notificationRepo)

	// 8. 啟動 Fiber
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.MarketServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 将日志输出到文件
	}))

	// 注册路由
	router.RegisterRoutes(r,
		handlers.NewChatHandler(conversationUC, accountUC),
		handlers.NewAdminChatHandler(conversationUC),
		handlers.NewSupportHandler(ticketUC),
		handlers.NewNotificationHandler(notificationUC),
		handlers.NewAccountHandler(accountUC),
		chatapp.NewChatWebsocketHandler(conversationUC, pub),
	)

	// Listen
	port := ":" + cfg.Port
	log.Printf("Market Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
