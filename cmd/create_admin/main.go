package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	accountapp "farm_market_service/internal/account/app"
	accountrepo "farm_market_service/internal/account/repository"
	"farm_market_service/pkg/config"
	"farm_market_service/pkg/database"
	"farm_market_service/pkg/logger"
)

// 建立後台管理員帳號，同 email 已存在時直接結束
func main() {
	name := flag.String("name", "Administrator", "admin display name")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("用法: create_admin -email <email> -password <password> [-name <name>]")
	}

	logger.Log = logger.Initialize(config.EnvConfig.MarketService, config.EnvConfig.MarketServiceLogPath)
	cfg := config.LoadConfig[config.Market](config.EnvConfig.MarketService, config.EnvConfig.MarketServiceYAMLPath)

	pgURI := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pgPool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    pgURI,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		log.Fatalf("連線 postgreSQL 失敗: %v", err)
	}
	defer pgPool.Close()

	uc := accountapp.NewAccountUseCase(accountrepo.NewAccountRepository(pgPool))

	account, created, err := uc.EnsureAdmin(context.Background(), *name, *email, *password)
	if err != nil {
		log.Fatalf("建立管理員失敗: %v", err)
	}
	if !created {
		log.Printf("管理員已存在: %s (%s)", account.Email, account.AccountID)
		return
	}
	log.Printf("管理員建立成功: %s (%s)", account.Email, account.AccountID)
}
