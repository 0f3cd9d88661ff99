package main

import (
	"flag"
	"fmt"

	"github.com/bifpcl/internal/config"
	"github.com/bifpcl/internal/db"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := config.InitLogger(cfg.LogLevel)

	username := flag.String("username", cfg.SuperRootUserName, "admin username")
	password := flag.String("password", cfg.SuperRootPassword, "admin password")
	flag.Parse()

	if *username == "" {
		*username = "admin"
	}
	if *password == "" {
		log.Fatal("password is required: pass -password or set SUPER_ROOT_PASSWORD")
	}

	// 初始化数据库
	if err := db.Init(db.Options{SQLitePath: cfg.DatabasePath, DatabaseURL: cfg.DatabaseURL}); err != nil {
		log.WithError(err).Fatal("数据库初始化失败")
	}

	created, err := db.EnsureUser(db.DB, *username, *password)
	if err != nil {
		log.WithError(err).Fatal("创建用户失败")
	}
	if !created {
		fmt.Printf("用户 %s 已存在，无需初始化\n", *username)
		return
	}
	fmt.Printf("管理员用户创建成功: %s\n", *username)
}
