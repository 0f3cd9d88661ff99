package main

import (
	"fmt"

	"github.com/bifpcl/internal/config"
	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/handler"
	"github.com/bifpcl/internal/router"
	"github.com/bifpcl/internal/service"
	"github.com/bifpcl/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := config.InitLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(db.Options{
		SQLitePath:  cfg.DatabasePath,
		DatabaseURL: cfg.DatabaseURL,
		LogLevel:    gormLogLevel(log.GetLevel()),
	}); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}

	created, err := db.EnsureUser(db.DB, cfg.SuperRootUserName, cfg.SuperRootPassword)
	if err != nil {
		log.WithError(err).Fatal("failed to ensure admin user")
	}
	if created {
		log.WithField("username", cfg.SuperRootUserName).Info("created admin user")
	}

	uploads, routerOpts, err := buildStorage(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to configure upload storage")
	}
	routerOpts.SessionSecret = cfg.SessionSecret
	routerOpts.Logger = log

	api := handler.NewAPI(db.DB, handler.Options{
		Uploads: uploads,
		Chatbot: service.ChatbotConfig{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.BaseURL,
		},
		PageSize: cfg.PageSize,
	})

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, routerOpts)
	log.WithFields(logrus.Fields{
		"addr":    cfg.ListenAddr,
		"storage": cfg.StorageDriver,
	}).Info("starting server")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.WithError(err).Fatal("failed to run server")
	}
}

// buildStorage selects the upload backend. Local uploads are also served
// by the router; S3 objects are served by the bucket.
func buildStorage(cfg config.AppConfig) (*storage.Storage, router.Options, error) {
	switch cfg.StorageDriver {
	case "local":
		backend := storage.NewLocal(cfg.UploadDir, cfg.UploadURLPath)
		return storage.New(backend, storage.DefaultMaxSize), router.Options{
			UploadDir:     backend.Dir(),
			UploadURLPath: backend.URLPath(),
		}, nil
	case "s3":
		backend, err := storage.NewS3(storage.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PublicURL: cfg.S3.PublicURL,
			PathStyle: cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, router.Options{}, err
		}
		return storage.New(backend, storage.DefaultMaxSize), router.Options{}, nil
	default:
		return nil, router.Options{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func gormLogLevel(level logrus.Level) logger.LogLevel {
	switch {
	case level >= logrus.DebugLevel:
		return logger.Info
	case level >= logrus.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}
