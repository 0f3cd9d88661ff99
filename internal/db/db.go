package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Options controls how Init opens the database.
type Options struct {
	// SQLitePath is used when DatabaseURL is empty. Defaults to bifpcl.db.
	SQLitePath string
	// DatabaseURL selects PostgreSQL when set.
	DatabaseURL string
	LogLevel    logger.LogLevel
}

// Init opens the configured database, stores it in DB and runs AutoMigrate.
func Init(opts Options) error {
	gdb, err := Open(opts)
	if err != nil {
		return err
	}
	if err := Migrate(gdb); err != nil {
		return err
	}
	DB = gdb
	return nil
}

// Open returns a gorm handle without migrating. TranslateError is enabled so
// unique index violations surface as gorm.ErrDuplicatedKey.
func Open(opts Options) (*gorm.DB, error) {
	level := opts.LogLevel
	if level == 0 {
		level = logger.Warn
	}
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	}

	if dsn := strings.TrimSpace(opts.DatabaseURL); dsn != "" {
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	path := strings.TrimSpace(opts.SQLitePath)
	if path == "" {
		path = "bifpcl.db"
	}
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}
	return gorm.Open(sqlite.Open(path), cfg)
}

// Migrate creates or updates the tables for every model.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(Models()...)
}

// Models lists every persisted model in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&CompanyInfo{},
		&SystemSetting{},
		&Project{},
		&Director{},
		&NewsArticle{},
		&Career{},
		&JobApplication{},
		&Tender{},
		&ContactInquiry{},
		&CSRInitiative{},
		&Notice{},
		&GalleryImage{},
	}
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
