package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"staywise/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Open 根据 DATABASE_URL 选择驱动：postgres:// 或 key=value DSN 使用 Postgres，
// sqlite://path 或其余情况视为 SQLite 文件路径
func Open(databaseURL string, silent bool) (*gorm.DB, error) {
	dialector, err := dialectorFor(databaseURL)
	if err != nil {
		return nil, err
	}

	cfg := &gorm.Config{
		TranslateError: true, // 唯一约束冲突 -> gorm.ErrDuplicatedKey
	}
	if silent {
		cfg.Logger = gormLogger.Default.LogMode(gormLogger.Silent)
	}

	conn, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if conn.Dialector.Name() == "sqlite" {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		// SQLite 单写者
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate 建表及 fingerprint / slug 唯一索引、published_at 索引
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.Report{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func dialectorFor(databaseURL string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"),
		strings.Contains(databaseURL, "host="):
		return postgres.Open(databaseURL), nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		return sqlite.Open(path), ensureDir(path)
	case strings.HasPrefix(databaseURL, "file:"):
		return sqlite.Open(databaseURL), nil
	case databaseURL == "":
		return nil, fmt.Errorf("empty DATABASE_URL")
	}
	return sqlite.Open(databaseURL), ensureDir(databaseURL)
}

func ensureDir(path string) error {
	if path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return nil
}
