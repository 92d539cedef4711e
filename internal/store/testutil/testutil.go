package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"staywise/internal/db"

	"gorm.io/gorm"
)

var seq atomic.Int64

// DB 为每个测试打开独立的内存 SQLite 库并完成迁移
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	conn, err := db.Open(dsn, true)
	if err != nil {
		tb.Fatalf("failed to init test db: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
