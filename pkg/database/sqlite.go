package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitSQLite 打开 SQLite 数据库，path 可以是文件路径或 file::memory: 形式的 DSN
func InitSQLite(path string, gormConfig *gorm.Config) (*gorm.DB, error) {
	connection, err := gorm.Open(sqlite.Open(path), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}
	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	// SQLite 同一时间只允许一个写连接
	sqlDB.SetMaxOpenConns(1)
	return connection, nil
}
