package database

import (
	"fmt"

	"deeplink-generator/internal/config"
	"deeplink-generator/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 按配置选择驱动连接数据库并迁移表结构
func Open(cfg config.DB, debug bool) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if debug {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "mysql":
		db, err = InitMySQL(cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.Charset, gormConfig)
	case "sqlite":
		db, err = InitSQLite(cfg.Path, gormConfig)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		_ = Close(db)
		return nil, err
	}
	return db, nil
}

// Migrate 自动迁移表结构
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.LinkRecord{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// Close 关闭底层连接
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
