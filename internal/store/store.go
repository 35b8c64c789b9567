package store

import (
	"context"
	"errors"
	"strings"

	"deeplink-generator/internal/model"

	"gorm.io/gorm"
)

var (
	// ErrDuplicate 相同的 (链接, 标题, 渠道) 已存在
	ErrDuplicate = errors.New("record with the same url, title and source already exists")
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
)

// Fields 更新时写入的字段
type Fields struct {
	AuthorName        string
	Product           string
	Status            model.Status
	ContentTitle      string
	Source            model.Source
	InputURL          string
	GeneratedDeeplink string
	TrackingURL       string
}

// Store 深链接记录的存储接口
type Store interface {
	Insert(ctx context.Context, record *model.LinkRecord) (uint, error)
	Update(ctx context.Context, id uint, fields Fields) error
	Get(ctx context.Context, id uint) (*model.LinkRecord, error)
	ListAll(ctx context.Context) ([]model.LinkRecord, error)
	ListByAuthor(ctx context.Context, author string) ([]model.LinkRecord, error)
	Exists(ctx context.Context, inputURL, contentTitle string, source model.Source) (bool, error)
}

// isDuplicate 判断是否为唯一索引冲突
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
