package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deeplink-generator/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormStore 基于 gorm 的存储实现
type gormStore struct {
	db *gorm.DB
}

// NewGormStore 创建基于 gorm 的存储
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Insert 条件插入：三元组已存在时不写入并返回 ErrDuplicate
func (s *gormStore) Insert(ctx context.Context, record *model.LinkRecord) (uint, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrDuplicate
	}
	return record.ID, nil
}

func (s *gormStore) Update(ctx context.Context, id uint, fields Fields) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.LinkRecord
		if err := tx.Select("log_id").First(&existing, "log_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Model(&model.LinkRecord{}).Where("log_id = ?", id).Updates(map[string]any{
			"name":               fields.AuthorName,
			"product":            fields.Product,
			"status":             fields.Status,
			"content_title":      fields.ContentTitle,
			"source":             fields.Source,
			"input_url":          fields.InputURL,
			"generated_deeplink": fields.GeneratedDeeplink,
			"tracking_url":       fields.TrackingURL,
			"last_updated_date":  time.Now(),
		}).Error
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case isDuplicate(err):
		return ErrDuplicate
	default:
		return fmt.Errorf("update record %d: %w", id, err)
	}
}

func (s *gormStore) Get(ctx context.Context, id uint) (*model.LinkRecord, error) {
	var record model.LinkRecord
	if err := s.db.WithContext(ctx).First(&record, "log_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get record %d: %w", id, err)
	}
	return &record, nil
}

func (s *gormStore) ListAll(ctx context.Context) ([]model.LinkRecord, error) {
	var records []model.LinkRecord
	if err := s.db.WithContext(ctx).Order("log_id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (s *gormStore) ListByAuthor(ctx context.Context, author string) ([]model.LinkRecord, error) {
	var records []model.LinkRecord
	if err := s.db.WithContext(ctx).Where("name = ?", author).Order("log_id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list records of %q: %w", author, err)
	}
	return records, nil
}

func (s *gormStore) Exists(ctx context.Context, inputURL, contentTitle string, source model.Source) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.LinkRecord{}).
		Where("input_url = ? AND content_title = ? AND source = ?", inputURL, contentTitle, source).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check record existence: %w", err)
	}
	return count > 0, nil
}
