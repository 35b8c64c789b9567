package store

import (
	"context"
	"time"

	"deeplink-generator/internal/model"

	"go.uber.org/zap"
)

const recordsKey = "records"

// Cache 缓存记录列表所需的能力，由 pkg/redis.Cache 实现
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// cachedStore 缓存全量记录列表，写入后失效
type cachedStore struct {
	Store
	cache  Cache
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewCachedStore 在 inner 外包一层列表缓存，缓存异常只记录日志
func NewCachedStore(inner Store, cache Cache, ttl time.Duration, logger *zap.SugaredLogger) Store {
	return &cachedStore{
		Store:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("record_cache"),
	}
}

func (s *cachedStore) ListAll(ctx context.Context) ([]model.LinkRecord, error) {
	var records []model.LinkRecord
	hit, err := s.cache.GetJSON(ctx, recordsKey, &records)
	if err != nil {
		s.logger.Warnf("读取记录缓存失败: %v", err)
	}
	if hit {
		return records, nil
	}

	records, err = s.Store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, recordsKey, records, s.ttl); err != nil {
		s.logger.Warnf("写入记录缓存失败: %v", err)
	}
	return records, nil
}

// ListByAuthor 从缓存的全量列表中按作者过滤
func (s *cachedStore) ListByAuthor(ctx context.Context, author string) ([]model.LinkRecord, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var records []model.LinkRecord
	for _, r := range all {
		if r.AuthorName == author {
			records = append(records, r)
		}
	}
	return records, nil
}

func (s *cachedStore) Insert(ctx context.Context, record *model.LinkRecord) (uint, error) {
	id, err := s.Store.Insert(ctx, record)
	if err == nil {
		s.invalidate(ctx)
	}
	return id, err
}

func (s *cachedStore) Update(ctx context.Context, id uint, fields Fields) error {
	err := s.Store.Update(ctx, id, fields)
	if err == nil {
		s.invalidate(ctx)
	}
	return err
}

func (s *cachedStore) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, recordsKey); err != nil {
		s.logger.Warnf("清除记录缓存失败: %v", err)
	}
}
