package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"deeplink-generator/internal/deeplink"
	"deeplink-generator/internal/model"
	"deeplink-generator/internal/store"

	"go.uber.org/zap"
)

var (
	// ErrNoStore 没有配置存储时无法编辑
	ErrNoStore = errors.New("a record store is required to edit existing data")
	// ErrForbidden 只能编辑自己创建的记录
	ErrForbidden = errors.New("record belongs to another author")
	// ErrMissingURL 链接为空
	ErrMissingURL = errors.New("input url is required")
	// ErrInvalidSource 未知的推广渠道
	ErrInvalidSource = errors.New("unknown promotion source")
	// ErrInvalidStatus 未知的状态
	ErrInvalidStatus = errors.New("unknown status")
)

// 展示给用户的提示文本
const (
	msgSaved     = "✅ Link generation data saved successfully!"
	msgDuplicate = "⚠️ This combination of URL, Title, and Source already exists."
	msgNoRecords = "You have not created any links to edit."
)

// QREncoder 二维码生成
type QREncoder interface {
	PNG(content string) ([]byte, error)
}

// Controller 驱动新建和编辑两种表单流程
type Controller struct {
	store       store.Store
	qr          QREncoder
	transformer *deeplink.Transformer
	logger      *zap.SugaredLogger
}

// NewController 创建表单控制器，st 可以为 nil，此时提交不落库
func NewController(st store.Store, qr QREncoder, transformer *deeplink.Transformer, logger *zap.SugaredLogger) *Controller {
	if transformer == nil {
		transformer = deeplink.New(deeplink.DefaultHost)
	}
	return &Controller{
		store:       st,
		qr:          qr,
		transformer: transformer,
		logger:      logger.Named("form"),
	}
}

// HasStore 是否配置了存储
func (c *Controller) HasStore() bool {
	return c.store != nil
}

// NewAddSession 新建模式的初始状态
func (c *Controller) NewAddSession(author string) *Session {
	return &Session{
		Mode:   ModeAdd,
		Author: author,
		Fields: Fields{
			AuthorName:   author,
			ContentTitle: DefaultContentTitle,
			Source:       model.SourceQuickstart,
			Status:       model.StatusInProgress,
		},
	}
}

// UseExample 填入随机示例链接并清除上一次提交结果
func (c *Controller) UseExample(s *Session) {
	s.Fields.InputURL = deeplink.RandomExample()
	s.Fields.Product = c.transformer.InferProduct(s.Fields.InputURL)
	s.Submitted = false
	s.Result = nil
	s.Message = nil
}

// Validate 校验字段，空的渠道和状态使用默认值；链接按原样保存
func (c *Controller) Validate(f *Fields) error {
	if strings.TrimSpace(f.InputURL) == "" {
		return ErrMissingURL
	}
	if f.Source == "" {
		f.Source = model.SourceQuickstart
	}
	if !f.Source.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSource, f.Source)
	}
	if f.Status == "" {
		f.Status = model.StatusInProgress
	}
	if !f.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, f.Status)
	}
	if strings.TrimSpace(f.Product) == "" {
		f.Product = c.transformer.InferProduct(f.InputURL)
	}
	return nil
}

// derive 计算深链接和追踪链接
func (c *Controller) derive(f Fields) (string, string) {
	link := c.transformer.GenerateDeeplink(f.InputURL)
	return link, deeplink.GenerateTrackingURL(f.ContentTitle, link, string(f.Source))
}

// Preview 只计算结果，不落库
func (c *Controller) Preview(ctx context.Context, f Fields) (*Result, error) {
	if err := c.Validate(&f); err != nil {
		return nil, err
	}
	link, tracking := c.derive(f)
	result := &Result{InputURL: f.InputURL, Product: f.Product, Deeplink: link, TrackingURL: tracking}
	if c.store != nil {
		exists, err := c.store.Exists(ctx, f.InputURL, f.ContentTitle, f.Source)
		if err != nil {
			c.logger.Warnf("检查记录是否存在失败: %v", err)
		}
		result.Exists = exists
	}
	return result, nil
}

// Submit 生成链接、写入记录并渲染二维码
//
// 只有字段校验失败时返回 error，存储失败转换为 Session.Message。
func (c *Controller) Submit(ctx context.Context, s *Session) error {
	if err := c.Validate(&s.Fields); err != nil {
		return err
	}
	s.fillAuthor()
	s.Mode = ModeAdd
	s.Submitted = true
	s.Message = nil

	link, tracking := c.derive(s.Fields)
	s.Result = &Result{InputURL: s.Fields.InputURL, Product: s.Fields.Product, Deeplink: link, TrackingURL: tracking}

	if c.store != nil {
		record := &model.LinkRecord{
			AuthorName:        s.Fields.AuthorName,
			Product:           s.Fields.Product,
			Status:            s.Fields.Status,
			ContentTitle:      s.Fields.ContentTitle,
			Source:            s.Fields.Source,
			InputURL:          s.Fields.InputURL,
			GeneratedDeeplink: link,
			TrackingURL:       tracking,
		}
		id, err := c.store.Insert(ctx, record)
		switch {
		case errors.Is(err, store.ErrDuplicate):
			s.warn(msgDuplicate)
		case err != nil:
			c.logger.Errorf("写入记录失败: %v", err)
			s.fail(fmt.Sprintf("An error occurred while writing to the database: %v", err))
		default:
			s.Result.RecordID = id
			s.succeed(msgSaved)
		}
	}

	if tracking != "" {
		png, err := c.qr.PNG(tracking)
		if err != nil {
			c.logger.Errorf("生成二维码失败: %v", err)
			if s.Message == nil {
				s.fail(fmt.Sprintf("An error occurred while generating the QR code: %v", err))
			}
			return nil
		}
		s.Result.QRCode = png
	}
	return nil
}

// EditableRecords 当前作者创建的记录
func (c *Controller) EditableRecords(ctx context.Context, author string) ([]model.LinkRecord, error) {
	if c.store == nil {
		return nil, ErrNoStore
	}
	return c.store.ListByAuthor(ctx, author)
}

// NoRecordsMessage 作者没有可编辑记录时的提示
func NoRecordsMessage() *Message {
	return &Message{Level: LevelWarning, Text: msgNoRecords}
}

// LoadForEdit 读取记录并填充编辑表单
func (c *Controller) LoadForEdit(ctx context.Context, author string, id uint) (*Session, error) {
	record, err := c.ownedRecord(ctx, author, id)
	if err != nil {
		return nil, err
	}
	return &Session{
		Mode:     ModeEdit,
		Author:   author,
		RecordID: id,
		Record:   record,
		Fields: Fields{
			InputURL:     record.InputURL,
			AuthorName:   record.AuthorName,
			Product:      record.Product,
			ContentTitle: record.ContentTitle,
			Source:       record.Source,
			Status:       record.Status,
		},
	}, nil
}

// Update 保存编辑后的字段，派生链接随输入一起重新计算
func (c *Controller) Update(ctx context.Context, s *Session) error {
	if err := c.Validate(&s.Fields); err != nil {
		return err
	}
	if _, err := c.ownedRecord(ctx, s.Author, s.RecordID); err != nil {
		return err
	}
	s.fillAuthor()
	s.Mode = ModeEdit
	s.Message = nil

	link, tracking := c.derive(s.Fields)
	err := c.store.Update(ctx, s.RecordID, store.Fields{
		AuthorName:        s.Fields.AuthorName,
		Product:           s.Fields.Product,
		Status:            s.Fields.Status,
		ContentTitle:      s.Fields.ContentTitle,
		Source:            s.Fields.Source,
		InputURL:          s.Fields.InputURL,
		GeneratedDeeplink: link,
		TrackingURL:       tracking,
	})
	switch {
	case errors.Is(err, store.ErrDuplicate):
		s.warn(msgDuplicate)
		return nil
	case err != nil:
		c.logger.Errorf("更新记录 %d 失败: %v", s.RecordID, err)
		s.fail(fmt.Sprintf("An error occurred while updating the database: %v", err))
		return nil
	}

	s.Submitted = true
	s.Result = &Result{RecordID: s.RecordID, InputURL: s.Fields.InputURL, Product: s.Fields.Product, Deeplink: link, TrackingURL: tracking}
	s.succeed(fmt.Sprintf("✅ Record %d updated successfully!", s.RecordID))
	if record, err := c.store.Get(ctx, s.RecordID); err == nil {
		s.Record = record
	}
	return nil
}

// RecordQRCode 为作者自己的记录的追踪链接生成二维码
func (c *Controller) RecordQRCode(ctx context.Context, author string, id uint) ([]byte, error) {
	record, err := c.ownedRecord(ctx, author, id)
	if err != nil {
		return nil, err
	}
	return c.qr.PNG(record.TrackingURL)
}

// QRCode 为任意内容生成二维码
func (c *Controller) QRCode(content string) ([]byte, error) {
	return c.qr.PNG(content)
}

func (c *Controller) ownedRecord(ctx context.Context, author string, id uint) (*model.LinkRecord, error) {
	if c.store == nil {
		return nil, ErrNoStore
	}
	record, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.AuthorName != author {
		return nil, ErrForbidden
	}
	return record, nil
}
