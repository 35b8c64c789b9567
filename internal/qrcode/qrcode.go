package qrcode

import (
	"errors"
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent 内容为空时无法生成二维码
	ErrEmptyContent = errors.New("qrcode: empty content")
	// ErrUnencodable 内容超出二维码容量
	ErrUnencodable = errors.New("qrcode: content cannot be encoded")
)

// FileName 下载时使用的文件名
const FileName = "qr_code.png"

// Encoder 把追踪链接渲染为 PNG 二维码
type Encoder struct {
	level      goqrcode.RecoveryLevel
	moduleSize int
	noBorder   bool
}

// NewEncoder 创建编码器，moduleSize 为每个模块的像素数，<=0 时取 10
func NewEncoder(moduleSize int, noBorder bool) *Encoder {
	if moduleSize <= 0 {
		moduleSize = 10
	}
	return &Encoder{
		level:      goqrcode.Low,
		moduleSize: moduleSize,
		noBorder:   noBorder,
	}
}

// PNG 生成黑白 PNG 图片
func (e *Encoder) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	q, err := goqrcode.New(content, e.level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnencodable, err)
	}
	q.DisableBorder = e.noBorder
	// 负数尺寸表示每个模块的像素数，图片大小随版本变化
	data, err := q.PNG(-e.moduleSize)
	if err != nil {
		return nil, fmt.Errorf("生成二维码图片失败: %w", err)
	}
	return data, nil
}
