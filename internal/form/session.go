package form

import (
	"strings"

	"deeplink-generator/internal/model"
)

// Mode 表单模式
type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// DefaultContentTitle 新建表单时的默认标题
const DefaultContentTitle = "My Awesome Post"

// Level 提示信息级别
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message 展示给用户的提示
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Fields 表单字段
type Fields struct {
	InputURL     string       `form:"input_url" json:"input_url"`
	AuthorName   string       `form:"author_name" json:"author_name"`
	Product      string       `form:"product" json:"product"`
	ContentTitle string       `form:"content_title" json:"content_title"`
	Source       model.Source `form:"source" json:"source"`
	Status       model.Status `form:"status" json:"status"`
}

// Result 提交后生成的链接和二维码
type Result struct {
	RecordID    uint   `json:"record_id,omitempty"`
	InputURL    string `json:"input_url"`
	Product     string `json:"product"`
	Deeplink    string `json:"generated_deeplink"`
	TrackingURL string `json:"tracking_url"`
	QRCode      []byte `json:"-"`
	Exists      bool   `json:"exists"`
}

// Session 单个用户一次表单交互的全部状态
type Session struct {
	Mode      Mode              `json:"mode"`
	Author    string            `json:"author"`
	RecordID  uint              `json:"record_id,omitempty"`
	Fields    Fields            `json:"fields"`
	Submitted bool              `json:"submitted"`
	Result    *Result           `json:"result,omitempty"`
	Message   *Message          `json:"message,omitempty"`
	Record    *model.LinkRecord `json:"record,omitempty"`
}

// fillAuthor 作者名为空时使用当前身份，避免记录失去归属
func (s *Session) fillAuthor() {
	if strings.TrimSpace(s.Fields.AuthorName) == "" {
		s.Fields.AuthorName = s.Author
	}
}

func (s *Session) succeed(text string) {
	s.Message = &Message{Level: LevelSuccess, Text: text}
}

func (s *Session) warn(text string) {
	s.Message = &Message{Level: LevelWarning, Text: text}
}

func (s *Session) fail(text string) {
	s.Message = &Message{Level: LevelError, Text: text}
}

// Failed 是否以错误结束
func (s *Session) Failed() bool {
	return s.Message != nil && s.Message.Level == LevelError
}

// Warned 是否以警告结束
func (s *Session) Warned() bool {
	return s.Message != nil && s.Message.Level == LevelWarning
}
