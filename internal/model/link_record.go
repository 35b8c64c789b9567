package model

import (
	"time"
)

// LinkRecord 深链接生成记录
//
// (input_url, content_title, source) 三元组通过唯一索引保证不重复。
type LinkRecord struct {
	ID                uint      `gorm:"column:log_id;primarykey" json:"id"`
	AuthorName        string    `gorm:"column:name;size:255;index" json:"author_name"`
	Product           string    `gorm:"size:255" json:"product"`
	Status            Status    `gorm:"size:32;not null" json:"status"`
	ContentTitle      string    `gorm:"size:200;not null;uniqueIndex:idx_link_identity,priority:2" json:"content_title"`
	Source            Source    `gorm:"size:32;not null;uniqueIndex:idx_link_identity,priority:3" json:"source"`
	InputURL          string    `gorm:"size:500;not null;uniqueIndex:idx_link_identity,priority:1" json:"input_url"`
	GeneratedDeeplink string    `gorm:"type:text" json:"generated_deeplink"`
	TrackingURL       string    `gorm:"type:text" json:"tracking_url"`
	CreatedAt         time.Time `gorm:"column:creation_date" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:last_updated_date" json:"updated_at"`
}

// TableName 指定表名
func (LinkRecord) TableName() string {
	return "deeplink_data_log"
}

// DisplayLabel 编辑模式下拉框中展示的文本
func (r LinkRecord) DisplayLabel() string {
	url := r.InputURL
	if url == "" {
		url = "No URL"
	}
	return itoa(r.ID) + " - " + url
}
