package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"deeplink-generator/internal/form"
	"deeplink-generator/internal/middleware"
	"deeplink-generator/internal/model"

	"github.com/gin-gonic/gin"
)

// pageData 表单页面渲染数据
type pageData struct {
	Session    *form.Session
	Records    []model.LinkRecord
	Sources    []model.Source
	Statuses   []model.Status
	HasStore   bool
	QRCode     template.URL
	QRDownload string
}

func (h *LinkHandler) render(c *gin.Context, status int, s *form.Session, records []model.LinkRecord) {
	data := pageData{
		Session:  s,
		Records:  records,
		Sources:  model.Sources,
		Statuses: model.Statuses,
		HasStore: h.controller.HasStore(),
	}
	if s.Result != nil {
		data.QRCode = qrDataURI(s.Result.QRCode)
		data.QRDownload = qrCodeURL(s.Result.TrackingURL)
	}
	c.HTML(status, "index.html", data)
}

// IndexPage 新建模式
func (h *LinkHandler) IndexPage(c *gin.Context) {
	h.render(c, http.StatusOK, h.controller.NewAddSession(middleware.Author(c)), nil)
}

// SubmitForm 提交新建表单
func (h *LinkHandler) SubmitForm(c *gin.Context) {
	s := h.controller.NewAddSession(middleware.Author(c))
	if err := c.ShouldBind(&s.Fields); err != nil {
		s.Message = &form.Message{Level: form.LevelError, Text: err.Error()}
		h.render(c, http.StatusBadRequest, s, nil)
		return
	}

	if err := h.controller.Submit(c.Request.Context(), s); err != nil {
		s.Message = &form.Message{Level: form.LevelError, Text: err.Error()}
		h.render(c, statusOf(err), s, nil)
		return
	}
	h.render(c, sessionStatus(s), s, nil)
}

// ExampleForm "Use Example" 按钮：保留其他字段，替换链接
func (h *LinkHandler) ExampleForm(c *gin.Context) {
	s := h.controller.NewAddSession(middleware.Author(c))
	_ = c.ShouldBind(&s.Fields)
	h.controller.UseExample(s)
	h.render(c, http.StatusOK, s, nil)
}

// EditPage 编辑模式，未指定 id 时选中第一条记录
func (h *LinkHandler) EditPage(c *gin.Context) {
	author := middleware.Author(c)
	empty := &form.Session{Mode: form.ModeEdit, Author: author}

	records, err := h.controller.EditableRecords(c.Request.Context(), author)
	if err != nil {
		empty.Message = &form.Message{Level: form.LevelError, Text: err.Error()}
		h.render(c, statusOf(err), empty, nil)
		return
	}
	if len(records) == 0 {
		empty.Message = form.NoRecordsMessage()
		h.render(c, http.StatusOK, empty, nil)
		return
	}

	id := records[0].ID
	if raw := c.Query("id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			empty.Message = &form.Message{Level: form.LevelError, Text: "无效的记录 ID"}
			h.render(c, http.StatusBadRequest, empty, records)
			return
		}
		id = uint(parsed)
	}

	s, err := h.controller.LoadForEdit(c.Request.Context(), author, id)
	if err != nil {
		empty.Message = &form.Message{Level: form.LevelError, Text: err.Error()}
		h.render(c, statusOf(err), empty, records)
		return
	}
	h.render(c, http.StatusOK, s, records)
}

// UpdateForm 提交编辑表单
func (h *LinkHandler) UpdateForm(c *gin.Context) {
	author := middleware.Author(c)
	s := &form.Session{Mode: form.ModeEdit, Author: author}

	id, err := strconv.ParseUint(c.PostForm("record_id"), 10, 64)
	if err == nil {
		s.RecordID = uint(id)
		// 表单中缺少的字段保留已保存的值
		var loaded *form.Session
		if loaded, err = h.controller.LoadForEdit(c.Request.Context(), author, s.RecordID); err == nil {
			s = loaded
			err = c.ShouldBind(&s.Fields)
		}
	}
	if err == nil {
		err = h.controller.Update(c.Request.Context(), s)
	}

	records, listErr := h.controller.EditableRecords(c.Request.Context(), author)
	if listErr != nil && !errors.Is(listErr, form.ErrNoStore) {
		h.logger.Warnf("读取可编辑记录失败: %v", listErr)
	}
	if err != nil {
		s.Message = &form.Message{Level: form.LevelError, Text: err.Error()}
		status := statusOf(err)
		if errors.Is(err, strconv.ErrSyntax) || errors.Is(err, strconv.ErrRange) {
			status = http.StatusBadRequest
		}
		h.render(c, status, s, records)
		return
	}

	h.render(c, sessionStatus(s), s, records)
}

// sessionStatus 存储失败为 500，记录重复为 409
func sessionStatus(s *form.Session) int {
	switch {
	case s.Failed():
		return http.StatusInternalServerError
	case s.Warned():
		return http.StatusConflict
	default:
		return http.StatusOK
	}
}
