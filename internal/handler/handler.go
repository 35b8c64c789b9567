package handler

import (
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"deeplink-generator/internal/form"
	"deeplink-generator/internal/middleware"
	"deeplink-generator/internal/model"
	"deeplink-generator/internal/qrcode"
	"deeplink-generator/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LinkHandler 处理器
type LinkHandler struct {
	controller *form.Controller
	logger     *zap.SugaredLogger
}

// NewLinkHandler 创建处理器实例
func NewLinkHandler(controller *form.Controller, logger *zap.SugaredLogger) *LinkHandler {
	return &LinkHandler{
		controller: controller,
		logger:     logger.Named("link_handler"),
	}
}

// HealthCheck 健康检查
func (h *LinkHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "store": h.controller.HasStore(), "timestamp": time.Now()})
}

// LinkResponse 新建或更新后的响应
type LinkResponse struct {
	Mode      form.Mode     `json:"mode"`
	RecordID  uint          `json:"record_id,omitempty"`
	Fields    form.Fields   `json:"fields"`
	Result    *form.Result  `json:"result,omitempty"`
	Message   *form.Message `json:"message,omitempty"`
	QRCodeURL string        `json:"qr_code_url,omitempty"`
}

// PreviewResponse 预览结果
type PreviewResponse struct {
	Product     string `json:"product"`
	Deeplink    string `json:"generated_deeplink"`
	TrackingURL string `json:"tracking_url"`
	Exists      bool   `json:"exists"`
}

// ExampleResponse 示例链接
type ExampleResponse struct {
	InputURL string `json:"input_url"`
	Product  string `json:"product"`
}

// CreateLink godoc
// @Summary 生成深链接并保存记录
// @Description 根据控制台链接生成深链接和追踪链接，写入记录
// @Tags Link
// @Accept  json
// @Produce  json
// @Param   link  body   form.Fields  true  "表单字段"
// @Success 201 {object} LinkResponse "保存成功"
// @Success 200 {object} LinkResponse "未配置存储，仅生成链接"
// @Failure 400 {object} map[string]string "请求无效"
// @Failure 409 {object} LinkResponse "记录已存在"
// @Failure 500 {object} LinkResponse "存储失败"
// @Router /api/links [post]
func (h *LinkHandler) CreateLink(c *gin.Context) {
	s := h.controller.NewAddSession(middleware.Author(c))
	if err := c.ShouldBindJSON(&s.Fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	if err := h.controller.Submit(c.Request.Context(), s); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	switch {
	case s.Failed():
		status = http.StatusInternalServerError
	case s.Warned():
		status = http.StatusConflict
	case s.Result.RecordID != 0:
		status = http.StatusCreated
	}
	c.JSON(status, newLinkResponse(s))
}

// ListLinks godoc
// @Summary 当前作者的记录
// @Tags Link
// @Produce  json
// @Success 200 {array} model.LinkRecord "记录列表"
// @Failure 503 {object} map[string]string "未配置存储"
// @Router /api/links [get]
func (h *LinkHandler) ListLinks(c *gin.Context) {
	records, err := h.controller.EditableRecords(c.Request.Context(), middleware.Author(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if records == nil {
		records = []model.LinkRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// GetLink godoc
// @Summary 读取一条自己的记录
// @Tags Link
// @Produce  json
// @Param   id  path  int  true  "记录 ID"
// @Success 200 {object} model.LinkRecord
// @Failure 403 {object} map[string]string "不是自己的记录"
// @Failure 404 {object} map[string]string "记录不存在"
// @Router /api/links/{id} [get]
func (h *LinkHandler) GetLink(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	s, err := h.controller.LoadForEdit(c.Request.Context(), middleware.Author(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Record)
}

// UpdateLink godoc
// @Summary 更新一条自己的记录
// @Description 请求体中未出现的字段保留原值，派生的深链接和追踪链接随输入重新计算
// @Tags Link
// @Accept  json
// @Produce  json
// @Param   id    path  int          true  "记录 ID"
// @Param   link  body  form.Fields  true  "表单字段"
// @Success 200 {object} LinkResponse
// @Failure 400 {object} map[string]string "请求无效"
// @Failure 403 {object} map[string]string "不是自己的记录"
// @Failure 404 {object} map[string]string "记录不存在"
// @Failure 409 {object} LinkResponse "与其他记录冲突"
// @Router /api/links/{id} [put]
func (h *LinkHandler) UpdateLink(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	// 先载入已保存的字段，请求体只覆盖出现的字段
	s, err := h.controller.LoadForEdit(c.Request.Context(), middleware.Author(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := c.ShouldBindJSON(&s.Fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	if err := h.controller.Update(c.Request.Context(), s); err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusOK
	switch {
	case s.Failed():
		status = http.StatusInternalServerError
	case s.Warned():
		status = http.StatusConflict
	}
	c.JSON(status, newLinkResponse(s))
}

// Preview godoc
// @Summary 预览生成结果
// @Description 只计算深链接和追踪链接，并检查记录是否已存在
// @Tags Link
// @Accept  json
// @Produce  json
// @Param   link  body  form.Fields  true  "表单字段"
// @Success 200 {object} PreviewResponse
// @Failure 400 {object} map[string]string "请求无效"
// @Router /api/preview [post]
func (h *LinkHandler) Preview(c *gin.Context) {
	var fields form.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}
	if fields.ContentTitle == "" {
		fields.ContentTitle = form.DefaultContentTitle
	}
	result, err := h.controller.Preview(c.Request.Context(), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PreviewResponse{
		Product:     result.Product,
		Deeplink:    result.Deeplink,
		TrackingURL: result.TrackingURL,
		Exists:      result.Exists,
	})
}

// Example godoc
// @Summary 随机示例链接
// @Tags Link
// @Produce  json
// @Success 200 {object} ExampleResponse
// @Router /api/example [get]
func (h *LinkHandler) Example(c *gin.Context) {
	s := h.controller.NewAddSession(middleware.Author(c))
	h.controller.UseExample(s)
	c.JSON(http.StatusOK, ExampleResponse{InputURL: s.Fields.InputURL, Product: s.Fields.Product})
}

// RecordQRCode godoc
// @Summary 下载记录追踪链接的二维码
// @Tags QRCode
// @Produce  png
// @Param   id  path  int  true  "记录 ID"
// @Success 200 {file} file "PNG 图片"
// @Failure 400 {object} map[string]string "记录没有追踪链接"
// @Failure 403 {object} map[string]string "不是自己的记录"
// @Failure 404 {object} map[string]string "记录不存在"
// @Router /api/links/{id}/qrcode [get]
func (h *LinkHandler) RecordQRCode(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	png, err := h.controller.RecordQRCode(c.Request.Context(), middleware.Author(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	servePNG(c, png)
}

// QRCode godoc
// @Summary 为任意链接生成二维码
// @Tags QRCode
// @Produce  png
// @Param   url  query  string  true  "二维码内容"
// @Success 200 {file} file "PNG 图片"
// @Failure 400 {object} map[string]string "内容为空或过长"
// @Router /api/qrcode [get]
func (h *LinkHandler) QRCode(c *gin.Context) {
	png, err := h.controller.QRCode(c.Query("url"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	servePNG(c, png)
}

func newLinkResponse(s *form.Session) LinkResponse {
	resp := LinkResponse{
		Mode:     s.Mode,
		RecordID: s.RecordID,
		Fields:   s.Fields,
		Result:   s.Result,
		Message:  s.Message,
	}
	if s.Result != nil {
		resp.RecordID = s.Result.RecordID
		resp.QRCodeURL = qrCodeURL(s.Result.TrackingURL)
	}
	return resp
}

// qrCodeURL 下载二维码的地址，追踪链接为空时返回空
func qrCodeURL(tracking string) string {
	if tracking == "" {
		return ""
	}
	return "/api/qrcode?url=" + url.QueryEscape(tracking)
}

// qrDataURI 页面内嵌展示用
func qrDataURI(png []byte) template.URL {
	if len(png) == 0 {
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}

func servePNG(c *gin.Context, png []byte) {
	c.Header("Content-Disposition", "attachment; filename="+qrcode.FileName)
	c.Data(http.StatusOK, "image/png", png)
}

func parseID(c *gin.Context, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的记录 ID"})
		return 0, false
	}
	return uint(id), true
}

// statusOf 把错误映射为 HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, form.ErrMissingURL),
		errors.Is(err, form.ErrInvalidSource),
		errors.Is(err, form.ErrInvalidStatus),
		errors.Is(err, qrcode.ErrEmptyContent),
		errors.Is(err, qrcode.ErrUnencodable):
		return http.StatusBadRequest
	case errors.Is(err, form.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, form.ErrNoStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *LinkHandler) respondError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Errorf("%s %s 失败: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
