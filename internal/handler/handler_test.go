package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"deeplink-generator/internal/deeplink"
	"deeplink-generator/internal/form"
	"deeplink-generator/internal/middleware"
	"deeplink-generator/internal/model"
	"deeplink-generator/internal/qrcode"
	"deeplink-generator/internal/store"
	"deeplink-generator/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const authorHeader = "X-Forwarded-User"

// setupTest 为集成测试初始化一个干净的环境
// withStore 为 false 时模拟未配置数据库的部署
func setupTest(t *testing.T, withStore bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var st store.Store
	if withStore {
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
		db, err := database.InitSQLite(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		require.NoError(t, err, "无法连接到内存数据库")
		require.NoError(t, database.Migrate(db))
		t.Cleanup(func() { _ = database.Close(db) })
		st = store.NewGormStore(db)
	}

	sugar := zap.NewNop().Sugar()
	controller := form.NewController(st, qrcode.NewEncoder(10, false), deeplink.New(""), sugar)
	h := NewLinkHandler(controller, sugar)

	router := gin.New()
	router.Use(middleware.Identity(authorHeader, "Unknown User"))
	router.LoadHTMLGlob("../../web/templates/*")

	router.GET("/", h.IndexPage)
	router.POST("/", h.SubmitForm)
	router.POST("/example", h.ExampleForm)
	router.GET("/edit", h.EditPage)
	router.POST("/edit", h.UpdateForm)
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	api.GET("/me", h.CurrentAuthor)
	api.POST("/links", h.CreateLink)
	api.GET("/links", h.ListLinks)
	api.GET("/links/:id", h.GetLink)
	api.PUT("/links/:id", h.UpdateLink)
	api.GET("/links/:id/qrcode", h.RecordQRCode)
	api.POST("/preview", h.Preview)
	api.GET("/example", h.Example)
	api.GET("/qrcode", h.QRCode)
	return router
}

func doJSON(router *gin.Engine, method, path, author string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if author != "" {
		req.Header.Set(authorHeader, author)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doForm(router *gin.Engine, path, author string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if author != "" {
		req.Header.Set(authorHeader, author)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createLink(t *testing.T, router *gin.Engine, author string, fields form.Fields) LinkResponse {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/links", author, fields)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	router := setupTest(t, false)
	w := doJSON(router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"store":false`)
}

func TestCurrentAuthor(t *testing.T) {
	router := setupTest(t, true)

	w := doJSON(router, http.MethodGet, "/api/me", "ada", nil)
	var resp AuthorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, AuthorResponse{Name: "ada", CanEdit: true}, resp)

	w = doJSON(router, http.MethodGet, "/api/me", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Unknown User", resp.Name)
}

// TestLinkHandler_Integration 测试新建、查询、更新的完整流程
func TestLinkHandler_Integration(t *testing.T) {
	router := setupTest(t, true)

	// === 步骤 1: 新建记录 ===
	created := createLink(t, router, "ada", form.Fields{
		InputURL:     "https://app.snowflake.com/kl30547/us-east-2/#/cortex/playground",
		ContentTitle: "Cortex Tour",
	})
	require.NotNil(t, created.Result)
	assert.NotZero(t, created.RecordID)
	assert.Equal(t, "ada", created.Fields.AuthorName, "作者默认取自请求头")
	assert.Equal(t, "Cortex", created.Result.Product)
	assert.Equal(t, "https://app.snowflake.com/_deeplink/#/cortex/playground", created.Result.Deeplink)
	assert.Equal(t, "https://app.snowflake.com/_deeplink/#/cortex/playground?utm_source=quickstart&utm_medium=quickstart&utm_campaign=-us-en-all&utm_content=app-cortex-tour", created.Result.TrackingURL)
	assert.Equal(t, qrCodeURL(created.Result.TrackingURL), created.QRCodeURL)
	require.NotNil(t, created.Message)
	assert.Equal(t, form.LevelSuccess, created.Message.Level)

	// === 步骤 2: 重复提交返回 409 ===
	w := doJSON(router, http.MethodPost, "/api/links", "bob", form.Fields{
		InputURL:     created.Fields.InputURL,
		ContentTitle: "Cortex Tour",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// === 步骤 3: 列表只包含自己的记录 ===
	w = doJSON(router, http.MethodGet, "/api/links", "ada", nil)
	var records []model.LinkRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, created.RecordID, records[0].ID)

	w = doJSON(router, http.MethodGet, "/api/links", "bob", nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	// === 步骤 4: 读取与权限 ===
	path := fmt.Sprintf("/api/links/%d", created.RecordID)
	w = doJSON(router, http.MethodGet, path, "ada", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodGet, path, "bob", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(router, http.MethodGet, "/api/links/999", "ada", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(router, http.MethodGet, "/api/links/abc", "ada", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// === 步骤 5: 更新后派生链接重新计算 ===
	update := form.Fields{
		InputURL:     "https://app.snowflake.com/kl30547/us-east-2/#/agents",
		AuthorName:   "ada",
		ContentTitle: "Cortex Tour",
		Source:       model.SourceMedium,
		Status:       model.StatusLiveToCustomers,
	}
	w = doJSON(router, http.MethodPut, path, "bob", update)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPut, path, "ada", update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "https://app.snowflake.com/_deeplink/#/agents", updated.Result.Deeplink)
	assert.Contains(t, updated.Result.TrackingURL, "utm_source=medium")

	w = doJSON(router, http.MethodGet, path, "ada", nil)
	var saved model.LinkRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, model.StatusLiveToCustomers, saved.Status)
	assert.Equal(t, model.SourceMedium, saved.Source)

	// === 步骤 6: 下载记录的二维码 ===
	w = doJSON(router, http.MethodGet, path+"/qrcode", "ada", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), qrcode.FileName)
}

func TestCreateLink_Validation(t *testing.T) {
	router := setupTest(t, true)

	w := doJSON(router, http.MethodPost, "/api/links", "ada", form.Fields{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/links", "ada", form.Fields{InputURL: "https://app.snowflake.com/marketplace", Source: "Twitter"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateLink_WithoutStore(t *testing.T) {
	router := setupTest(t, false)

	w := doJSON(router, http.MethodPost, "/api/links", "ada", form.Fields{InputURL: "https://app.snowflake.com/marketplace"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.RecordID)
	assert.Equal(t, "https://app.snowflake.com/_deeplink/", resp.Result.Deeplink)

	w = doJSON(router, http.MethodGet, "/api/links", "ada", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPreview(t *testing.T) {
	router := setupTest(t, true)
	fields := form.Fields{InputURL: "https://app.snowflake.com/kl30547/us-east-2/#/agents", Source: model.SourceGitHub}

	w := doJSON(router, http.MethodPost, "/api/preview", "ada", fields)
	require.Equal(t, http.StatusOK, w.Code)
	var preview PreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	assert.Equal(t, "Agents", preview.Product)
	assert.Equal(t, "https://app.snowflake.com/_deeplink/#/agents/?utm_source=github&utm_medium=github&utm_campaign=-us-en-all&utm_content=-app-my-awesome-post", preview.TrackingURL)
	assert.False(t, preview.Exists)

	fields.ContentTitle = form.DefaultContentTitle
	createLink(t, router, "ada", fields)

	w = doJSON(router, http.MethodPost, "/api/preview", "ada", fields)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	assert.True(t, preview.Exists)

	w = doJSON(router, http.MethodPost, "/api/preview", "ada", form.Fields{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExample(t *testing.T) {
	router := setupTest(t, false)
	w := doJSON(router, http.MethodGet, "/api/example", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ExampleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, deeplink.Examples, resp.InputURL)
	assert.Equal(t, deeplink.InferProduct(resp.InputURL), resp.Product)
}

func TestQRCode(t *testing.T) {
	router := setupTest(t, false)

	w := doJSON(router, http.MethodGet, "/api/qrcode?url="+url.QueryEscape("https://app.snowflake.com/_deeplink/"), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")), "应返回 PNG 图片")

	w = doJSON(router, http.MethodGet, "/api/qrcode", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPages_AddFlow(t *testing.T) {
	router := setupTest(t, true)

	w := doJSON(router, http.MethodGet, "/", "ada", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="My Awesome Post"`)
	assert.Contains(t, w.Body.String(), "Edit Existing Link")

	w = doForm(router, "/example", "ada", url.Values{"content_title": {"Kept Title"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Kept Title"`)

	values := url.Values{
		"input_url":     {"https://app.snowflake.com/marketplace"},
		"author_name":   {"ada"},
		"content_title": {"Market Tour"},
		"source":        {string(model.SourceDocs)},
		"status":        {string(model.StatusInProgress)},
	}
	w = doForm(router, "/", "ada", values)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "saved successfully")
	assert.Contains(t, body, "https://app.snowflake.com/_deeplink/")
	assert.Contains(t, body, "data:image/png;base64,")

	w = doForm(router, "/", "ada", values)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")

	w = doForm(router, "/", "ada", url.Values{"input_url": {" "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPages_EditFlow(t *testing.T) {
	router := setupTest(t, true)

	w := doJSON(router, http.MethodGet, "/edit", "ada", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You have not created any links to edit.")

	created := createLink(t, router, "ada", form.Fields{InputURL: "https://app.snowflake.com/migrations"})
	label := fmt.Sprintf("%d - https://app.snowflake.com/migrations", created.RecordID)

	w = doJSON(router, http.MethodGet, "/edit", "ada", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), label)
	assert.Contains(t, w.Body.String(), "Update Record")

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/edit?id=%d", created.RecordID), "bob", nil)
	assert.Contains(t, w.Body.String(), "You have not created any links to edit.")

	w = doForm(router, "/edit", "ada", url.Values{
		"record_id":     {fmt.Sprint(created.RecordID)},
		"input_url":     {"https://app.snowflake.com/kl30547/us-east-2/#/agents"},
		"author_name":   {"ada"},
		"content_title": {"Agents"},
		"source":        {string(model.SourceLinkedIn)},
		"status":        {string(model.StatusBlocked)},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), fmt.Sprintf("Record %d updated successfully!", created.RecordID))

	w = doForm(router, "/edit", "bob", url.Values{
		"record_id": {fmt.Sprint(created.RecordID)},
		"input_url": {"https://app.snowflake.com/marketplace"},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doForm(router, "/edit", "ada", url.Values{"record_id": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPages_EditWithoutStore(t *testing.T) {
	router := setupTest(t, false)

	w := doJSON(router, http.MethodGet, "/edit", "ada", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "Edit Existing Link")
}

// 只带部分字段的 PUT 不应清空其他字段，记录仍归原作者
func TestUpdateLink_PartialBody(t *testing.T) {
	router := setupTest(t, true)
	created := createLink(t, router, "ada", form.Fields{
		InputURL:     "https://app.snowflake.com/marketplace",
		ContentTitle: "Market Tour",
		Source:       model.SourceDocs,
	})
	path := fmt.Sprintf("/api/links/%d", created.RecordID)

	w := doJSON(router, http.MethodPut, path, "ada", map[string]string{"input_url": "https://app.snowflake.com/openflow"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/links", "ada", nil)
	var records []model.LinkRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "ada", records[0].AuthorName)
	assert.Equal(t, "Market Tour", records[0].ContentTitle)
	assert.Equal(t, model.SourceDocs, records[0].Source)
	assert.Equal(t, "https://app.snowflake.com/openflow", records[0].InputURL)
	assert.Contains(t, records[0].TrackingURL, "utm_content=-app-market-tour")

	w = doJSON(router, http.MethodGet, path, "ada", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 显式清空作者名时回落到当前身份
	w = doJSON(router, http.MethodPut, path, "ada", map[string]string{"author_name": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(router, http.MethodGet, path, "ada", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPut, "/api/links/999", "ada", map[string]string{"input_url": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPages_UpdateFormBlankAuthor(t *testing.T) {
	router := setupTest(t, true)
	created := createLink(t, router, "ada", form.Fields{InputURL: "https://app.snowflake.com/migrations", ContentTitle: "Moving Day"})

	w := doForm(router, "/edit", "ada", url.Values{
		"record_id":   {fmt.Sprint(created.RecordID)},
		"author_name": {""},
		"status":      {string(model.StatusBlocked)},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/links/%d", created.RecordID), "ada", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var saved model.LinkRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "ada", saved.AuthorName)
	assert.Equal(t, "Moving Day", saved.ContentTitle)
	assert.Equal(t, model.StatusBlocked, saved.Status)
}

func TestRecordQRCode_Ownership(t *testing.T) {
	router := setupTest(t, true)
	created := createLink(t, router, "ada", form.Fields{InputURL: "https://app.snowflake.com/marketplace"})
	path := fmt.Sprintf("/api/links/%d/qrcode", created.RecordID)

	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodGet, path, "ada", nil).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(router, http.MethodGet, path, "bob", nil).Code)
}

func TestQRCode_TooLong(t *testing.T) {
	router := setupTest(t, false)
	content := "https://app.snowflake.com/" + strings.Repeat("a", 4000)

	w := doJSON(router, http.MethodGet, "/api/qrcode?url="+url.QueryEscape(content), "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
