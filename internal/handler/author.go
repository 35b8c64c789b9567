package handler

import (
	"net/http"

	"deeplink-generator/internal/middleware"

	"github.com/gin-gonic/gin"
)

// AuthorResponse 当前作者信息
type AuthorResponse struct {
	Name    string `json:"name" example:"Ada Lovelace"`
	CanEdit bool   `json:"can_edit"`
}

// CurrentAuthor godoc
// @Summary 获取当前作者
// @Description 作者名来自前置代理写入的请求头，缺失时为默认名
// @Tags Author
// @Produce  json
// @Success 200 {object} AuthorResponse "成功响应"
// @Router /api/me [get]
func (h *LinkHandler) CurrentAuthor(c *gin.Context) {
	c.JSON(http.StatusOK, AuthorResponse{Name: middleware.Author(c), CanEdit: h.controller.HasStore()})
}
