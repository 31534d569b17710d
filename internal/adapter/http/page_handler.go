package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mehmetymw/notion-go/internal/port"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

type PageHandler struct {
	workspace port.Workspace
}

func NewPageHandler(workspace port.Workspace) *PageHandler {
	return &PageHandler{workspace: workspace}
}

func (h *PageHandler) GetByID(c *gin.Context) {
	page, err := h.workspace.Page(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PageHandler) Create(c *gin.Context) {
	var req notion.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	page, err := h.workspace.CreatePage(c.Request.Context(), req)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PageHandler) Update(c *gin.Context) {
	var req notion.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	page, err := h.workspace.UpdatePage(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
