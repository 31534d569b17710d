package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mehmetymw/notion-go/internal/domain"
	"github.com/mehmetymw/notion-go/internal/port"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

type BlockHandler struct {
	workspace port.Workspace
}

func NewBlockHandler(workspace port.Workspace) *BlockHandler {
	return &BlockHandler{workspace: workspace}
}

func (h *BlockHandler) GetByID(c *gin.Context) {
	block, err := h.workspace.Block(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

func (h *BlockHandler) Children(c *gin.Context) {
	var q paginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handleQueryError(c, err)
		return
	}

	blocks, err := h.workspace.Children(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleDomainError(c, err)
		return
	}

	page, next, hasMore, err := domain.Paginate(blocks, func(b *notion.Block) string { return b.ID }, q.StartCursor, q.PageSize)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, newList(notion.ListTypeBlock, toObjects(page), next, hasMore))
}

// AppendChildren responds with the first page of the parent's children.
func (h *BlockHandler) AppendChildren(c *gin.Context) {
	var req notion.AppendBlockChildrenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.workspace.AppendChildren(ctx, c.Param("id"), req.Children); err != nil {
		handleDomainError(c, err)
		return
	}

	blocks, err := h.workspace.Children(ctx, c.Param("id"))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	page, next, hasMore, err := domain.Paginate(blocks, func(b *notion.Block) string { return b.ID }, "", 0)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, newList(notion.ListTypeBlock, toObjects(page), next, hasMore))
}

func (h *BlockHandler) Update(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		handleBindError(c, err)
		return
	}

	block, err := h.workspace.UpdateBlock(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

func (h *BlockHandler) Delete(c *gin.Context) {
	block, err := h.workspace.DeleteBlock(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}
