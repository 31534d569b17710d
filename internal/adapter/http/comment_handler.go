package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mehmetymw/notion-go/internal/domain"
	"github.com/mehmetymw/notion-go/internal/port"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

type CommentHandler struct {
	workspace port.Workspace
}

func NewCommentHandler(workspace port.Workspace) *CommentHandler {
	return &CommentHandler{workspace: workspace}
}

func (h *CommentHandler) List(c *gin.Context) {
	var q commentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handleQueryError(c, err)
		return
	}

	comments, err := h.workspace.Comments(c.Request.Context(), q.BlockID)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	page, next, hasMore, err := domain.Paginate(comments, func(cm *notion.Comment) string { return cm.ID }, q.StartCursor, q.PageSize)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, newList(notion.ListTypeComment, toObjects(page), next, hasMore))
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req notion.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	comment, err := h.workspace.CreateComment(c.Request.Context(), req)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}
