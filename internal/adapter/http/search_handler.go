package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mehmetymw/notion-go/internal/domain"
	"github.com/mehmetymw/notion-go/internal/port"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

type SearchHandler struct {
	workspace port.Workspace
}

func NewSearchHandler(workspace port.Workspace) *SearchHandler {
	return &SearchHandler{workspace: workspace}
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req notion.SearchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handleBindError(c, err)
			return
		}
	}

	results, err := h.workspace.Search(c.Request.Context(), req)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	page, next, hasMore, err := domain.Paginate(results, objectID, string(req.StartCursor), req.PageSize)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, newList(notion.ListTypePageOrDatabase, page, next, hasMore))
}
