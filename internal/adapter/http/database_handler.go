package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mehmetymw/notion-go/internal/domain"
	"github.com/mehmetymw/notion-go/internal/port"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

type DatabaseHandler struct {
	workspace port.Workspace
}

func NewDatabaseHandler(workspace port.Workspace) *DatabaseHandler {
	return &DatabaseHandler{workspace: workspace}
}

func (h *DatabaseHandler) GetByID(c *gin.Context) {
	db, err := h.workspace.Database(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, db)
}

func (h *DatabaseHandler) Create(c *gin.Context) {
	var req notion.CreateDatabaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	db, err := h.workspace.CreateDatabase(c.Request.Context(), req)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, db)
}

func (h *DatabaseHandler) Update(c *gin.Context) {
	var req notion.UpdateDatabaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	db, err := h.workspace.UpdateDatabase(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, db)
}

func (h *DatabaseHandler) Query(c *gin.Context) {
	var req notion.QueryDatabaseRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handleBindError(c, err)
			return
		}
	}

	pages, err := h.workspace.QueryDatabase(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	page, next, hasMore, err := domain.Paginate(pages, func(p *notion.Page) string { return p.ID }, string(req.StartCursor), req.PageSize)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, newList(notion.ListTypePage, toObjects(page), next, hasMore))
}
