package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mehmetymw/notion-go/internal/domain"
	"github.com/mehmetymw/notion-go/internal/port"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

type UserHandler struct {
	workspace port.Workspace
}

func NewUserHandler(workspace port.Workspace) *UserHandler {
	return &UserHandler{workspace: workspace}
}

func (h *UserHandler) Me(c *gin.Context) {
	bot, err := h.workspace.Bot(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bot)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.workspace.User(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) List(c *gin.Context) {
	var q paginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handleQueryError(c, err)
		return
	}

	users, err := h.workspace.Users(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}

	page, next, hasMore, err := domain.Paginate(users, func(u *notion.User) string { return u.ID }, q.StartCursor, q.PageSize)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, newList(notion.ListTypeUser, toObjects(page), next, hasMore))
}
