package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mehmetymw/notion-go/internal/adapter/http/middleware"
	"github.com/mehmetymw/notion-go/internal/domain"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

func handleDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrObjectNotFound):
		middleware.Abort(c, http.StatusNotFound, notion.CodeObjectNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidCursor),
		errors.Is(err, domain.ErrInvalidPageSize):
		middleware.Abort(c, http.StatusBadRequest, notion.CodeValidationError, err.Error())
	case errors.Is(err, domain.ErrInvalidRequest):
		middleware.Abort(c, http.StatusBadRequest, notion.CodeInvalidRequest, err.Error())
	default:
		_ = c.Error(err)
		middleware.Abort(c, http.StatusInternalServerError, notion.CodeInternalServerError, "Unexpected error occurred.")
	}
}

func handleBindError(c *gin.Context, err error) {
	middleware.Abort(c, http.StatusBadRequest, notion.CodeInvalidJSON, "Error parsing JSON body: "+err.Error())
}

func handleQueryError(c *gin.Context, err error) {
	middleware.Abort(c, http.StatusBadRequest, notion.CodeValidationError, err.Error())
}
