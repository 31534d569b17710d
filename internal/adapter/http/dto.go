package http

import (
	"github.com/mehmetymw/notion-go/pkg/notion"
)

// paginationQuery is the query string form of notion.PaginationRequest.
type paginationQuery struct {
	StartCursor string `form:"start_cursor"`
	PageSize    int    `form:"page_size"`
}

type commentsQuery struct {
	paginationQuery
	BlockID string `form:"block_id" binding:"required"`
}

func newList(listType notion.ListType, results []notion.Object, next string, hasMore bool) *notion.List {
	l := &notion.List{
		Type:    listType,
		Results: results,
		HasMore: hasMore,
	}
	if l.Results == nil {
		l.Results = []notion.Object{}
	}
	if hasMore {
		cursor := notion.Cursor(next)
		l.NextCursor = &cursor
	}
	return l
}

func toObjects[T notion.Object](items []T) []notion.Object {
	out := make([]notion.Object, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func objectID(obj notion.Object) string {
	switch o := obj.(type) {
	case *notion.User:
		return o.ID
	case *notion.Page:
		return o.ID
	case *notion.Database:
		return o.ID
	case *notion.Block:
		return o.ID
	case *notion.Comment:
		return o.ID
	}
	return ""
}
