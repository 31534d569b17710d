package notion

import (
	"context"
	"net/http"
)

type SearchFilterValue string

const (
	SearchFilterPage     SearchFilterValue = "page"
	SearchFilterDatabase SearchFilterValue = "database"
)

type SearchFilter struct {
	Value    SearchFilterValue `json:"value"`
	Property string            `json:"property"`
}

type SearchSort struct {
	Direction SortDirection `json:"direction"`
	Timestamp SortTimestamp `json:"timestamp"`
}

// SearchRequest searches page and database titles shared with the
// integration. An empty Query matches everything.
type SearchRequest struct {
	Query       string        `json:"query,omitempty"`
	Sort        *SearchSort   `json:"sort,omitempty"`
	Filter      *SearchFilter `json:"filter,omitempty"`
	StartCursor Cursor        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

// OnlyPages restricts results to pages.
func (r SearchRequest) OnlyPages() SearchRequest {
	r.Filter = &SearchFilter{Value: SearchFilterPage, Property: "object"}
	return r
}

// OnlyDatabases restricts results to databases.
func (r SearchRequest) OnlyDatabases() SearchRequest {
	r.Filter = &SearchFilter{Value: SearchFilterDatabase, Property: "object"}
	return r
}

func (c *Client) Search(ctx context.Context, req SearchRequest) (*List, error) {
	return expect[*List](c.Do(ctx, NewRequest(http.MethodPost, "search").WithJSON(req)))
}
