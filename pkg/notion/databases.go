package notion

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error) {
	return expect[*Database](c.Do(ctx, NewRequest(http.MethodGet, "databases/"+url.PathEscape(databaseID))))
}

// QueryDatabase returns a list of pages in the database matching req.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req QueryDatabaseRequest) (*List, error) {
	r := NewRequest(http.MethodPost, "databases/"+url.PathEscape(databaseID)+"/query").WithJSON(req)
	return expect[*List](c.Do(ctx, r))
}

func (c *Client) CreateDatabase(ctx context.Context, req CreateDatabaseRequest) (*Database, error) {
	return expect[*Database](c.Do(ctx, NewRequest(http.MethodPost, "databases").WithJSON(req)))
}

func (c *Client) UpdateDatabase(ctx context.Context, databaseID string, req UpdateDatabaseRequest) (*Database, error) {
	r := NewRequest(http.MethodPatch, "databases/"+url.PathEscape(databaseID)).WithJSON(req)
	return expect[*Database](c.Do(ctx, r))
}
