package notion

import (
	"context"
	"net/http"
	"net/url"
)

// Me returns the bot user the token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	return expect[*User](c.Do(ctx, NewRequest(http.MethodGet, "users/me")))
}

func (c *Client) RetrieveUser(ctx context.Context, userID string) (*User, error) {
	return expect[*User](c.Do(ctx, NewRequest(http.MethodGet, "users/"+url.PathEscape(userID))))
}

func (c *Client) ListUsers(ctx context.Context, page PaginationRequest) (*List, error) {
	req := NewRequest(http.MethodGet, "users").WithQuery(page.query())
	return expect[*List](c.Do(ctx, req))
}
