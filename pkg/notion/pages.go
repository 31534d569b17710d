package notion

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) RetrievePage(ctx context.Context, pageID string) (*Page, error) {
	return expect[*Page](c.Do(ctx, NewRequest(http.MethodGet, "pages/"+url.PathEscape(pageID))))
}

func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	return expect[*Page](c.Do(ctx, NewRequest(http.MethodPost, "pages").WithJSON(req)))
}

func (c *Client) UpdatePage(ctx context.Context, pageID string, req UpdatePageRequest) (*Page, error) {
	r := NewRequest(http.MethodPatch, "pages/"+url.PathEscape(pageID)).WithJSON(req)
	return expect[*Page](c.Do(ctx, r))
}

// ArchivePage moves a page to the trash.
func (c *Client) ArchivePage(ctx context.Context, pageID string) (*Page, error) {
	archived := true
	return c.UpdatePage(ctx, pageID, UpdatePageRequest{Archived: &archived})
}
