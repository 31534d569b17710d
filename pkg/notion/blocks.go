package notion

import (
	"context"
	"net/http"
	"net/url"
)

func blockPath(blockID string) string {
	return "blocks/" + url.PathEscape(blockID)
}

func (c *Client) RetrieveBlock(ctx context.Context, blockID string) (*Block, error) {
	return expect[*Block](c.Do(ctx, NewRequest(http.MethodGet, blockPath(blockID))))
}

func (c *Client) RetrieveBlockChildren(ctx context.Context, blockID string, page PaginationRequest) (*List, error) {
	r := NewRequest(http.MethodGet, blockPath(blockID)+"/children").WithQuery(page.query())
	return expect[*List](c.Do(ctx, r))
}

// AppendBlockChildren adds children after the last child of blockID, which
// may be a page id. It returns the first page of the parent's children.
func (c *Client) AppendBlockChildren(ctx context.Context, blockID string, children []Block) (*List, error) {
	r := NewRequest(http.MethodPatch, blockPath(blockID)+"/children").
		WithJSON(AppendBlockChildrenRequest{Children: children})
	return expect[*List](c.Do(ctx, r))
}

// UpdateBlock replaces the type-specific content of a block. block.Type
// selects which content field is sent.
func (c *Client) UpdateBlock(ctx context.Context, blockID string, block Block) (*Block, error) {
	body, err := updateBlockBody(block)
	if err != nil {
		return nil, err
	}
	r := NewRequest(http.MethodPatch, blockPath(blockID)).WithBytes(body, "application/json")
	return expect[*Block](c.Do(ctx, r))
}

// DeleteBlock archives a block and returns it.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) (*Block, error) {
	return expect[*Block](c.Do(ctx, NewRequest(http.MethodDelete, blockPath(blockID))))
}
