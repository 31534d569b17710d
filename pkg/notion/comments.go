package notion

import (
	"context"
	"errors"
	"net/http"
)

var ErrCommentTarget = errors.New("comment needs exactly one of parent or discussion_id")

// RetrieveComments lists unresolved comments on a page or block.
func (c *Client) RetrieveComments(ctx context.Context, blockID string, page PaginationRequest) (*List, error) {
	q := page.query()
	q.Set("block_id", blockID)
	return expect[*List](c.Do(ctx, NewRequest(http.MethodGet, "comments").WithQuery(q)))
}

func (c *Client) CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	if (req.Parent == nil) == (req.DiscussionID == "") {
		return nil, ErrCommentTarget
	}
	return expect[*Comment](c.Do(ctx, NewRequest(http.MethodPost, "comments").WithJSON(req)))
}
