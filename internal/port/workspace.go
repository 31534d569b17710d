package port

import (
	"context"
	"encoding/json"

	"github.com/mehmetymw/notion-go/pkg/notion"
)

// Workspace is the content store behind the fake Notion API.
type Workspace interface {
	Bot(ctx context.Context) (*notion.User, error)
	User(ctx context.Context, id string) (*notion.User, error)
	Users(ctx context.Context) ([]*notion.User, error)

	Search(ctx context.Context, req notion.SearchRequest) ([]notion.Object, error)

	Page(ctx context.Context, id string) (*notion.Page, error)
	CreatePage(ctx context.Context, req notion.CreatePageRequest) (*notion.Page, error)
	UpdatePage(ctx context.Context, id string, req notion.UpdatePageRequest) (*notion.Page, error)

	Database(ctx context.Context, id string) (*notion.Database, error)
	CreateDatabase(ctx context.Context, req notion.CreateDatabaseRequest) (*notion.Database, error)
	UpdateDatabase(ctx context.Context, id string, req notion.UpdateDatabaseRequest) (*notion.Database, error)
	QueryDatabase(ctx context.Context, id string, req notion.QueryDatabaseRequest) ([]*notion.Page, error)

	Block(ctx context.Context, id string) (*notion.Block, error)
	Children(ctx context.Context, parentID string) ([]*notion.Block, error)
	AppendChildren(ctx context.Context, parentID string, children []notion.Block) error
	UpdateBlock(ctx context.Context, id string, patch map[string]json.RawMessage) (*notion.Block, error)
	DeleteBlock(ctx context.Context, id string) (*notion.Block, error)

	Comments(ctx context.Context, blockID string) ([]*notion.Comment, error)
	CreateComment(ctx context.Context, req notion.CreateCommentRequest) (*notion.Comment, error)
}
