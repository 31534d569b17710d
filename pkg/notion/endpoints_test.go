package notion_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/mehmetymw/notion-go/internal/adapter/http"
	"github.com/mehmetymw/notion-go/internal/adapter/memory"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

const fakeToken = "secret_fake"

func newFakeAPI(t *testing.T) (*notion.Client, *memory.Workspace) {
	t.Helper()
	return newFakeAPIWith(t, httpAdapter.RouterDeps{})
}

// newFakeAPIWith serves the fake API with deps, filling in the workspace and
// token.
func newFakeAPIWith(t *testing.T, deps httpAdapter.RouterDeps) (*notion.Client, *memory.Workspace) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	ws := memory.NewWorkspace("Fake Integration")
	deps.Workspace = ws
	deps.Token = fakeToken
	srv := httptest.NewServer(httpAdapter.NewRouter(deps))
	t.Cleanup(srv.Close)

	c, err := notion.NewClient(fakeToken, notion.WithBaseURL(srv.URL+"/v1"))
	require.NoError(t, err)
	return c, ws
}

func workspacePage(t *testing.T, c *notion.Client, title string) *notion.Page {
	t.Helper()

	p, err := c.CreatePage(context.Background(), notion.CreatePageRequest{
		Parent:     notion.Parent{Type: notion.ParentWorkspace, Workspace: true},
		Properties: map[string]notion.PropertyValue{"title": notion.TitleProperty(title)},
	})
	require.NoError(t, err)
	return p
}

func TestUsers(t *testing.T) {
	c, ws := newFakeAPI(t)
	ctx := context.Background()
	ada, err := ws.AddPerson(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, notion.UserBot, me.Type)
	require.NotNil(t, me.Bot)

	u, err := c.RetrieveUser(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Person.Email)

	list, err := c.ListUsers(ctx, notion.PaginationRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Users(), 2)
	assert.False(t, list.HasMore)
}

func TestNotFoundIsAPIError(t *testing.T) {
	c, _ := newFakeAPI(t)

	_, err := c.RetrievePage(context.Background(), "missing")

	require.ErrorIs(t, err, notion.ErrAPI)
	apiErr, ok := notion.APIError(err)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, notion.CodeObjectNotFound, apiErr.Code)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestWrongTokenIsUnauthorized(t *testing.T) {
	good, _ := newFakeAPI(t)
	bad, err := notion.NewClient("secret_wrong", notion.WithBaseURL(good.BaseURL()))
	require.NoError(t, err)

	_, err = bad.Me(context.Background())

	apiErr, ok := notion.APIError(err)
	require.True(t, ok)
	assert.Equal(t, notion.CodeUnauthorized, apiErr.Code)
}

func TestPages(t *testing.T) {
	c, _ := newFakeAPI(t)
	ctx := context.Background()

	p, err := c.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.Parent{Type: notion.ParentWorkspace, Workspace: true},
		Properties: map[string]notion.PropertyValue{"title": notion.TitleProperty("Roadmap")},
		Children:   []notion.Block{notion.ParagraphBlock("intro")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", p.Title())
	assert.NotEmpty(t, p.URL)

	got, err := c.RetrievePage(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	updated, err := c.UpdatePage(ctx, p.ID, notion.UpdatePageRequest{
		Properties: map[string]notion.PropertyValue{"title": notion.TitleProperty("Roadmap 2")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Roadmap 2", updated.Title())

	archived, err := c.ArchivePage(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, archived.Archived)

	_, err = c.ArchivePage(ctx, p.ID)
	apiErr, ok := notion.APIError(err)
	require.True(t, ok)
	assert.Equal(t, notion.CodeValidationError, apiErr.Code)
}

func TestDatabases(t *testing.T) {
	c, _ := newFakeAPI(t)
	ctx := context.Background()
	root := workspacePage(t, c, "Projects")

	db, err := c.CreateDatabase(ctx, notion.CreateDatabaseRequest{
		Parent: notion.PageParent(root.ID),
		Title:  notion.PlainRichText("Tasks"),
		Properties: map[string]notion.PropertySchema{
			"Name":  {Title: &notion.EmptyConfig{}},
			"Score": {Number: &notion.NumberConfig{}},
			"Done":  {Checkbox: &notion.EmptyConfig{}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, notion.PropertyNumber, db.Properties["Score"].Type)

	for i, name := range []string{"low", "high", "mid"} {
		_, err := c.CreatePage(ctx, notion.CreatePageRequest{
			Parent: notion.DatabaseParent(db.ID),
			Properties: map[string]notion.PropertyValue{
				"Name":  notion.TitleProperty(name),
				"Score": notion.NumberProperty([]float64{1, 3, 2}[i]),
				"Done":  notion.CheckboxProperty(name == "high"),
			},
		})
		require.NoError(t, err)
	}

	one := 1.0
	list, err := c.QueryDatabase(ctx, db.ID, notion.QueryDatabaseRequest{
		Filter: &notion.Filter{Property: "Score", Number: &notion.NumberCondition{GreaterThan: &one}},
		Sorts:  []notion.Sort{{Property: "Score", Direction: notion.SortDescending}},
	})
	require.NoError(t, err)
	pages := list.Pages()
	require.Len(t, pages, 2)
	assert.Equal(t, "high", pages[0].Title())
	assert.Equal(t, "mid", pages[1].Title())

	_, err = c.CreatePage(ctx, notion.CreatePageRequest{
		Parent: notion.DatabaseParent(db.ID),
		Properties: map[string]notion.PropertyValue{
			"Name":    notion.TitleProperty("x"),
			"Missing": notion.RichTextProperty("y"),
		},
	})
	apiErr, ok := notion.APIError(err)
	require.True(t, ok)
	assert.Equal(t, notion.CodeValidationError, apiErr.Code)

	updated, err := c.UpdateDatabase(ctx, db.ID, notion.UpdateDatabaseRequest{
		Properties: map[string]notion.PropertySchema{"Notes": {RichText: &notion.EmptyConfig{}}},
	})
	require.NoError(t, err)
	assert.Contains(t, updated.Properties, "Notes")

	got, err := c.RetrieveDatabase(ctx, db.ID)
	require.NoError(t, err)
	assert.Len(t, got.Properties, 4)
}

func TestQueryDatabase_FollowCursor(t *testing.T) {
	c, _ := newFakeAPI(t)
	ctx := context.Background()
	root := workspacePage(t, c, "Root")

	db, err := c.CreateDatabase(ctx, notion.CreateDatabaseRequest{
		Parent:     notion.PageParent(root.ID),
		Properties: map[string]notion.PropertySchema{"Name": {Title: &notion.EmptyConfig{}}},
	})
	require.NoError(t, err)
	for _, name := range []string{"a", "b", "c"} {
		_, err := c.CreatePage(ctx, notion.CreatePageRequest{
			Parent:     notion.DatabaseParent(db.ID),
			Properties: map[string]notion.PropertyValue{"Name": notion.TitleProperty(name)},
		})
		require.NoError(t, err)
	}

	var titles []string
	req := notion.QueryDatabaseRequest{PageSize: 2}
	for {
		list, err := c.QueryDatabase(ctx, db.ID, req)
		require.NoError(t, err)
		for _, p := range list.Pages() {
			titles = append(titles, p.Title())
		}
		next, ok := list.Next(2)
		if !ok {
			break
		}
		req.StartCursor = next.StartCursor
	}

	assert.Equal(t, []string{"a", "b", "c"}, titles)
}

func TestBlocks(t *testing.T) {
	c, _ := newFakeAPI(t)
	ctx := context.Background()
	page := workspacePage(t, c, "Notes")

	list, err := c.AppendBlockChildren(ctx, page.ID, []notion.Block{
		notion.Heading1Block("Today"),
		notion.ToDoItemBlock("write tests", false),
	})
	require.NoError(t, err)
	blocks := list.Blocks()
	require.Len(t, blocks, 2)
	todo := blocks[1]
	assert.Equal(t, notion.BlockToDo, todo.Type)
	require.NotNil(t, todo.Parent)
	assert.Equal(t, page.ID, todo.Parent.PageID)

	got, err := c.RetrieveBlock(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, got.ToDo.Checked)

	updated, err := c.UpdateBlock(ctx, todo.ID, notion.ToDoItemBlock("write tests", true))
	require.NoError(t, err)
	assert.True(t, updated.ToDo.Checked)

	deleted, err := c.DeleteBlock(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Archived)

	children, err := c.RetrieveBlockChildren(ctx, page.ID, notion.PaginationRequest{})
	require.NoError(t, err)
	require.Len(t, children.Blocks(), 1)
	assert.Equal(t, notion.BlockHeading1, children.Blocks()[0].Type)

	_, err = c.UpdateBlock(ctx, todo.ID, notion.ToDoItemBlock("again", false))
	apiErr, ok := notion.APIError(err)
	require.True(t, ok)
	assert.Equal(t, notion.CodeValidationError, apiErr.Code)
}

func TestSearch(t *testing.T) {
	c, _ := newFakeAPI(t)
	ctx := context.Background()
	roadmap := workspacePage(t, c, "Roadmap")
	workspacePage(t, c, "Meeting notes")

	_, err := c.CreateDatabase(ctx, notion.CreateDatabaseRequest{
		Parent:     notion.PageParent(roadmap.ID),
		Title:      notion.PlainRichText("Road trips"),
		Properties: map[string]notion.PropertySchema{"Name": {Title: &notion.EmptyConfig{}}},
	})
	require.NoError(t, err)

	all, err := c.Search(ctx, notion.SearchRequest{Query: "road"})
	require.NoError(t, err)
	assert.Len(t, all.Pages(), 1)
	assert.Len(t, all.Databases(), 1)

	pages, err := c.Search(ctx, notion.SearchRequest{Query: "ROAD"}.OnlyPages())
	require.NoError(t, err)
	require.Len(t, pages.Results, 1)
	assert.Equal(t, roadmap.ID, pages.Pages()[0].ID)

	dbs, err := c.Search(ctx, notion.SearchRequest{}.OnlyDatabases())
	require.NoError(t, err)
	assert.Len(t, dbs.Databases(), 1)
	assert.Empty(t, dbs.Pages())
}

func TestComments(t *testing.T) {
	c, _ := newFakeAPI(t)
	ctx := context.Background()
	page := workspacePage(t, c, "Roadmap")

	parent := notion.PageParent(page.ID)
	first, err := c.CreateComment(ctx, notion.CreateCommentRequest{
		Parent:   &parent,
		RichText: notion.PlainRichText("looks good"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.DiscussionID)

	reply, err := c.CreateComment(ctx, notion.CreateCommentRequest{
		DiscussionID: first.DiscussionID,
		RichText:     notion.PlainRichText("thanks"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.DiscussionID, reply.DiscussionID)

	list, err := c.RetrieveComments(ctx, page.ID, notion.PaginationRequest{})
	require.NoError(t, err)
	comments := list.Comments()
	require.Len(t, comments, 2)
	assert.Equal(t, "thanks", notion.PlainTextOf(comments[1].RichText))

	_, err = c.CreateComment(ctx, notion.CreateCommentRequest{RichText: notion.PlainRichText("orphan")})
	assert.ErrorIs(t, err, notion.ErrCommentTarget)
}

func TestRateLimited(t *testing.T) {
	c, _ := newFakeAPIWith(t, httpAdapter.RouterDeps{RateLimit: 0.001, Burst: 1})
	ctx := context.Background()

	_, err := c.Me(ctx)
	require.NoError(t, err)

	_, err = c.Me(ctx)
	require.ErrorIs(t, err, notion.ErrAPI)
	apiErr, ok := notion.APIError(err)
	require.True(t, ok)
	assert.Equal(t, notion.CodeRateLimited, apiErr.Code)
	assert.Equal(t, 429, apiErr.Status)
}
