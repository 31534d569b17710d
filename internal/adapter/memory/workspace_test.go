package memory

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehmetymw/notion-go/internal/domain"
	"github.com/mehmetymw/notion-go/internal/port"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

func rootPage(t *testing.T, w *Workspace, title string) *notion.Page {
	t.Helper()

	p, err := w.CreatePage(context.Background(), notion.CreatePageRequest{
		Parent:     notion.Parent{Type: notion.ParentWorkspace, Workspace: true},
		Properties: map[string]notion.PropertyValue{"title": notion.TitleProperty(title)},
	})
	require.NoError(t, err)
	return p
}

func TestWorkspace_Users(t *testing.T) {
	w := NewWorkspace("Bot")
	ctx := context.Background()
	ada, err := w.AddPerson(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	bot, err := w.Bot(ctx)
	require.NoError(t, err)
	assert.Equal(t, notion.UserBot, bot.Type)

	got, err := w.User(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	_, err = w.User(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)

	users, err := w.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestWorkspace_CreatePage_Validation(t *testing.T) {
	w := NewWorkspace("Bot")
	ctx := context.Background()

	_, err := w.CreatePage(ctx, notion.CreatePageRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = w.CreatePage(ctx, notion.CreatePageRequest{
		Parent: notion.Parent{Type: notion.ParentWorkspace, Workspace: true},
	})
	assert.ErrorIs(t, err, domain.ErrTitleMissing)

	_, err = w.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.PageParent("missing"),
		Properties: map[string]notion.PropertyValue{"title": notion.TitleProperty("x")},
	})
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)

	_, err = w.CreatePage(ctx, notion.CreatePageRequest{
		Parent: notion.Parent{Type: notion.ParentWorkspace, Workspace: true},
		Properties: map[string]notion.PropertyValue{
			"title": notion.TitleProperty("x"),
			"Score": notion.NumberProperty(1),
		},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWorkspace_UpdatePageKeepsOriginal(t *testing.T) {
	w := NewWorkspace("Bot")
	ctx := context.Background()
	p := rootPage(t, w, "Before")

	updated, err := w.UpdatePage(ctx, p.ID, notion.UpdatePageRequest{
		Properties: map[string]notion.PropertyValue{"title": notion.TitleProperty("After")},
	})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Title())
	assert.Equal(t, "Before", p.Title())
}

func TestWorkspace_Database(t *testing.T) {
	w := NewWorkspace("Bot")
	ctx := context.Background()
	root := rootPage(t, w, "Root")

	_, err := w.CreateDatabase(ctx, notion.CreateDatabaseRequest{
		Parent:     notion.PageParent(root.ID),
		Properties: map[string]notion.PropertySchema{"Score": {Number: &notion.NumberConfig{}}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	db, err := w.CreateDatabase(ctx, notion.CreateDatabaseRequest{
		Parent: notion.PageParent(root.ID),
		Properties: map[string]notion.PropertySchema{
			"Name":   {Title: &notion.EmptyConfig{}},
			"Status": {Select: &notion.SelectConfig{}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "title", db.Properties["Name"].ID)
	assert.Equal(t, notion.PropertySelect, db.Properties["Status"].Type)
	assert.Equal(t, "Status", db.Properties["Status"].Name)

	for _, s := range []struct{ name, status string }{{"b", "Done"}, {"a", "Todo"}, {"c", "Done"}} {
		_, err := w.CreatePage(ctx, notion.CreatePageRequest{
			Parent: notion.DatabaseParent(db.ID),
			Properties: map[string]notion.PropertyValue{
				"Name":   notion.TitleProperty(s.name),
				"Status": notion.SelectProperty(s.status),
			},
		})
		require.NoError(t, err)
	}

	pages, err := w.QueryDatabase(ctx, db.ID, notion.QueryDatabaseRequest{
		Filter: &notion.Filter{Property: "Status", Select: &notion.SelectCondition{Equals: "Done"}},
		Sorts:  []notion.Sort{{Property: "Name", Direction: notion.SortAscending}},
	})
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "b", pages[0].Title())
	assert.Equal(t, "c", pages[1].Title())

	_, err = w.QueryDatabase(ctx, db.ID, notion.QueryDatabaseRequest{
		Filter: &notion.Filter{Property: "Name", Date: &notion.DateCondition{IsEmpty: true}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = w.QueryDatabase(ctx, "missing", notion.QueryDatabaseRequest{})
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)
}

func TestWorkspace_NestedChildren(t *testing.T) {
	w := NewWorkspace("Bot")
	ctx := context.Background()
	page := rootPage(t, w, "Page")

	toggle := notion.Block{Type: notion.BlockToggle, Toggle: &notion.TextBlock{
		RichText: notion.PlainRichText("more"),
		Children: []notion.Block{notion.ParagraphBlock("hidden")},
	}}
	require.NoError(t, w.AppendChildren(ctx, page.ID, []notion.Block{toggle}))

	top, err := w.Children(ctx, page.ID)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.True(t, top[0].HasChildren)
	assert.Empty(t, top[0].Toggle.Children)

	nested, err := w.Children(ctx, top[0].ID)
	require.NoError(t, err)
	require.Len(t, nested, 1)
	assert.Equal(t, top[0].ID, nested[0].Parent.BlockID)
	assert.Equal(t, "hidden", notion.PlainTextOf(nested[0].Paragraph.RichText))
}

func TestWorkspace_AppendChildren_Rejects(t *testing.T) {
	w := NewWorkspace("Bot")
	ctx := context.Background()
	page := rootPage(t, w, "Page")

	err := w.AppendChildren(ctx, page.ID, []notion.Block{{Type: notion.BlockUnsupported}})
	assert.ErrorIs(t, err, domain.ErrUnsupportedBlock)

	err = w.AppendChildren(ctx, "missing", []notion.Block{notion.ParagraphBlock("x")})
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)

	children, err := w.Children(ctx, page.ID)
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestWorkspace_UpdateBlock(t *testing.T) {
	w := NewWorkspace("Bot")
	ctx := context.Background()
	page := rootPage(t, w, "Page")
	require.NoError(t, w.AppendChildren(ctx, page.ID, []notion.Block{notion.ParagraphBlock("old")}))
	children, err := w.Children(ctx, page.ID)
	require.NoError(t, err)
	id := children[0].ID

	content, err := json.Marshal(notion.TextBlock{RichText: notion.PlainRichText("new")})
	require.NoError(t, err)
	updated, err := w.UpdateBlock(ctx, id, map[string]json.RawMessage{"paragraph": content})
	require.NoError(t, err)
	assert.Equal(t, "new", notion.PlainTextOf(updated.Paragraph.RichText))
	assert.Equal(t, page.ID, updated.Parent.PageID)
	assert.Equal(t, "old", notion.PlainTextOf(children[0].Paragraph.RichText))

	_, err = w.UpdateBlock(ctx, id, map[string]json.RawMessage{"heading_1": content})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWorkspace_Comments(t *testing.T) {
	w := NewWorkspace("Bot")
	ctx := context.Background()
	page := rootPage(t, w, "Page")
	parent := notion.PageParent(page.ID)

	_, err := w.CreateComment(ctx, notion.CreateCommentRequest{Parent: &parent, DiscussionID: "d"})
	assert.ErrorIs(t, err, domain.ErrCommentTarget)

	_, err = w.CreateComment(ctx, notion.CreateCommentRequest{DiscussionID: "nope"})
	assert.ErrorIs(t, err, domain.ErrDiscussionNotFound)

	c, err := w.CreateComment(ctx, notion.CreateCommentRequest{Parent: &parent, RichText: notion.PlainRichText("hi")})
	require.NoError(t, err)

	comments, err := w.Comments(ctx, page.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, c.ID, comments[0].ID)
}

func TestWorkspace_ConcurrentWrites(t *testing.T) {
	w := NewWorkspace("Bot")
	ctx := context.Background()
	page := rootPage(t, w, "Page")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.AppendChildren(ctx, page.ID, []notion.Block{notion.ParagraphBlock("x")})
			_, _ = w.Children(ctx, page.ID)
		}()
	}
	wg.Wait()

	children, err := w.Children(ctx, page.ID)
	require.NoError(t, err)
	assert.Len(t, children, 20)
}

type fakeStore struct {
	mu   sync.Mutex
	recs []port.ObjectRecord
	err  error
	// limit, when positive, rejects any batch that would take the number
	// of stored records past it.
	limit int
}

func (s *fakeStore) Save(_ context.Context, recs ...port.ObjectRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	next := append([]port.ObjectRecord(nil), s.recs...)
	for _, rec := range recs {
		replaced := false
		for i, r := range next {
			if r.ID == rec.ID {
				next[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			next = append(next, rec)
		}
	}
	if s.limit > 0 && len(next) > s.limit {
		return errStoreFull
	}
	s.recs = next
	return nil
}

func (s *fakeStore) LoadAll(_ context.Context) ([]port.ObjectRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]port.ObjectRecord, len(s.recs))
	copy(out, s.recs)
	return out, nil
}

func TestWorkspace_Restore(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}

	first := NewWorkspace("Bot")
	require.NoError(t, first.Restore(ctx, store))
	page := rootPage(t, first, "Persisted")
	require.NoError(t, first.AppendChildren(ctx, page.ID, []notion.Block{
		notion.ParagraphBlock("one"),
		notion.ParagraphBlock("two"),
	}))
	parent := notion.PageParent(page.ID)
	_, err := first.CreateComment(ctx, notion.CreateCommentRequest{Parent: &parent, RichText: notion.PlainRichText("hi")})
	require.NoError(t, err)
	_, err = first.UpdatePage(ctx, page.ID, notion.UpdatePageRequest{
		Properties: map[string]notion.PropertyValue{"title": notion.TitleProperty("Renamed")},
	})
	require.NoError(t, err)

	second := NewWorkspace("Other")
	require.NoError(t, second.Restore(ctx, store))

	bot1, _ := first.Bot(ctx)
	bot2, _ := second.Bot(ctx)
	assert.Equal(t, bot1.ID, bot2.ID)
	users, err := second.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	got, err := second.Page(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title())

	children, err := second.Children(ctx, page.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "one", notion.PlainTextOf(children[0].Paragraph.RichText))
	assert.Equal(t, "two", notion.PlainTextOf(children[1].Paragraph.RichText))

	comments, err := second.Comments(ctx, page.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestWorkspace_StoreFailureHidesWrite(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	w := NewWorkspace("Bot")
	require.NoError(t, w.Restore(ctx, store))

	store.err = assert.AnError
	_, err := w.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.Parent{Type: notion.ParentWorkspace, Workspace: true},
		Properties: map[string]notion.PropertyValue{"title": notion.TitleProperty("Lost")},
	})
	require.ErrorIs(t, err, assert.AnError)

	results, err := w.Search(ctx, notion.SearchRequest{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

var errStoreFull = errors.New("store full")

func TestWorkspace_FailedAppendLeavesNoChildren(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	w := NewWorkspace("Bot")
	require.NoError(t, w.Restore(ctx, store))
	page := rootPage(t, w, "Host")

	store.mu.Lock()
	store.limit = len(store.recs) + 1
	store.mu.Unlock()

	toggle := notion.Block{Type: notion.BlockToggle, Toggle: &notion.TextBlock{
		RichText: notion.PlainRichText("more"),
		Children: []notion.Block{notion.ParagraphBlock("hidden")},
	}}
	err := w.AppendChildren(ctx, page.ID, []notion.Block{notion.ParagraphBlock("first"), toggle})
	require.ErrorIs(t, err, errStoreFull)

	children, err := w.Children(ctx, page.ID)
	require.NoError(t, err)
	assert.Empty(t, children)
	assert.Equal(t, 0, w.Stats()[notion.ObjectBlock])

	store.mu.Lock()
	defer store.mu.Unlock()
	for _, rec := range store.recs {
		assert.NotEqual(t, notion.ObjectBlock, rec.Type)
	}
}

func TestWorkspace_FailedCreatePageWithChildren(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	w := NewWorkspace("Bot")
	require.NoError(t, w.Restore(ctx, store))

	store.mu.Lock()
	store.limit = len(store.recs) + 2
	store.mu.Unlock()

	_, err := w.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.Parent{Type: notion.ParentWorkspace, Workspace: true},
		Properties: map[string]notion.PropertyValue{"title": notion.TitleProperty("Big")},
		Children: []notion.Block{
			notion.ParagraphBlock("one"),
			notion.ParagraphBlock("two"),
		},
	})
	require.ErrorIs(t, err, errStoreFull)

	stats := w.Stats()
	assert.Equal(t, 0, stats[notion.ObjectPage])
	assert.Equal(t, 0, stats[notion.ObjectBlock])
}

func TestWorkspace_BotDuringRestore(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	require.NoError(t, NewWorkspace("Stored").Restore(ctx, store))

	w := NewWorkspace("Fresh")
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			bot, err := w.Bot(ctx)
			assert.NoError(t, err)
			assert.NotNil(t, bot)
		}
	}()
	require.NoError(t, w.Restore(ctx, store))
	wg.Wait()

	bot, err := w.Bot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Stored", bot.Name)
}
