package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mehmetymw/notion-go/internal/domain"
	"github.com/mehmetymw/notion-go/internal/port"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

var _ port.Workspace = (*Workspace)(nil)

// Workspace keeps every object in memory. Stored values are never mutated
// after insertion; updates replace them, so returned pointers are safe to
// read without holding the lock. With a store attached every change is
// written through before it becomes visible.
type Workspace struct {
	mu    sync.RWMutex
	now   func() time.Time
	store port.ObjectStore

	bot       *notion.User
	users     []*notion.User
	pages     map[string]*notion.Page
	pageOrder []string
	databases map[string]*notion.Database
	dbOrder   []string
	blocks    map[string]*notion.Block
	children  map[string][]string
	comments  []*notion.Comment
}

func NewWorkspace(botName string) *Workspace {
	bot := &notion.User{
		ID:   uuid.NewString(),
		Type: notion.UserBot,
		Name: botName,
		Bot: &notion.Bot{
			Owner:         &notion.BotOwner{Type: "workspace", Workspace: true},
			WorkspaceName: "Fake Workspace",
		},
	}

	return &Workspace{
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Millisecond)
		},
		bot:       bot,
		users:     []*notion.User{bot},
		pages:     make(map[string]*notion.Page),
		databases: make(map[string]*notion.Database),
		blocks:    make(map[string]*notion.Block),
		children:  make(map[string][]string),
	}
}

// Restore loads everything store holds, replacing the generated bot user if
// a stored one exists, and attaches store for later writes.
func (w *Workspace) Restore(ctx context.Context, store port.ObjectStore) error {
	recs, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load workspace: %w", err)
	}

	objs := make([]notion.Object, 0, len(recs))
	storedBot := false
	for _, rec := range recs {
		obj, err := notion.DecodeObject(rec.Data)
		if err != nil {
			return fmt.Errorf("restore %s %s: %w", rec.Type, rec.ID, err)
		}
		if u, ok := obj.(*notion.User); ok && u.Type == notion.UserBot {
			storedBot = true
		}
		objs = append(objs, obj)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if storedBot {
		w.users = nil
	}
	for _, obj := range objs {
		w.index(obj)
	}

	w.store = store
	if !storedBot {
		return w.put(ctx, w.bot)
	}
	return nil
}

// AddPerson registers a workspace member and returns it.
func (w *Workspace) AddPerson(ctx context.Context, name, email string) (*notion.User, error) {
	u := &notion.User{
		ID:     uuid.NewString(),
		Type:   notion.UserPerson,
		Name:   name,
		Person: &notion.Person{Email: email},
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Stats counts stored objects by type.
func (w *Workspace) Stats() map[notion.ObjectType]int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return map[notion.ObjectType]int{
		notion.ObjectUser:     len(w.users),
		notion.ObjectPage:     len(w.pages),
		notion.ObjectDatabase: len(w.databases),
		notion.ObjectBlock:    len(w.blocks),
		notion.ObjectComment:  len(w.comments),
	}
}

// put persists objs as one batch, when a store is attached, and then
// indexes them in order. Either all of objs become visible or none do.
// Callers hold the write lock.
func (w *Workspace) put(ctx context.Context, objs ...notion.Object) error {
	if w.store != nil {
		recs := make([]port.ObjectRecord, 0, len(objs))
		for _, obj := range objs {
			rec, err := recordOf(obj)
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		if err := w.store.Save(ctx, recs...); err != nil {
			return fmt.Errorf("persist %d objects: %w", len(recs), err)
		}
	}
	for _, obj := range objs {
		w.index(obj)
	}
	return nil
}

func (w *Workspace) index(obj notion.Object) {
	switch o := obj.(type) {
	case *notion.User:
		if o.Type == notion.UserBot {
			w.bot = o
		}
		for i, u := range w.users {
			if u.ID == o.ID {
				w.users[i] = o
				return
			}
		}
		w.users = append(w.users, o)
	case *notion.Page:
		if _, ok := w.pages[o.ID]; !ok {
			w.pageOrder = append(w.pageOrder, o.ID)
		}
		w.pages[o.ID] = o
	case *notion.Database:
		if _, ok := w.databases[o.ID]; !ok {
			w.dbOrder = append(w.dbOrder, o.ID)
		}
		w.databases[o.ID] = o
	case *notion.Block:
		if _, ok := w.blocks[o.ID]; !ok && o.Parent != nil {
			parentID := o.Parent.PageID
			if o.Parent.BlockID != "" {
				parentID = o.Parent.BlockID
			}
			w.children[parentID] = append(w.children[parentID], o.ID)
		}
		w.blocks[o.ID] = o
	case *notion.Comment:
		w.comments = append(w.comments, o)
	}
}

func recordOf(obj notion.Object) (port.ObjectRecord, error) {
	var id string
	switch o := obj.(type) {
	case *notion.User:
		id = o.ID
	case *notion.Page:
		id = o.ID
	case *notion.Database:
		id = o.ID
	case *notion.Block:
		id = o.ID
	case *notion.Comment:
		id = o.ID
	default:
		return port.ObjectRecord{}, fmt.Errorf("%s objects are not stored", obj.ObjectType())
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return port.ObjectRecord{}, err
	}
	return port.ObjectRecord{ID: id, Type: obj.ObjectType(), Data: data}, nil
}

func (w *Workspace) Bot(_ context.Context) (*notion.User, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.bot, nil
}

func (w *Workspace) User(_ context.Context, id string) (*notion.User, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, u := range w.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", domain.ErrObjectNotFound, id)
}

func (w *Workspace) Users(_ context.Context) ([]*notion.User, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*notion.User, len(w.users))
	copy(out, w.users)
	return out, nil
}

func (w *Workspace) Search(_ context.Context, req notion.SearchRequest) ([]notion.Object, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var results []notion.Object
	wantPages := req.Filter == nil || req.Filter.Value == notion.SearchFilterPage
	wantDatabases := req.Filter == nil || req.Filter.Value == notion.SearchFilterDatabase

	if wantPages {
		for _, id := range w.pageOrder {
			p := w.pages[id]
			if !p.Archived && domain.MatchTitle(p.Title(), req.Query) {
				results = append(results, p)
			}
		}
	}
	if wantDatabases {
		for _, id := range w.dbOrder {
			d := w.databases[id]
			if !d.Archived && domain.MatchTitle(notion.PlainTextOf(d.Title), req.Query) {
				results = append(results, d)
			}
		}
	}

	if req.Sort != nil {
		desc := req.Sort.Direction == notion.SortDescending
		sort.SliceStable(results, func(i, j int) bool {
			a, b := lastEdited(results[i]), lastEdited(results[j])
			if desc {
				return a.After(b)
			}
			return a.Before(b)
		})
	}
	return results, nil
}

func lastEdited(obj notion.Object) time.Time {
	switch o := obj.(type) {
	case *notion.Page:
		return o.LastEditedTime
	case *notion.Database:
		return o.LastEditedTime
	}
	return time.Time{}
}

func (w *Workspace) Page(_ context.Context, id string) (*notion.Page, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	p, ok := w.pages[id]
	if !ok {
		return nil, fmt.Errorf("%w: page %s", domain.ErrObjectNotFound, id)
	}
	return p, nil
}

func (w *Workspace) CreatePage(ctx context.Context, req notion.CreatePageRequest) (*notion.Page, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	parent, err := w.resolvePageParent(req.Parent)
	if err != nil {
		return nil, err
	}

	props, err := w.checkPageProperties(parent, req.Properties)
	if err != nil {
		return nil, err
	}
	if !hasTitle(props) {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrTitleMissing)
	}

	now := w.now()
	id := uuid.NewString()
	page := &notion.Page{
		ID:             id,
		CreatedTime:    now,
		LastEditedTime: now,
		CreatedBy:      &notion.PartialUser{ID: w.bot.ID},
		LastEditedBy:   &notion.PartialUser{ID: w.bot.ID},
		Icon:           req.Icon,
		Cover:          req.Cover,
		Parent:         parent,
		URL:            pageURL(id),
		Properties:     props,
	}
	if err := validChildren(req.Children); err != nil {
		return nil, err
	}
	staged := append([]notion.Object{page}, w.stageChildren(id, notion.ParentPage, req.Children, now)...)
	if err := w.put(ctx, staged...); err != nil {
		return nil, err
	}
	return page, nil
}

func (w *Workspace) UpdatePage(ctx context.Context, id string, req notion.UpdatePageRequest) (*notion.Page, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cur, ok := w.pages[id]
	if !ok {
		return nil, fmt.Errorf("%w: page %s", domain.ErrObjectNotFound, id)
	}
	if cur.Archived && (req.Archived == nil || *req.Archived) {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrArchivedParent)
	}

	updates, err := w.checkPageProperties(cur.Parent, req.Properties)
	if err != nil {
		return nil, err
	}

	next := *cur
	next.Properties = make(map[string]notion.PropertyValue, len(cur.Properties)+len(updates))
	for k, v := range cur.Properties {
		next.Properties[k] = v
	}
	for k, v := range updates {
		next.Properties[k] = v
	}
	if req.Archived != nil {
		next.Archived = *req.Archived
	}
	if req.Icon != nil {
		next.Icon = req.Icon
	}
	if req.Cover != nil {
		next.Cover = req.Cover
	}
	next.LastEditedTime = w.now()
	next.LastEditedBy = &notion.PartialUser{ID: w.bot.ID}

	if err := w.put(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (w *Workspace) resolvePageParent(p notion.Parent) (notion.Parent, error) {
	switch {
	case p.DatabaseID != "":
		if _, ok := w.databases[p.DatabaseID]; !ok {
			return notion.Parent{}, fmt.Errorf("%w: database %s", domain.ErrObjectNotFound, p.DatabaseID)
		}
		return notion.DatabaseParent(p.DatabaseID), nil
	case p.PageID != "":
		if _, ok := w.pages[p.PageID]; !ok {
			return notion.Parent{}, fmt.Errorf("%w: page %s", domain.ErrObjectNotFound, p.PageID)
		}
		return notion.PageParent(p.PageID), nil
	case p.Workspace || p.Type == notion.ParentWorkspace:
		return notion.Parent{Type: notion.ParentWorkspace, Workspace: true}, nil
	default:
		return notion.Parent{}, fmt.Errorf("%w: parent is required", domain.ErrValidation)
	}
}

// checkPageProperties validates property names against the parent database
// schema and fills in their types. Pages outside a database only take a
// title.
func (w *Workspace) checkPageProperties(parent notion.Parent, props map[string]notion.PropertyValue) (map[string]notion.PropertyValue, error) {
	out := make(map[string]notion.PropertyValue, len(props))

	if parent.DatabaseID == "" {
		for name, v := range props {
			if v.Type == "" && v.Title != nil {
				v.Type = notion.PropertyTitle
			}
			if v.Type != notion.PropertyTitle {
				return nil, fmt.Errorf("%w: %s is not a property that exists", domain.ErrValidation, name)
			}
			v.ID = "title"
			out[name] = v
		}
		return out, nil
	}

	db := w.databases[parent.DatabaseID]
	for name, v := range props {
		schema, ok := db.Properties[name]
		if !ok {
			return nil, fmt.Errorf("%w: %w: %s", domain.ErrValidation, domain.ErrUnknownProperty, name)
		}
		if v.Type == "" {
			v.Type = schema.Type
		}
		if v.Type != schema.Type {
			return nil, fmt.Errorf("%w: %s is expected to be %s", domain.ErrValidation, name, schema.Type)
		}
		v.ID = schema.ID
		out[name] = v
	}
	return out, nil
}

func hasTitle(props map[string]notion.PropertyValue) bool {
	for _, v := range props {
		if v.Type == notion.PropertyTitle {
			return true
		}
	}
	return false
}

func pageURL(id string) string {
	return "https://www.notion.so/" + strings.ReplaceAll(id, "-", "")
}

func (w *Workspace) Database(_ context.Context, id string) (*notion.Database, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	d, ok := w.databases[id]
	if !ok {
		return nil, fmt.Errorf("%w: database %s", domain.ErrObjectNotFound, id)
	}
	return d, nil
}

func (w *Workspace) CreateDatabase(ctx context.Context, req notion.CreateDatabaseRequest) (*notion.Database, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if req.Parent.PageID == "" {
		return nil, fmt.Errorf("%w: database parent must be a page", domain.ErrValidation)
	}
	if _, ok := w.pages[req.Parent.PageID]; !ok {
		return nil, fmt.Errorf("%w: page %s", domain.ErrObjectNotFound, req.Parent.PageID)
	}

	props := normalizeSchema(req.Properties)
	titles := 0
	for _, s := range props {
		if s.Type == notion.PropertyTitle {
			titles++
		}
	}
	if titles != 1 {
		return nil, fmt.Errorf("%w: database needs exactly one title property", domain.ErrValidation)
	}

	now := w.now()
	id := uuid.NewString()
	db := &notion.Database{
		ID:             id,
		CreatedTime:    now,
		LastEditedTime: now,
		CreatedBy:      &notion.PartialUser{ID: w.bot.ID},
		LastEditedBy:   &notion.PartialUser{ID: w.bot.ID},
		Title:          req.Title,
		Icon:           req.Icon,
		Cover:          req.Cover,
		Parent:         notion.PageParent(req.Parent.PageID),
		URL:            pageURL(id),
		IsInline:       req.IsInline,
		Properties:     props,
	}
	if err := w.put(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

func (w *Workspace) UpdateDatabase(ctx context.Context, id string, req notion.UpdateDatabaseRequest) (*notion.Database, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cur, ok := w.databases[id]
	if !ok {
		return nil, fmt.Errorf("%w: database %s", domain.ErrObjectNotFound, id)
	}

	next := *cur
	next.Properties = make(map[string]notion.PropertySchema, len(cur.Properties))
	for k, v := range cur.Properties {
		next.Properties[k] = v
	}
	for k, v := range normalizeSchema(req.Properties) {
		if old, ok := cur.Properties[k]; ok {
			v.ID = old.ID
		}
		next.Properties[k] = v
	}
	if req.Title != nil {
		next.Title = req.Title
	}
	if req.Description != nil {
		next.Description = req.Description
	}
	if req.Icon != nil {
		next.Icon = req.Icon
	}
	if req.Cover != nil {
		next.Cover = req.Cover
	}
	if req.Archived != nil {
		next.Archived = *req.Archived
	}
	next.LastEditedTime = w.now()
	next.LastEditedBy = &notion.PartialUser{ID: w.bot.ID}

	if err := w.put(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// normalizeSchema names each column after its key, infers its type from
// the configuration that is set, and assigns an id.
func normalizeSchema(in map[string]notion.PropertySchema) map[string]notion.PropertySchema {
	out := make(map[string]notion.PropertySchema, len(in))
	for name, s := range in {
		s.Name = name
		if s.Type == "" {
			s.Type = inferSchemaType(s)
		}
		if s.ID == "" {
			if s.Type == notion.PropertyTitle {
				s.ID = "title"
			} else {
				s.ID = uuid.NewString()[:4]
			}
		}
		out[name] = s
	}
	return out
}

func inferSchemaType(s notion.PropertySchema) notion.PropertyType {
	switch {
	case s.Title != nil:
		return notion.PropertyTitle
	case s.RichText != nil:
		return notion.PropertyRichText
	case s.Number != nil:
		return notion.PropertyNumber
	case s.Select != nil:
		return notion.PropertySelect
	case s.MultiSelect != nil:
		return notion.PropertyMultiSelect
	case s.Date != nil:
		return notion.PropertyDate
	case s.Checkbox != nil:
		return notion.PropertyCheckbox
	case s.URL != nil:
		return notion.PropertyURL
	case s.Email != nil:
		return notion.PropertyEmail
	case s.People != nil:
		return notion.PropertyPeople
	case s.Relation != nil:
		return notion.PropertyRelation
	case s.Formula != nil:
		return notion.PropertyFormula
	}
	return ""
}

func (w *Workspace) QueryDatabase(_ context.Context, id string, req notion.QueryDatabaseRequest) ([]*notion.Page, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if _, ok := w.databases[id]; !ok {
		return nil, fmt.Errorf("%w: database %s", domain.ErrObjectNotFound, id)
	}

	var out []*notion.Page
	for _, pid := range w.pageOrder {
		p := w.pages[pid]
		if p.Parent.DatabaseID != id || p.Archived {
			continue
		}
		ok, err := domain.MatchFilter(p, req.Filter)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		if ok {
			out = append(out, p)
		}
	}

	for i := len(req.Sorts) - 1; i >= 0; i-- {
		s := req.Sorts[i]
		sort.SliceStable(out, func(a, b int) bool {
			c := comparePages(out[a], out[b], s)
			if s.Direction == notion.SortDescending {
				return c > 0
			}
			return c < 0
		})
	}
	return out, nil
}

func comparePages(a, b *notion.Page, s notion.Sort) int {
	switch s.Timestamp {
	case notion.SortCreatedTime:
		return a.CreatedTime.Compare(b.CreatedTime)
	case notion.SortLastEditedTime:
		return a.LastEditedTime.Compare(b.LastEditedTime)
	}

	va, vb := a.Properties[s.Property], b.Properties[s.Property]
	if va.Number != nil && vb.Number != nil {
		switch {
		case *va.Number < *vb.Number:
			return -1
		case *va.Number > *vb.Number:
			return 1
		}
		return 0
	}
	return strings.Compare(propertyText(va), propertyText(vb))
}

func propertyText(v notion.PropertyValue) string {
	switch {
	case v.Title != nil:
		return notion.PlainTextOf(v.Title)
	case v.RichText != nil:
		return notion.PlainTextOf(v.RichText)
	case v.Select != nil:
		return v.Select.Name
	}
	return ""
}

func (w *Workspace) Block(_ context.Context, id string) (*notion.Block, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	b, ok := w.blocks[id]
	if !ok {
		return nil, fmt.Errorf("%w: block %s", domain.ErrObjectNotFound, id)
	}
	return b, nil
}

func (w *Workspace) Children(_ context.Context, parentID string) ([]*notion.Block, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if _, _, err := w.container(parentID); err != nil {
		return nil, err
	}

	var out []*notion.Block
	for _, id := range w.children[parentID] {
		if b := w.blocks[id]; !b.Archived {
			out = append(out, b)
		}
	}
	return out, nil
}

func (w *Workspace) AppendChildren(ctx context.Context, parentID string, children []notion.Block) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	parentType, archived, err := w.container(parentID)
	if err != nil {
		return err
	}
	if archived {
		return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrArchivedParent)
	}
	if err := validChildren(children); err != nil {
		return err
	}
	return w.appendChildren(ctx, parentID, parentType, children)
}

// container reports whether id names a page or block that can hold
// children.
func (w *Workspace) container(id string) (notion.ParentType, bool, error) {
	if p, ok := w.pages[id]; ok {
		return notion.ParentPage, p.Archived, nil
	}
	if b, ok := w.blocks[id]; ok {
		return notion.ParentBlock, b.Archived, nil
	}
	return "", false, fmt.Errorf("%w: block %s", domain.ErrObjectNotFound, id)
}

// validChildren checks a block tree before any of it is stored.
func validChildren(children []notion.Block) error {
	for _, child := range children {
		if child.Type == "" || child.Type == notion.BlockUnsupported {
			return fmt.Errorf("%w: %w: %q", domain.ErrValidation, domain.ErrUnsupportedBlock, child.Type)
		}
		nested := child
		if err := validChildren(detachChildren(&nested)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workspace) appendChildren(ctx context.Context, parentID string, parentType notion.ParentType, children []notion.Block) error {
	staged := w.stageChildren(parentID, parentType, children, w.now())
	if parentType == notion.ParentBlock && len(children) > 0 && !w.blocks[parentID].HasChildren {
		next := *w.blocks[parentID]
		next.HasChildren = true
		staged = append(staged, &next)
	}
	return w.put(ctx, staged...)
}

// stageChildren builds the stored form of a block tree, parents before
// their children, without touching the workspace.
func (w *Workspace) stageChildren(parentID string, parentType notion.ParentType, children []notion.Block, now time.Time) []notion.Object {
	var staged []notion.Object
	for _, child := range children {
		nested := detachChildren(&child)

		id := uuid.NewString()
		parent := notion.Parent{Type: parentType}
		if parentType == notion.ParentPage {
			parent.PageID = parentID
		} else {
			parent.BlockID = parentID
		}

		child.ID = id
		child.Parent = &parent
		child.CreatedTime = &now
		child.LastEditedTime = &now
		child.CreatedBy = &notion.PartialUser{ID: w.bot.ID}
		child.LastEditedBy = &notion.PartialUser{ID: w.bot.ID}
		child.HasChildren = len(nested) > 0
		child.Archived = false

		stored := child
		staged = append(staged, &stored)
		staged = append(staged, w.stageChildren(id, notion.ParentBlock, nested, now)...)
	}
	return staged
}

// detachChildren removes inline children from a block's content so they
// can be stored as separate blocks.
func detachChildren(b *notion.Block) []notion.Block {
	var nested []notion.Block
	take := func(tb **notion.TextBlock) {
		if *tb == nil || len((*tb).Children) == 0 {
			return
		}
		cp := **tb
		nested = cp.Children
		cp.Children = nil
		*tb = &cp
	}

	switch b.Type {
	case notion.BlockParagraph:
		take(&b.Paragraph)
	case notion.BlockBulletedListItem:
		take(&b.BulletedListItem)
	case notion.BlockNumberedListItem:
		take(&b.NumberedListItem)
	case notion.BlockToggle:
		take(&b.Toggle)
	case notion.BlockQuote:
		take(&b.Quote)
	case notion.BlockToDo:
		if b.ToDo != nil && len(b.ToDo.Children) > 0 {
			cp := *b.ToDo
			nested = cp.Children
			cp.Children = nil
			b.ToDo = &cp
		}
	}
	return nested
}

func (w *Workspace) UpdateBlock(ctx context.Context, id string, patch map[string]json.RawMessage) (*notion.Block, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cur, ok := w.blocks[id]
	if !ok {
		return nil, fmt.Errorf("%w: block %s", domain.ErrObjectNotFound, id)
	}
	if cur.Archived {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrArchivedParent)
	}

	raw, err := json.Marshal(cur)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	for k, v := range patch {
		if k != string(cur.Type) && k != "archived" {
			return nil, fmt.Errorf("%w: block type %s cannot be changed to %s", domain.ErrValidation, cur.Type, k)
		}
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var next notion.Block
	if err := json.Unmarshal(merged, &next); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	now := w.now()
	next.LastEditedTime = &now

	if err := w.put(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (w *Workspace) DeleteBlock(ctx context.Context, id string) (*notion.Block, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cur, ok := w.blocks[id]
	if !ok {
		return nil, fmt.Errorf("%w: block %s", domain.ErrObjectNotFound, id)
	}

	next := *cur
	next.Archived = true
	now := w.now()
	next.LastEditedTime = &now

	if err := w.put(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (w *Workspace) Comments(_ context.Context, blockID string) ([]*notion.Comment, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if _, _, err := w.container(blockID); err != nil {
		return nil, err
	}

	var out []*notion.Comment
	for _, c := range w.comments {
		if c.Parent.PageID == blockID || c.Parent.BlockID == blockID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (w *Workspace) CreateComment(ctx context.Context, req notion.CreateCommentRequest) (*notion.Comment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if (req.Parent == nil) == (req.DiscussionID == "") {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrCommentTarget)
	}

	var parent notion.Parent
	discussionID := req.DiscussionID
	if req.Parent != nil {
		if _, ok := w.pages[req.Parent.PageID]; !ok {
			return nil, fmt.Errorf("%w: page %s", domain.ErrObjectNotFound, req.Parent.PageID)
		}
		parent = notion.PageParent(req.Parent.PageID)
		discussionID = uuid.NewString()
	} else {
		found := false
		for _, c := range w.comments {
			if c.DiscussionID == discussionID {
				parent = c.Parent
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %w: %s", domain.ErrObjectNotFound, domain.ErrDiscussionNotFound, discussionID)
		}
	}

	now := w.now()
	c := &notion.Comment{
		ID:             uuid.NewString(),
		Parent:         parent,
		DiscussionID:   discussionID,
		CreatedTime:    now,
		LastEditedTime: now,
		CreatedBy:      &notion.PartialUser{ID: w.bot.ID},
		RichText:       req.RichText,
	}
	if err := w.put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
