package notion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeObject_Variants(t *testing.T) {
	tests := []struct {
		body string
		want ObjectType
	}{
		{`{"object":"user","id":"u1","type":"person","person":{"email":"a@b.c"}}`, ObjectUser},
		{`{"object":"page","id":"p1","properties":{"Name":{"id":"title","type":"title","title":[]}}}`, ObjectPage},
		{`{"object":"database","id":"d1","title":[],"properties":{}}`, ObjectDatabase},
		{`{"object":"block","id":"b1","type":"divider","divider":{}}`, ObjectBlock},
		{`{"object":"comment","id":"c1","discussion_id":"x","rich_text":[]}`, ObjectComment},
		{`{"object":"list","results":[],"next_cursor":null,"has_more":false}`, ObjectList},
		{`{"object":"error","status":401,"code":"unauthorized","message":"no"}`, ObjectError},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			obj, err := DecodeObject([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, obj.ObjectType())
		})
	}
}

func TestDecodeObject_Discriminant(t *testing.T) {
	_, err := DecodeObject([]byte(`{"id":"u1"}`))
	assert.ErrorIs(t, err, ErrMissingObject)

	_, err = DecodeObject([]byte(`{"object":null}`))
	assert.ErrorIs(t, err, ErrMissingObject)

	_, err = DecodeObject([]byte(`{"object":"workspace"}`))
	assert.ErrorIs(t, err, ErrUnknownObject)
	assert.Contains(t, err.Error(), `"workspace"`)

	_, err = DecodeObject([]byte(`{"object":"page","properties":"nope"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode page")

	_, err = DecodeObject([]byte(`{"OBJECT":"user","id":"u1"}`))
	assert.ErrorIs(t, err, ErrMissingObject)

	obj, err := DecodeObject([]byte(`{"object":"error","Object":"user","status":404,"code":"object_not_found","message":"gone"}`))
	require.NoError(t, err)
	e, ok := obj.(*ErrorObject)
	require.True(t, ok, "got %T", obj)
	assert.Equal(t, CodeObjectNotFound, e.Code)
}

func TestMarshal_ObjectFirst(t *testing.T) {
	data, err := json.Marshal(&User{ID: "u1", Type: UserBot})
	require.NoError(t, err)
	assert.JSONEq(t, `{"object":"user","id":"u1","type":"bot"}`, string(data))
	assert.Equal(t, `{"object":"user",`, string(data[:len(`{"object":"user",`)]))

	data, err = json.Marshal(ErrorObject{Status: 404, Code: CodeObjectNotFound, Message: "gone"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"object":"error","status":404,"code":"object_not_found","message":"gone"}`, string(data))
}

func TestDecodeObject_RoundTrip(t *testing.T) {
	created := time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)
	edited := created.Add(90 * time.Minute)
	cursor := Cursor("b2")

	page := &Page{
		ID:             "p1",
		CreatedTime:    created,
		LastEditedTime: edited,
		CreatedBy:      &PartialUser{ID: "u1"},
		Icon:           EmojiIcon("🚀"),
		Parent:         DatabaseParent("d1"),
		URL:            "https://www.notion.so/p1",
		Properties: map[string]PropertyValue{
			"Name":   TitleProperty("Launch"),
			"Notes":  RichTextProperty("soon"),
			"Score":  NumberProperty(3),
			"Done":   CheckboxProperty(true),
			"Status": SelectProperty("Open"),
		},
	}
	block := &Block{
		ID:             "b1",
		Type:           BlockToDo,
		Parent:         &Parent{Type: ParentPage, PageID: "p1"},
		CreatedTime:    &created,
		LastEditedTime: &edited,
		HasChildren:    true,
		ToDo:           &ToDoBlock{RichText: PlainRichText("ship it"), Checked: true},
	}

	tests := []struct {
		name string
		obj  Object
	}{
		{"user", &User{
			ID:   "u1",
			Type: UserBot,
			Name: "Integration",
			Bot: &Bot{
				Owner:         &BotOwner{Type: "workspace", Workspace: true},
				WorkspaceName: "Acme",
			},
		}},
		{"page", page},
		{"database", &Database{
			ID:             "d1",
			CreatedTime:    created,
			LastEditedTime: edited,
			Title:          PlainRichText("Tasks"),
			Parent:         PageParent("p0"),
			IsInline:       true,
			Properties: map[string]PropertySchema{
				"Name":  {ID: "title", Name: "Name", Type: PropertyTitle, Title: &EmptyConfig{}},
				"Score": {ID: "a1", Name: "Score", Type: PropertyNumber, Number: &NumberConfig{Format: "number"}},
			},
		}},
		{"block", block},
		{"comment", &Comment{
			ID:             "c1",
			Parent:         Parent{Type: ParentPage, PageID: "p1"},
			DiscussionID:   "disc1",
			CreatedTime:    created,
			LastEditedTime: created,
			CreatedBy:      &PartialUser{ID: "u1"},
			RichText:       PlainRichText("looks good"),
		}},
		{"list", &List{
			Type:       ListTypePageOrDatabase,
			Results:    []Object{page, block, &User{ID: "u2", Type: UserPerson, Person: &Person{Email: "a@b.c"}}},
			NextCursor: &cursor,
			HasMore:    true,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.obj)
			require.NoError(t, err)

			decoded, err := DecodeObject(data)
			require.NoError(t, err)
			assert.Equal(t, tt.obj, decoded)
		})
	}
}

func TestList_DecodeResults(t *testing.T) {
	body := `{
		"object": "list",
		"type": "page_or_database",
		"results": [
			{"object":"page","id":"p1","properties":{}},
			{"object":"database","id":"d1","title":[],"properties":{}}
		],
		"next_cursor": "p2",
		"has_more": true
	}`

	obj, err := DecodeObject([]byte(body))
	require.NoError(t, err)
	list := obj.(*List)

	require.Len(t, list.Results, 2)
	assert.Len(t, list.Pages(), 1)
	assert.Len(t, list.Databases(), 1)
	assert.Empty(t, list.Users())

	next, ok := list.Next(25)
	require.True(t, ok)
	assert.Equal(t, PaginationRequest{StartCursor: "p2", PageSize: 25}, next)
}

func TestList_LastPage(t *testing.T) {
	obj, err := DecodeObject([]byte(`{"object":"list","results":[],"next_cursor":null,"has_more":false}`))
	require.NoError(t, err)

	_, ok := obj.(*List).Next(0)
	assert.False(t, ok)
}

func TestList_BadResult(t *testing.T) {
	_, err := DecodeObject([]byte(`{"object":"list","results":[{"id":"x"}],"has_more":false}`))

	assert.ErrorIs(t, err, ErrMissingObject)
	assert.Contains(t, err.Error(), "results[0]")
}

func TestList_MarshalEmptyResults(t *testing.T) {
	data, err := json.Marshal(&List{Type: ListTypeBlock})
	require.NoError(t, err)

	assert.JSONEq(t, `{"object":"list","type":"block","results":[],"next_cursor":null,"has_more":false}`, string(data))
}

func TestError_KindMatching(t *testing.T) {
	err := newError(KindAPI, &ErrorObject{Status: 429, Code: CodeRateLimited})

	assert.ErrorIs(t, err, ErrAPI)
	assert.NotErrorIs(t, err, ErrJSONParse)
	assert.Contains(t, err.Error(), "rate_limited")

	obj, ok := APIError(err)
	require.True(t, ok)
	assert.Equal(t, 429, obj.Status)

	_, ok = APIError(newError(KindRequestFailed, assert.AnError))
	assert.False(t, ok)
}

func TestUpdateBlockBody(t *testing.T) {
	b := ParagraphBlock("hello")
	b.ID = "b1"
	b.HasChildren = true

	body, err := updateBlockBody(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"paragraph":{"rich_text":[{"type":"text","plain_text":"hello","text":{"content":"hello"}}]}}`, string(body))

	body, err = updateBlockBody(Block{Type: BlockDivider, Archived: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"archived":true}`, string(body))
}
