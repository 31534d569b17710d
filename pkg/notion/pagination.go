package notion

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Cursor is an opaque continuation token handed out by list endpoints.
type Cursor string

// MaxPageSize is the largest page_size Notion accepts.
const MaxPageSize = 100

type PaginationRequest struct {
	StartCursor Cursor `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

func (p PaginationRequest) query() url.Values {
	q := url.Values{}
	if p.StartCursor != "" {
		q.Set("start_cursor", string(p.StartCursor))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return q
}

type ListType string

const (
	ListTypeUser           ListType = "user"
	ListTypeBlock          ListType = "block"
	ListTypePage           ListType = "page"
	ListTypeDatabase       ListType = "database"
	ListTypeComment        ListType = "comment"
	ListTypePageOrDatabase ListType = "page_or_database"
)

// List is a page of results. NextCursor is nil when HasMore is false.
type List struct {
	Type       ListType `json:"type,omitempty"`
	Results    []Object `json:"results"`
	NextCursor *Cursor  `json:"next_cursor"`
	HasMore    bool     `json:"has_more"`
}

func (*List) ObjectType() ObjectType { return ObjectList }
func (*List) isObject()              {}

func (l List) MarshalJSON() ([]byte, error) {
	type alias List
	if l.Results == nil {
		l.Results = []Object{}
	}
	return marshalTagged(ObjectList, alias(l))
}

func (l *List) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type       ListType          `json:"type"`
		Results    []json.RawMessage `json:"results"`
		NextCursor *Cursor           `json:"next_cursor"`
		HasMore    bool              `json:"has_more"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	results := make([]Object, 0, len(raw.Results))
	for i, r := range raw.Results {
		obj, err := DecodeObject(r)
		if err != nil {
			return fmt.Errorf("results[%d]: %w", i, err)
		}
		results = append(results, obj)
	}

	*l = List{
		Type:       raw.Type,
		Results:    results,
		NextCursor: raw.NextCursor,
		HasMore:    raw.HasMore,
	}
	return nil
}

// Next returns the request for the following page and whether there is one.
func (l *List) Next(pageSize int) (PaginationRequest, bool) {
	if !l.HasMore || l.NextCursor == nil {
		return PaginationRequest{}, false
	}
	return PaginationRequest{StartCursor: *l.NextCursor, PageSize: pageSize}, true
}

func (l *List) Users() []*User         { return filterResults[*User](l.Results) }
func (l *List) Pages() []*Page         { return filterResults[*Page](l.Results) }
func (l *List) Databases() []*Database { return filterResults[*Database](l.Results) }
func (l *List) Blocks() []*Block       { return filterResults[*Block](l.Results) }
func (l *List) Comments() []*Comment   { return filterResults[*Comment](l.Results) }

func filterResults[T Object](results []Object) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if v, ok := r.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
