package notion

import "time"

type Database struct {
	ID             string                    `json:"id"`
	CreatedTime    time.Time                 `json:"created_time"`
	LastEditedTime time.Time                 `json:"last_edited_time"`
	CreatedBy      *PartialUser              `json:"created_by,omitempty"`
	LastEditedBy   *PartialUser              `json:"last_edited_by,omitempty"`
	Title          []RichText                `json:"title"`
	Description    []RichText                `json:"description,omitempty"`
	Icon           *Icon                     `json:"icon,omitempty"`
	Cover          *File                     `json:"cover,omitempty"`
	Parent         Parent                    `json:"parent"`
	URL            string                    `json:"url,omitempty"`
	Archived       bool                      `json:"archived"`
	IsInline       bool                      `json:"is_inline"`
	Properties     map[string]PropertySchema `json:"properties"`
}

func (*Database) ObjectType() ObjectType { return ObjectDatabase }
func (*Database) isObject()              {}

func (d Database) MarshalJSON() ([]byte, error) {
	type alias Database
	return marshalTagged(ObjectDatabase, alias(d))
}

// EmptyConfig is the "{}" configuration used by property types that take no
// options.
type EmptyConfig struct{}

// PropertySchema describes a database column. Only the configuration field
// named by Type is set.
type PropertySchema struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name,omitempty"`
	Type           PropertyType    `json:"type,omitempty"`
	Title          *EmptyConfig    `json:"title,omitempty"`
	RichText       *EmptyConfig    `json:"rich_text,omitempty"`
	Number         *NumberConfig   `json:"number,omitempty"`
	Select         *SelectConfig   `json:"select,omitempty"`
	MultiSelect    *SelectConfig   `json:"multi_select,omitempty"`
	Date           *EmptyConfig    `json:"date,omitempty"`
	People         *EmptyConfig    `json:"people,omitempty"`
	Files          *EmptyConfig    `json:"files,omitempty"`
	Checkbox       *EmptyConfig    `json:"checkbox,omitempty"`
	URL            *EmptyConfig    `json:"url,omitempty"`
	Email          *EmptyConfig    `json:"email,omitempty"`
	PhoneNumber    *EmptyConfig    `json:"phone_number,omitempty"`
	Formula        *FormulaConfig  `json:"formula,omitempty"`
	Relation       *RelationConfig `json:"relation,omitempty"`
	CreatedTime    *EmptyConfig    `json:"created_time,omitempty"`
	LastEditedTime *EmptyConfig    `json:"last_edited_time,omitempty"`
}

type NumberConfig struct {
	Format string `json:"format,omitempty"`
}

type SelectConfig struct {
	Options []SelectOption `json:"options"`
}

type FormulaConfig struct {
	Expression string `json:"expression"`
}

type RelationConfig struct {
	DatabaseID string `json:"database_id"`
}

type CreateDatabaseRequest struct {
	Parent     Parent                    `json:"parent"`
	Title      []RichText                `json:"title,omitempty"`
	Icon       *Icon                     `json:"icon,omitempty"`
	Cover      *File                     `json:"cover,omitempty"`
	IsInline   bool                      `json:"is_inline,omitempty"`
	Properties map[string]PropertySchema `json:"properties"`
}

type UpdateDatabaseRequest struct {
	Title       []RichText                `json:"title,omitempty"`
	Description []RichText                `json:"description,omitempty"`
	Icon        *Icon                     `json:"icon,omitempty"`
	Cover       *File                     `json:"cover,omitempty"`
	Properties  map[string]PropertySchema `json:"properties,omitempty"`
	Archived    *bool                     `json:"archived,omitempty"`
}

type SortDirection string

const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

type SortTimestamp string

const (
	SortCreatedTime    SortTimestamp = "created_time"
	SortLastEditedTime SortTimestamp = "last_edited_time"
)

type Sort struct {
	Property  string        `json:"property,omitempty"`
	Timestamp SortTimestamp `json:"timestamp,omitempty"`
	Direction SortDirection `json:"direction"`
}

// Filter is either a compound filter (And/Or) or a single property
// condition.
type Filter struct {
	And []Filter `json:"and,omitempty"`
	Or  []Filter `json:"or,omitempty"`

	Property    string             `json:"property,omitempty"`
	Title       *TextCondition     `json:"title,omitempty"`
	RichText    *TextCondition     `json:"rich_text,omitempty"`
	Number      *NumberCondition   `json:"number,omitempty"`
	Checkbox    *CheckboxCondition `json:"checkbox,omitempty"`
	Select      *SelectCondition   `json:"select,omitempty"`
	MultiSelect *SelectCondition   `json:"multi_select,omitempty"`
	Date        *DateCondition     `json:"date,omitempty"`
}

type TextCondition struct {
	Equals         string `json:"equals,omitempty"`
	DoesNotEqual   string `json:"does_not_equal,omitempty"`
	Contains       string `json:"contains,omitempty"`
	DoesNotContain string `json:"does_not_contain,omitempty"`
	StartsWith     string `json:"starts_with,omitempty"`
	EndsWith       string `json:"ends_with,omitempty"`
	IsEmpty        bool   `json:"is_empty,omitempty"`
	IsNotEmpty     bool   `json:"is_not_empty,omitempty"`
}

type NumberCondition struct {
	Equals               *float64 `json:"equals,omitempty"`
	DoesNotEqual         *float64 `json:"does_not_equal,omitempty"`
	GreaterThan          *float64 `json:"greater_than,omitempty"`
	LessThan             *float64 `json:"less_than,omitempty"`
	GreaterThanOrEqualTo *float64 `json:"greater_than_or_equal_to,omitempty"`
	LessThanOrEqualTo    *float64 `json:"less_than_or_equal_to,omitempty"`
	IsEmpty              bool     `json:"is_empty,omitempty"`
	IsNotEmpty           bool     `json:"is_not_empty,omitempty"`
}

type CheckboxCondition struct {
	Equals       *bool `json:"equals,omitempty"`
	DoesNotEqual *bool `json:"does_not_equal,omitempty"`
}

type SelectCondition struct {
	Equals       string `json:"equals,omitempty"`
	DoesNotEqual string `json:"does_not_equal,omitempty"`
	Contains     string `json:"contains,omitempty"`
	IsEmpty      bool   `json:"is_empty,omitempty"`
	IsNotEmpty   bool   `json:"is_not_empty,omitempty"`
}

type DateCondition struct {
	Equals     string `json:"equals,omitempty"`
	Before     string `json:"before,omitempty"`
	After      string `json:"after,omitempty"`
	OnOrBefore string `json:"on_or_before,omitempty"`
	OnOrAfter  string `json:"on_or_after,omitempty"`
	IsEmpty    bool   `json:"is_empty,omitempty"`
	IsNotEmpty bool   `json:"is_not_empty,omitempty"`
}

type QueryDatabaseRequest struct {
	Filter      *Filter `json:"filter,omitempty"`
	Sorts       []Sort  `json:"sorts,omitempty"`
	StartCursor Cursor  `json:"start_cursor,omitempty"`
	PageSize    int     `json:"page_size,omitempty"`
}
