package notion

import "time"

type PropertyType string

const (
	PropertyTitle          PropertyType = "title"
	PropertyRichText       PropertyType = "rich_text"
	PropertyNumber         PropertyType = "number"
	PropertySelect         PropertyType = "select"
	PropertyMultiSelect    PropertyType = "multi_select"
	PropertyDate           PropertyType = "date"
	PropertyPeople         PropertyType = "people"
	PropertyFiles          PropertyType = "files"
	PropertyCheckbox       PropertyType = "checkbox"
	PropertyURL            PropertyType = "url"
	PropertyEmail          PropertyType = "email"
	PropertyPhoneNumber    PropertyType = "phone_number"
	PropertyRelation       PropertyType = "relation"
	PropertyFormula        PropertyType = "formula"
	PropertyCreatedTime    PropertyType = "created_time"
	PropertyLastEditedTime PropertyType = "last_edited_time"
)

type Page struct {
	ID             string                   `json:"id"`
	CreatedTime    time.Time                `json:"created_time"`
	LastEditedTime time.Time                `json:"last_edited_time"`
	CreatedBy      *PartialUser             `json:"created_by,omitempty"`
	LastEditedBy   *PartialUser             `json:"last_edited_by,omitempty"`
	Archived       bool                     `json:"archived"`
	Icon           *Icon                    `json:"icon,omitempty"`
	Cover          *File                    `json:"cover,omitempty"`
	Parent         Parent                   `json:"parent"`
	URL            string                   `json:"url,omitempty"`
	Properties     map[string]PropertyValue `json:"properties"`
}

func (*Page) ObjectType() ObjectType { return ObjectPage }
func (*Page) isObject()              {}

func (p Page) MarshalJSON() ([]byte, error) {
	type alias Page
	return marshalTagged(ObjectPage, alias(p))
}

// Title returns the plain text of the page's title property, if any.
func (p *Page) Title() string {
	for _, v := range p.Properties {
		if v.Type == PropertyTitle {
			return PlainTextOf(v.Title)
		}
	}
	return ""
}

// PropertyValue is a page property. Only the field named by Type is set.
type PropertyValue struct {
	ID             string         `json:"id,omitempty"`
	Type           PropertyType   `json:"type,omitempty"`
	Title          []RichText     `json:"title,omitempty"`
	RichText       []RichText     `json:"rich_text,omitempty"`
	Number         *float64       `json:"number,omitempty"`
	Select         *SelectOption  `json:"select,omitempty"`
	MultiSelect    []SelectOption `json:"multi_select,omitempty"`
	Date           *DateValue     `json:"date,omitempty"`
	People         []User         `json:"people,omitempty"`
	Files          []File         `json:"files,omitempty"`
	Checkbox       *bool          `json:"checkbox,omitempty"`
	URL            *string        `json:"url,omitempty"`
	Email          *string        `json:"email,omitempty"`
	PhoneNumber    *string        `json:"phone_number,omitempty"`
	Relation       []Reference    `json:"relation,omitempty"`
	Formula        *FormulaValue  `json:"formula,omitempty"`
	CreatedTime    *time.Time     `json:"created_time,omitempty"`
	LastEditedTime *time.Time     `json:"last_edited_time,omitempty"`
}

type FormulaValue struct {
	Type    string     `json:"type"`
	String  *string    `json:"string,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Boolean *bool      `json:"boolean,omitempty"`
	Date    *DateValue `json:"date,omitempty"`
}

func TitleProperty(text string) PropertyValue {
	return PropertyValue{Type: PropertyTitle, Title: PlainRichText(text)}
}

func RichTextProperty(text string) PropertyValue {
	return PropertyValue{Type: PropertyRichText, RichText: PlainRichText(text)}
}

func NumberProperty(n float64) PropertyValue {
	return PropertyValue{Type: PropertyNumber, Number: &n}
}

func CheckboxProperty(b bool) PropertyValue {
	return PropertyValue{Type: PropertyCheckbox, Checkbox: &b}
}

func SelectProperty(name string) PropertyValue {
	return PropertyValue{Type: PropertySelect, Select: &SelectOption{Name: name}}
}

type CreatePageRequest struct {
	Parent     Parent                   `json:"parent"`
	Properties map[string]PropertyValue `json:"properties"`
	Children   []Block                  `json:"children,omitempty"`
	Icon       *Icon                    `json:"icon,omitempty"`
	Cover      *File                    `json:"cover,omitempty"`
}

type UpdatePageRequest struct {
	Properties map[string]PropertyValue `json:"properties,omitempty"`
	Archived   *bool                    `json:"archived,omitempty"`
	Icon       *Icon                    `json:"icon,omitempty"`
	Cover      *File                    `json:"cover,omitempty"`
}
