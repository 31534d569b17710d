package notion

import (
	"encoding/json"
	"reflect"
	"time"
)

type BlockType string

const (
	BlockParagraph        BlockType = "paragraph"
	BlockHeading1         BlockType = "heading_1"
	BlockHeading2         BlockType = "heading_2"
	BlockHeading3         BlockType = "heading_3"
	BlockBulletedListItem BlockType = "bulleted_list_item"
	BlockNumberedListItem BlockType = "numbered_list_item"
	BlockToDo             BlockType = "to_do"
	BlockToggle           BlockType = "toggle"
	BlockCode             BlockType = "code"
	BlockQuote            BlockType = "quote"
	BlockCallout          BlockType = "callout"
	BlockDivider          BlockType = "divider"
	BlockChildPage        BlockType = "child_page"
	BlockChildDatabase    BlockType = "child_database"
	BlockBookmark         BlockType = "bookmark"
	BlockEquation         BlockType = "equation"
	BlockImage            BlockType = "image"
	BlockUnsupported      BlockType = "unsupported"
)

// Block is a unit of page content. Exactly one of the content fields,
// the one named by Type, is set.
type Block struct {
	ID             string       `json:"id,omitempty"`
	Type           BlockType    `json:"type"`
	Parent         *Parent      `json:"parent,omitempty"`
	CreatedTime    *time.Time   `json:"created_time,omitempty"`
	LastEditedTime *time.Time   `json:"last_edited_time,omitempty"`
	CreatedBy      *PartialUser `json:"created_by,omitempty"`
	LastEditedBy   *PartialUser `json:"last_edited_by,omitempty"`
	HasChildren    bool         `json:"has_children,omitempty"`
	Archived       bool         `json:"archived,omitempty"`

	Paragraph        *TextBlock     `json:"paragraph,omitempty"`
	Heading1         *HeadingBlock  `json:"heading_1,omitempty"`
	Heading2         *HeadingBlock  `json:"heading_2,omitempty"`
	Heading3         *HeadingBlock  `json:"heading_3,omitempty"`
	BulletedListItem *TextBlock     `json:"bulleted_list_item,omitempty"`
	NumberedListItem *TextBlock     `json:"numbered_list_item,omitempty"`
	ToDo             *ToDoBlock     `json:"to_do,omitempty"`
	Toggle           *TextBlock     `json:"toggle,omitempty"`
	Code             *CodeBlock     `json:"code,omitempty"`
	Quote            *TextBlock     `json:"quote,omitempty"`
	Callout          *CalloutBlock  `json:"callout,omitempty"`
	Divider          *EmptyConfig   `json:"divider,omitempty"`
	ChildPage        *ChildTitle    `json:"child_page,omitempty"`
	ChildDatabase    *ChildTitle    `json:"child_database,omitempty"`
	Bookmark         *BookmarkBlock `json:"bookmark,omitempty"`
	Equation         *Equation      `json:"equation,omitempty"`
	Image            *File          `json:"image,omitempty"`
}

func (*Block) ObjectType() ObjectType { return ObjectBlock }
func (*Block) isObject()              {}

func (b Block) MarshalJSON() ([]byte, error) {
	type alias Block
	return marshalTagged(ObjectBlock, alias(b))
}

// content returns the type-specific payload of the block.
func (b *Block) content() any {
	switch b.Type {
	case BlockParagraph:
		return b.Paragraph
	case BlockHeading1:
		return b.Heading1
	case BlockHeading2:
		return b.Heading2
	case BlockHeading3:
		return b.Heading3
	case BlockBulletedListItem:
		return b.BulletedListItem
	case BlockNumberedListItem:
		return b.NumberedListItem
	case BlockToDo:
		return b.ToDo
	case BlockToggle:
		return b.Toggle
	case BlockCode:
		return b.Code
	case BlockQuote:
		return b.Quote
	case BlockCallout:
		return b.Callout
	case BlockDivider:
		return b.Divider
	case BlockChildPage:
		return b.ChildPage
	case BlockChildDatabase:
		return b.ChildDatabase
	case BlockBookmark:
		return b.Bookmark
	case BlockEquation:
		return b.Equation
	case BlockImage:
		return b.Image
	default:
		return nil
	}
}

type TextBlock struct {
	RichText []RichText `json:"rich_text"`
	Color    Color      `json:"color,omitempty"`
	Children []Block    `json:"children,omitempty"`
}

type HeadingBlock struct {
	RichText     []RichText `json:"rich_text"`
	Color        Color      `json:"color,omitempty"`
	IsToggleable bool       `json:"is_toggleable,omitempty"`
}

type ToDoBlock struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
	Color    Color      `json:"color,omitempty"`
	Children []Block    `json:"children,omitempty"`
}

type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Caption  []RichText `json:"caption,omitempty"`
	Language string     `json:"language"`
}

type CalloutBlock struct {
	RichText []RichText `json:"rich_text"`
	Icon     *Icon      `json:"icon,omitempty"`
	Color    Color      `json:"color,omitempty"`
}

type ChildTitle struct {
	Title string `json:"title"`
}

type BookmarkBlock struct {
	URL     string     `json:"url"`
	Caption []RichText `json:"caption,omitempty"`
}

func ParagraphBlock(text string) Block {
	return Block{Type: BlockParagraph, Paragraph: &TextBlock{RichText: PlainRichText(text)}}
}

func Heading1Block(text string) Block {
	return Block{Type: BlockHeading1, Heading1: &HeadingBlock{RichText: PlainRichText(text)}}
}

func ToDoItemBlock(text string, checked bool) Block {
	return Block{Type: BlockToDo, ToDo: &ToDoBlock{RichText: PlainRichText(text), Checked: checked}}
}

type AppendBlockChildrenRequest struct {
	Children []Block `json:"children"`
}

// updateBlockBody renders the PATCH body for a block: its type-specific
// content keyed by type, plus the archived flag.
func updateBlockBody(b Block) (json.RawMessage, error) {
	body := map[string]any{}
	if c := b.content(); c != nil && !reflect.ValueOf(c).IsNil() {
		body[string(b.Type)] = c
	}
	if b.Archived {
		body["archived"] = true
	}
	return json.Marshal(body)
}
