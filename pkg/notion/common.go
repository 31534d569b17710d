package notion

import "time"

type Color string

const (
	ColorDefault          Color = "default"
	ColorGray             Color = "gray"
	ColorBrown            Color = "brown"
	ColorOrange           Color = "orange"
	ColorYellow           Color = "yellow"
	ColorGreen            Color = "green"
	ColorBlue             Color = "blue"
	ColorPurple           Color = "purple"
	ColorPink             Color = "pink"
	ColorRed              Color = "red"
	ColorGrayBackground   Color = "gray_background"
	ColorBlueBackground   Color = "blue_background"
	ColorRedBackground    Color = "red_background"
	ColorYellowBackground Color = "yellow_background"
)

type ParentType string

const (
	ParentDatabase  ParentType = "database_id"
	ParentPage      ParentType = "page_id"
	ParentBlock     ParentType = "block_id"
	ParentWorkspace ParentType = "workspace"
)

type Parent struct {
	Type       ParentType `json:"type,omitempty"`
	DatabaseID string     `json:"database_id,omitempty"`
	PageID     string     `json:"page_id,omitempty"`
	BlockID    string     `json:"block_id,omitempty"`
	Workspace  bool       `json:"workspace,omitempty"`
}

func DatabaseParent(id string) Parent {
	return Parent{Type: ParentDatabase, DatabaseID: id}
}

func PageParent(id string) Parent {
	return Parent{Type: ParentPage, PageID: id}
}

// PartialUser is the reference form of a user embedded in created_by and
// last_edited_by.
type PartialUser struct {
	ID string `json:"id"`
}

// Reference points at a page or database by id.
type Reference struct {
	ID string `json:"id"`
}

type RichTextType string

const (
	RichTextText     RichTextType = "text"
	RichTextMention  RichTextType = "mention"
	RichTextEquation RichTextType = "equation"
)

type RichText struct {
	Type        RichTextType `json:"type,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
	Href        *string      `json:"href,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
	Text        *Text        `json:"text,omitempty"`
	Mention     *Mention     `json:"mention,omitempty"`
	Equation    *Equation    `json:"equation,omitempty"`
}

// PlainRichText builds a single unannotated text run.
func PlainRichText(content string) []RichText {
	return []RichText{{
		Type:      RichTextText,
		PlainText: content,
		Text:      &Text{Content: content},
	}}
}

// PlainTextOf concatenates the plain text of every run.
func PlainTextOf(runs []RichText) string {
	var s string
	for _, r := range runs {
		switch {
		case r.PlainText != "":
			s += r.PlainText
		case r.Text != nil:
			s += r.Text.Content
		}
	}
	return s
}

type Text struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

type Link struct {
	URL string `json:"url"`
}

type Annotations struct {
	Bold          bool  `json:"bold"`
	Italic        bool  `json:"italic"`
	Strikethrough bool  `json:"strikethrough"`
	Underline     bool  `json:"underline"`
	Code          bool  `json:"code"`
	Color         Color `json:"color"`
}

type Mention struct {
	Type     string     `json:"type"`
	User     *User      `json:"user,omitempty"`
	Page     *Reference `json:"page,omitempty"`
	Database *Reference `json:"database,omitempty"`
	Date     *DateValue `json:"date,omitempty"`
}

type Equation struct {
	Expression string `json:"expression"`
}

type DateValue struct {
	Start    string  `json:"start"`
	End      *string `json:"end,omitempty"`
	TimeZone *string `json:"time_zone,omitempty"`
}

type FileType string

const (
	FileExternal FileType = "external"
	FileHosted   FileType = "file"
)

type File struct {
	Type     FileType      `json:"type"`
	Name     string        `json:"name,omitempty"`
	File     *HostedFile   `json:"file,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
	Caption  []RichText    `json:"caption,omitempty"`
}

type HostedFile struct {
	URL        string     `json:"url"`
	ExpiryTime *time.Time `json:"expiry_time,omitempty"`
}

type ExternalFile struct {
	URL string `json:"url"`
}

type Icon struct {
	Type     string        `json:"type"`
	Emoji    *string       `json:"emoji,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
	File     *HostedFile   `json:"file,omitempty"`
}

func EmojiIcon(emoji string) *Icon {
	return &Icon{Type: "emoji", Emoji: &emoji}
}

type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color Color  `json:"color,omitempty"`
}
