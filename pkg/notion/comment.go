package notion

import "time"

type Comment struct {
	ID             string       `json:"id"`
	Parent         Parent       `json:"parent"`
	DiscussionID   string       `json:"discussion_id"`
	CreatedTime    time.Time    `json:"created_time"`
	LastEditedTime time.Time    `json:"last_edited_time"`
	CreatedBy      *PartialUser `json:"created_by,omitempty"`
	RichText       []RichText   `json:"rich_text"`
}

func (*Comment) ObjectType() ObjectType { return ObjectComment }
func (*Comment) isObject()              {}

func (c Comment) MarshalJSON() ([]byte, error) {
	type alias Comment
	return marshalTagged(ObjectComment, alias(c))
}

// CreateCommentRequest starts a discussion on a page (Parent) or replies to
// an existing one (DiscussionID). Exactly one of the two must be set.
type CreateCommentRequest struct {
	Parent       *Parent    `json:"parent,omitempty"`
	DiscussionID string     `json:"discussion_id,omitempty"`
	RichText     []RichText `json:"rich_text"`
}
