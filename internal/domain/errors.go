package domain

import "errors"

var (
	ErrObjectNotFound     = errors.New("could not find object")
	ErrValidation         = errors.New("body failed validation")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidCursor      = errors.New("start_cursor is not valid")
	ErrInvalidPageSize    = errors.New("page_size must be between 1 and 100")
	ErrTitleMissing       = errors.New("title is not provided")
	ErrUnknownProperty    = errors.New("property does not exist in the database schema")
	ErrArchivedParent     = errors.New("can't edit block that is archived")
	ErrCommentTarget      = errors.New("exactly one of parent or discussion_id is required")
	ErrUnsupportedFilter  = errors.New("filter condition is not supported")
	ErrUnsupportedBlock   = errors.New("block type is not supported")
	ErrDiscussionNotFound = errors.New("discussion not found")
)
