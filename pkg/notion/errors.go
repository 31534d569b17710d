package notion

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInvalidAPIToken ErrorKind = iota + 1
	KindBuildClient
	KindRequestFailed
	KindResponseIO
	KindJSONParse
	KindAPI
	KindUnexpectedObject
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidAPIToken:
		return "invalid api token"
	case KindBuildClient:
		return "error building http client"
	case KindRequestFailed:
		return "request failed"
	case KindResponseIO:
		return "error reading response"
	case KindJSONParse:
		return "error parsing json"
	case KindAPI:
		return "api error"
	case KindUnexpectedObject:
		return "unexpected object"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidAPIToken  = &Error{Kind: KindInvalidAPIToken}
	ErrBuildClient      = &Error{Kind: KindBuildClient}
	ErrRequestFailed    = &Error{Kind: KindRequestFailed}
	ErrResponseIO       = &Error{Kind: KindResponseIO}
	ErrJSONParse        = &Error{Kind: KindJSONParse}
	ErrAPI              = &Error{Kind: KindAPI}
	ErrUnexpectedObject = &Error{Kind: KindUnexpectedObject}
)

var (
	ErrUnknownObject = errors.New("unknown object type")
	ErrMissingObject = errors.New("missing object discriminant")
)

// Error is returned by every client operation that fails after the request
// was handed to the client. Err holds the underlying cause; for KindAPI it
// is the *ErrorObject returned by Notion.
type Error struct {
	Kind ErrorKind
	Err  error
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "notion: " + e.Kind.String()
	}
	return fmt.Sprintf("notion: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// APIError returns the remote error payload when err is a KindAPI error.
func APIError(err error) (*ErrorObject, bool) {
	var obj *ErrorObject
	if errors.As(err, &obj) {
		return obj, true
	}
	return nil, false
}

type ErrorCode string

const (
	CodeInvalidJSON                   ErrorCode = "invalid_json"
	CodeInvalidRequestURL             ErrorCode = "invalid_request_url"
	CodeInvalidRequest                ErrorCode = "invalid_request"
	CodeValidationError               ErrorCode = "validation_error"
	CodeMissingVersion                ErrorCode = "missing_version"
	CodeUnauthorized                  ErrorCode = "unauthorized"
	CodeRestrictedResource            ErrorCode = "restricted_resource"
	CodeObjectNotFound                ErrorCode = "object_not_found"
	CodeConflictError                 ErrorCode = "conflict_error"
	CodeRateLimited                   ErrorCode = "rate_limited"
	CodeInternalServerError           ErrorCode = "internal_server_error"
	CodeServiceUnavailable            ErrorCode = "service_unavailable"
	CodeDatabaseConnectionUnavailable ErrorCode = "database_connection_unavailable"
	CodeGatewayTimeout                ErrorCode = "gateway_timeout"
)

// ErrorObject is the envelope variant Notion returns when it rejects a
// request.
type ErrorObject struct {
	Status    int       `json:"status"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

func (*ErrorObject) ObjectType() ObjectType { return ObjectError }
func (*ErrorObject) isObject()              {}

func (e *ErrorObject) Error() string {
	return fmt.Sprintf("status %d, code %s: %s", e.Status, e.Code, e.Message)
}

func (e ErrorObject) MarshalJSON() ([]byte, error) {
	type alias ErrorObject
	return marshalTagged(ObjectError, alias(e))
}
