package notion

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ObjectType is the value of the "object" field present in every payload
// Notion returns.
type ObjectType string

const (
	ObjectUser     ObjectType = "user"
	ObjectPage     ObjectType = "page"
	ObjectDatabase ObjectType = "database"
	ObjectBlock    ObjectType = "block"
	ObjectComment  ObjectType = "comment"
	ObjectList     ObjectType = "list"
	ObjectError    ObjectType = "error"
)

// Object is the response envelope. The set of implementations is closed:
// *User, *Page, *Database, *Block, *Comment, *List and *ErrorObject.
type Object interface {
	ObjectType() ObjectType
	isObject()
}

var (
	_ Object = (*User)(nil)
	_ Object = (*Page)(nil)
	_ Object = (*Database)(nil)
	_ Object = (*Block)(nil)
	_ Object = (*Comment)(nil)
	_ Object = (*List)(nil)
	_ Object = (*ErrorObject)(nil)
)

// DecodeObject decodes a payload into the variant selected by its "object"
// field. Missing or unrecognised discriminants are errors. The key must
// match exactly; "Object" or "OBJECT" do not count.
func DecodeObject(data []byte) (Object, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	raw, ok := fields["object"]
	if !ok {
		return nil, ErrMissingObject
	}
	var tag *ObjectType
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("decode object discriminant: %w", err)
	}
	if tag == nil {
		return nil, ErrMissingObject
	}

	var obj Object
	switch *tag {
	case ObjectUser:
		obj = &User{}
	case ObjectPage:
		obj = &Page{}
	case ObjectDatabase:
		obj = &Database{}
	case ObjectBlock:
		obj = &Block{}
	case ObjectComment:
		obj = &Comment{}
	case ObjectList:
		obj = &List{}
	case ObjectError:
		obj = &ErrorObject{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownObject, *tag)
	}

	if err := json.Unmarshal(data, obj); err != nil {
		return nil, fmt.Errorf("decode %s: %w", *tag, err)
	}
	return obj, nil
}

// marshalTagged encodes v, which must encode as a JSON object, with the
// "object" discriminant as its first member.
func marshalTagged(tag ObjectType, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("tagged %s value is not a json object", tag)
	}

	var buf bytes.Buffer
	buf.WriteString(`{"object":`)
	tagJSON, _ := json.Marshal(tag)
	buf.Write(tagJSON)
	if !bytes.Equal(body, []byte("{}")) {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}
