package port

import (
	"context"
	"encoding/json"

	"github.com/mehmetymw/notion-go/pkg/notion"
)

// ObjectRecord is the stored form of one workspace object. Data is the
// object's own JSON encoding, "object" discriminant included.
type ObjectRecord struct {
	ID   string
	Type notion.ObjectType
	Data json.RawMessage
}

// ObjectStore persists workspace objects across restarts. Save stores every
// record or none of them. LoadAll returns records in the order they were
// first saved.
type ObjectStore interface {
	Save(ctx context.Context, recs ...ObjectRecord) error
	LoadAll(ctx context.Context) ([]ObjectRecord, error)
}
