package mongo

import (
	"time"

	"github.com/xraph/grove"

	"github.com/caisseplanck/register/audit"
	"github.com/caisseplanck/register/id"
)

type entryModel struct {
	grove.BaseModel `grove:"table:register_audit_entries"`

	ID        string    `grove:"id,pk"     bson:"_id"`
	Stream    string    `grove:"stream"    bson:"stream"`
	Level     string    `grove:"level"     bson:"level"`
	Operator  string    `grove:"operator"  bson:"operator,omitempty"`
	Message   string    `grove:"message"   bson:"message"`
	Timestamp time.Time `grove:"timestamp" bson:"timestamp"`
}

func toEntryModel(e *audit.Entry) *entryModel {
	return &entryModel{
		ID:        e.ID.String(),
		Stream:    string(e.Stream),
		Level:     e.Level,
		Operator:  e.Operator,
		Message:   e.Message,
		Timestamp: e.Timestamp.UTC(),
	}
}

func fromEntryModel(m *entryModel) (*audit.Entry, error) {
	entryID, err := id.ParseEntryID(m.ID)
	if err != nil {
		return nil, err
	}
	return &audit.Entry{
		ID:        entryID,
		Stream:    audit.Stream(m.Stream),
		Level:     m.Level,
		Operator:  m.Operator,
		Message:   m.Message,
		Timestamp: m.Timestamp,
	}, nil
}
