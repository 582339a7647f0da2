package funfacts

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethanbaker/states/pkg/states"
)

// FactList is a list of fun facts stored as a JSON array in a text column
type FactList []string

// Value implements the driver.Valuer interface for database storage
func (f FactList) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(f))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database retrieval
func (f *FactList) Scan(value any) error {
	if value == nil {
		*f = FactList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FactList", value)
	}

	var facts []string
	if err := json.Unmarshal(bytes, &facts); err != nil {
		return fmt.Errorf("failed to unmarshal FactList: %w", err)
	}
	if facts == nil {
		facts = []string{}
	}

	*f = facts
	return nil
}

// FunFactModel represents the database model for a state's fun facts
type FunFactModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`

	StateCode string   `json:"state_code" gorm:"column:state_code;unique;not null;size:2"`
	Facts     FactList `json:"facts" gorm:"column:facts;type:text;not null"`
}

// TableName sets the table name for GORM
func (FunFactModel) TableName() string {
	return "fun_facts"
}

// toOverlay converts the model to the public overlay type
func (m *FunFactModel) toOverlay() *states.FunFactOverlay {
	facts := make([]string, len(m.Facts))
	copy(facts, m.Facts)

	return &states.FunFactOverlay{
		StateCode: m.StateCode,
		Facts:     facts,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
