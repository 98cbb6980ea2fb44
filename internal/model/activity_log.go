// internal/model/activity_log.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ActivityLog is the append-only audit record of entity mutations. The
// system never reads it back; the entity tables stay authoritative.
type ActivityLog struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Action         string    `json:"action"`
	EntityType     string    `json:"entityType"`
	EntityID       string    `json:"entityId"`
	Description    string    `json:"description"`
	OldValues      JSONMap   `json:"oldValues,omitempty" gorm:"type:jsonb"`
	NewValues      JSONMap   `json:"newValues,omitempty" gorm:"type:jsonb"`
	OrganizationID uuid.UUID `json:"organizationId" gorm:"type:uuid;not null"`
	UserID         uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	CreatedAt      time.Time `json:"createdAt" gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Constants for ActivityLog actions
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionDeleted       = "deleted"
	ActionFilesUploaded = "files_uploaded"
	ActionFileDeleted   = "file_deleted"
)

// JSONMap represents a generic map stored as JSONB in the database
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface for JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for JSONMap
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion failed: failed to decode JSONB")
	}

	return json.Unmarshal(bytes, m)
}

// Snapshot flattens an entity into a JSONMap via its JSON encoding, used for
// the oldValues/newValues audit columns.
func Snapshot(entity interface{}) JSONMap {
	if entity == nil {
		return nil
	}
	b, err := json.Marshal(entity)
	if err != nil {
		return nil
	}
	var m JSONMap
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}
