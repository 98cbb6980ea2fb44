// internal/model/workorder.go
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type WorkOrderStatus string

const (
	WorkOrderOpen       WorkOrderStatus = "OPEN"
	WorkOrderInProgress WorkOrderStatus = "IN_PROGRESS"
	WorkOrderOnHold     WorkOrderStatus = "ON_HOLD"
	WorkOrderCompleted  WorkOrderStatus = "COMPLETED"
	WorkOrderCancelled  WorkOrderStatus = "CANCELLED"
)

func ParseWorkOrderStatus(s string) (WorkOrderStatus, error) {
	switch WorkOrderStatus(strings.ToUpper(s)) {
	case WorkOrderOpen:
		return WorkOrderOpen, nil
	case WorkOrderInProgress:
		return WorkOrderInProgress, nil
	case WorkOrderOnHold:
		return WorkOrderOnHold, nil
	case WorkOrderCompleted:
		return WorkOrderCompleted, nil
	case WorkOrderCancelled:
		return WorkOrderCancelled, nil
	default:
		return "", fmt.Errorf("invalid work order status %q", s)
	}
}

// Priority shares the criticality value set; ParseCriticality does the work.
type Priority = Criticality

func ParsePriority(s string) (Priority, error) {
	p, err := ParseCriticality(s)
	if err != nil {
		return "", fmt.Errorf("invalid priority %q", s)
	}
	return p, nil
}

// WorkOrderType for work orders derived from asset maintenance scheduling.
const TypePreventiveMaintenance = "Preventive Maintenance"

type WorkOrder struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	WorkOrderNumber string          `gorm:"type:text;not null" json:"workOrderNumber"`
	Title           string          `gorm:"type:text;not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	Status          WorkOrderStatus `gorm:"type:work_order_status;not null;default:'OPEN'" json:"status"`
	Priority        Priority        `gorm:"type:criticality;not null;default:'MEDIUM'" json:"priority"`
	Type            string          `gorm:"type:text" json:"type,omitempty"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	ScheduledDate   *time.Time      `json:"scheduledDate,omitempty"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty"`
	EstimatedHours  *float64        `json:"estimatedHours,omitempty"`
	ActualHours     *float64        `json:"actualHours,omitempty"`
	Instructions    string          `gorm:"type:text" json:"instructions,omitempty"`
	Parts           string          `gorm:"type:text" json:"parts,omitempty"`
	Tools           string          `gorm:"type:text" json:"tools,omitempty"`
	SafetyNotes     string          `gorm:"type:text" json:"safetyNotes,omitempty"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	OrganizationID  uuid.UUID       `gorm:"type:uuid;not null" json:"organizationId"`
	AssetID         *uuid.UUID      `gorm:"type:uuid" json:"assetId,omitempty"`
	AssignedToID    *uuid.UUID      `gorm:"type:uuid" json:"assignedToId,omitempty"`
	CreatedByID     uuid.UUID       `gorm:"type:uuid;not null" json:"createdById"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	Asset        *Asset        `gorm:"foreignKey:AssetID" json:"-"`
	AssignedTo   *User         `gorm:"foreignKey:AssignedToID" json:"-"`
	CreatedBy    *User         `gorm:"foreignKey:CreatedByID" json:"-"`
	Comments     []Comment     `gorm:"foreignKey:WorkOrderID" json:"comments,omitempty"`
}

// FormatWorkOrderNumber renders the per-organization sequence index as the
// immutable WO-XXXXXX identifier.
func FormatWorkOrderNumber(seq int64) string {
	return fmt.Sprintf("WO-%06d", seq)
}

type Comment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	WorkOrderID uuid.UUID `gorm:"type:uuid;not null" json:"workOrderId"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null" json:"authorId"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time `json:"createdAt"`

	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Comment) TableName() string {
	return "work_order_comments"
}
