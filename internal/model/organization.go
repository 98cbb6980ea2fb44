// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Industry    string    `gorm:"type:text" json:"industry,omitempty"`
	Address     string    `gorm:"type:text" json:"address,omitempty"`
	Phone       string    `gorm:"type:text" json:"phone,omitempty"`
	Email       string    `gorm:"type:text" json:"email,omitempty"`
	Website     string    `gorm:"type:text" json:"website,omitempty"`
	LogoURL     string    `gorm:"type:text" json:"logoUrl,omitempty"`
	Timezone    string    `gorm:"type:text;not null;default:'UTC'" json:"timezone"`
	Settings    JSONMap   `gorm:"type:jsonb" json:"settings,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Users      []User      `gorm:"foreignKey:OrganizationID" json:"users,omitempty"`
	Assets     []Asset     `gorm:"foreignKey:OrganizationID" json:"assets,omitempty"`
	WorkOrders []WorkOrder `gorm:"foreignKey:OrganizationID" json:"workOrders,omitempty"`
}

// OrganizationRef is the trimmed organization shape embedded in list and
// detail responses of owned entities.
type OrganizationRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (o *Organization) Ref() *OrganizationRef {
	if o == nil {
		return nil
	}
	return &OrganizationRef{ID: o.ID, Name: o.Name}
}

// OrganizationCounts reports dependent-row totals used by the delete guard.
type OrganizationCounts struct {
	Users      int64 `json:"users"`
	Assets     int64 `json:"assets"`
	WorkOrders int64 `json:"workOrders"`
}

func (c OrganizationCounts) Zero() bool {
	return c.Users == 0 && c.Assets == 0 && c.WorkOrders == 0
}

// OrganizationStats is the aggregate returned by GET /api/organizations/{id}/stats.
type OrganizationStats struct {
	Users struct {
		Total    int64 `json:"total"`
		Active   int64 `json:"active"`
		Inactive int64 `json:"inactive"`
	} `json:"users"`
	Assets struct {
		Total            int64 `json:"total"`
		Active           int64 `json:"active"`
		Offline          int64 `json:"offline"`
		UnderMaintenance int64 `json:"underMaintenance"`
	} `json:"assets"`
	WorkOrders struct {
		Total          int64   `json:"total"`
		Open           int64   `json:"open"`
		Overdue        int64   `json:"overdue"`
		Completed      int64   `json:"completed"`
		CompletionRate float64 `json:"completionRate"`
	} `json:"workOrders"`
}

// Derive fills the fields computed from the raw counts: inactive users and
// the completion percentage, which stays zero for an empty organization.
func (s *OrganizationStats) Derive() {
	s.Users.Inactive = s.Users.Total - s.Users.Active
	if s.WorkOrders.Total > 0 {
		s.WorkOrders.CompletionRate = float64(s.WorkOrders.Completed) / float64(s.WorkOrders.Total) * 100
	}
}
