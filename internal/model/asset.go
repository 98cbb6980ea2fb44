// internal/model/asset.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AssetStatus string

const (
	AssetActive           AssetStatus = "ACTIVE"
	AssetInactive         AssetStatus = "INACTIVE"
	AssetUnderMaintenance AssetStatus = "UNDER_MAINTENANCE"
)

func ParseAssetStatus(s string) (AssetStatus, error) {
	switch AssetStatus(strings.ToUpper(s)) {
	case AssetActive:
		return AssetActive, nil
	case AssetInactive:
		return AssetInactive, nil
	case AssetUnderMaintenance:
		return AssetUnderMaintenance, nil
	default:
		return "", fmt.Errorf("invalid asset status %q", s)
	}
}

// Criticality classifies asset severity. The same enum backs work order
// priority; CRITICAL is the canonical top label.
type Criticality string

const (
	CriticalityLow      Criticality = "LOW"
	CriticalityMedium   Criticality = "MEDIUM"
	CriticalityHigh     Criticality = "HIGH"
	CriticalityCritical Criticality = "CRITICAL"
)

func ParseCriticality(s string) (Criticality, error) {
	switch Criticality(strings.ToUpper(s)) {
	case CriticalityLow:
		return CriticalityLow, nil
	case CriticalityMedium:
		return CriticalityMedium, nil
	case CriticalityHigh:
		return CriticalityHigh, nil
	case CriticalityCritical:
		return CriticalityCritical, nil
	default:
		return "", fmt.Errorf("invalid criticality %q", s)
	}
}

type Asset struct {
	ID                  uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name                string      `gorm:"type:text;not null" json:"name"`
	Description         string      `gorm:"type:text" json:"description,omitempty"`
	Type                string      `gorm:"type:text;not null" json:"type"`
	Category            string      `gorm:"type:text" json:"category,omitempty"`
	Location            string      `gorm:"type:text;not null" json:"location"`
	Status              AssetStatus `gorm:"type:asset_status;not null;default:'ACTIVE'" json:"status"`
	Criticality         Criticality `gorm:"type:criticality;not null;default:'MEDIUM'" json:"criticality"`
	Manufacturer        string      `gorm:"type:text" json:"manufacturer,omitempty"`
	Model               string      `gorm:"type:text" json:"model,omitempty"`
	SerialNumber        string      `gorm:"type:text" json:"serialNumber,omitempty"`
	PurchaseDate        *time.Time  `json:"purchaseDate,omitempty"`
	WarrantyExpiry      *time.Time  `json:"warrantyExpiry,omitempty"`
	InstallationDate    *time.Time  `json:"installationDate,omitempty"`
	LastMaintenance     *time.Time  `json:"lastMaintenance,omitempty"`
	NextMaintenance     *time.Time  `json:"nextMaintenance,omitempty"`
	MaintenanceInterval string      `gorm:"type:text" json:"maintenanceInterval,omitempty"`
	PurchasePrice       *float64    `json:"purchasePrice,omitempty"`
	CurrentValue        *float64    `json:"currentValue,omitempty"`
	DepreciationRate    *float64    `json:"depreciationRate,omitempty"`
	Specifications      JSONMap     `gorm:"type:jsonb" json:"specifications,omitempty"`
	Documents           string      `gorm:"type:text" json:"documents,omitempty"`
	Notes               string      `gorm:"type:text" json:"notes,omitempty"`
	ImageURLs           StringList  `gorm:"type:text" json:"imageUrls"`
	FileURLs            StringList  `gorm:"type:text" json:"fileUrls"`
	OrganizationID      uuid.UUID   `gorm:"type:uuid;not null" json:"organizationId"`
	CreatedByID         uuid.UUID   `gorm:"type:uuid;not null" json:"createdById"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	CreatedBy    *User         `gorm:"foreignKey:CreatedByID" json:"-"`
	WorkOrders   []WorkOrder   `gorm:"foreignKey:AssetID" json:"workOrders,omitempty"`
}

// AssetRef is the trimmed asset shape embedded in work order responses.
type AssetRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type,omitempty"`
	Location string    `json:"location,omitempty"`
}

func (a *Asset) Ref() *AssetRef {
	if a == nil {
		return nil
	}
	return &AssetRef{ID: a.ID, Name: a.Name, Type: a.Type, Location: a.Location}
}

// StringList is an ordered list of attachment URLs stored as a JSON-encoded
// text column, matching the wire format the entity exposes.
type StringList []string

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported Scan, storing driver.Value type %T into type %T", value, l)
	}

	if len(bytes) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Contains reports whether url is currently in the list.
func (l StringList) Contains(url string) bool {
	for _, u := range l {
		if u == url {
			return true
		}
	}
	return false
}

// Without returns a copy with every occurrence of url removed, preserving
// the order of the remaining entries.
func (l StringList) Without(url string) StringList {
	out := make(StringList, 0, len(l))
	for _, u := range l {
		if u != url {
			out = append(out, u)
		}
	}
	return out
}
