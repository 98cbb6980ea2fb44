// internal/model/user.go
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// ParseUserRole rejects anything outside the enum instead of letting raw
// query-string values reach the store.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(strings.ToUpper(s)) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("invalid user role %q", s)
	}
}

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email          string     `gorm:"type:citext;uniqueIndex;not null" json:"email"`
	Name           string     `gorm:"type:text" json:"name,omitempty"`
	GivenName      string     `gorm:"type:text" json:"givenName,omitempty"`
	FamilyName     string     `gorm:"type:text" json:"familyName,omitempty"`
	Picture        string     `gorm:"type:text" json:"picture,omitempty"`
	Locale         string     `gorm:"type:text" json:"locale,omitempty"`
	GoogleID       string     `gorm:"type:text" json:"googleId,omitempty"`
	Role           UserRole   `gorm:"type:user_role;not null;default:'USER'" json:"role"`
	IsActive       bool       `gorm:"not null;default:true" json:"isActive"`
	OrganizationID *uuid.UUID `gorm:"type:uuid" json:"organizationId,omitempty"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

// UserRef is the trimmed user shape embedded in responses of related entities.
type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email"`
}

func (u *User) Ref() *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}
