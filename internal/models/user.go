package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles recognised by the authorization layer.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User describes platform users scoped to a college.
type User struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `gorm:"not null" json:"last_name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Role      string `gorm:"not null;default:user" json:"role"`
	Avatar    string `json:"avatar"`

	CollegeID *string  `gorm:"type:uuid;index" json:"college_id"`
	College   *College `json:"college,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate ensures a UUID is present before persisting.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the user holds the elevated role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) AuditKind() EntityKind { return KindUser }
func (u *User) AuditID() string       { return u.ID }

func (u *User) AuditAttributes() map[string]any {
	var collegeID any
	if u.CollegeID != nil {
		collegeID = *u.CollegeID
	}
	return map[string]any{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"password":   u.Password,
		"role":       u.Role,
		"avatar":     u.Avatar,
		"college_id": collegeID,
		"is_active":  u.IsActive,
	}
}

// AuditExclusions hides credential secrets on top of the baseline set.
func (u *User) AuditExclusions() []string {
	return append(DefaultAuditExclusions(), "password")
}
