package models

import (
	"time"

	"github.com/lib/pq"
)

type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:50"`

	Users []User `json:"-" gorm:"foreignKey:RoleID"`
}

type Hospital struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:50"`

	Users []User `json:"-" gorm:"foreignKey:HospitalID"`
}

type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"uniqueIndex;size:50"`
	Password  string `json:"-" gorm:"size:200"`
	FirstName string `json:"firstName" gorm:"size:50"`
	LastName  string `json:"lastName" gorm:"size:50"`
	Email     string `json:"email" gorm:"uniqueIndex;size:50"`
	IsActive  bool   `json:"isActive" gorm:"default:true"`

	HospitalID *uint     `json:"hospitalId"`
	Hospital   *Hospital `json:"hospital,omitempty" gorm:"foreignKey:HospitalID"`
	RoleID     *uint     `json:"roleId"`
	Role       *Role     `json:"role,omitempty" gorm:"foreignKey:RoleID"`
}

// IsAdmin reports whether the user carries the Administrator role.
func (u User) IsAdmin() bool {
	return u.Role != nil && u.Role.Name == "Administrator"
}

// History is the local audit trail of uploads: who sent which file, when,
// and for which hospital. Columns keeps the CSV header for later inspection.
type History struct {
	ID       string         `json:"id" gorm:"primaryKey"`
	UserID   uint           `json:"userId"`
	User     *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Filename string         `json:"filename" gorm:"size:100"`
	Date     time.Time      `json:"date"`
	Columns  pq.StringArray `json:"columns" gorm:"type:text[]"`

	HospitalID *uint     `json:"hospitalId"`
	Hospital   *Hospital `json:"hospital,omitempty" gorm:"foreignKey:HospitalID"`
}

// Identity is the authenticated caller, extracted from the access token and
// handed to services explicitly. There is no process-wide session state.
type Identity struct {
	UserID    uint
	Name      string
	FirstName string
	LastName  string
	Hospital  string
	Scopes    []string
}

// HasScope checks a single space-separated token scope.
func (i Identity) HasScope(scope string) bool {
	for _, s := range i.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
