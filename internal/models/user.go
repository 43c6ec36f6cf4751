package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleProfessor UserRole = "professor"
	RoleHOD       UserRole = "hod"
	RoleDirector  UserRole = "director"
)

// Department is one of the six fixed university departments.
type Department string

const (
	DeptComputerScience Department = "Computer Science"
	DeptElectronics     Department = "Electronics"
	DeptMechanical      Department = "Mechanical"
	DeptCivil           Department = "Civil"
	DeptElectrical      Department = "Electrical"
	DeptInformationTech Department = "Information Technology"
)

// Departments lists every valid department value.
var Departments = []Department{
	DeptComputerScience,
	DeptElectronics,
	DeptMechanical,
	DeptCivil,
	DeptElectrical,
	DeptInformationTech,
}

func (d Department) Valid() bool {
	for _, dept := range Departments {
		if d == dept {
			return true
		}
	}
	return false
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleHOD, RoleDirector:
		return true
	}
	return false
}

type User struct {
	ID    uint     `json:"id" gorm:"primaryKey"`
	Name  string   `json:"name" gorm:"not null;size:50"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  UserRole `json:"role" gorm:"not null;size:20;index"`

	// Password holds the bcrypt hash; never serialized on read paths.
	Password string `json:"-" gorm:"not null;size:100"`

	// Department is required for every role except director.
	Department Department `json:"department" gorm:"size:50;index"`

	AvatarURL string `json:"avatar_url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
