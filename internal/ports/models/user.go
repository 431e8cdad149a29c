package models

import (
	"gorm.io/gorm"
)

// Role levels understood by the poll authorization rules
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// IsAdminRole reports whether role grants apartment-admin privileges
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// User is the directory entry the poll subsystem reads; account management
// lives outside this service
type User struct {
	gorm.Model
	ApartmentID      *uint   `gorm:"column:apartment_id;index" json:"apartment_id"`
	Name             string  `gorm:"column:name;size:100;not null" json:"name"`
	Email            string  `gorm:"column:email;size:255;unique;not null" json:"email"`
	Password         string  `gorm:"column:password;size:255" json:"-"`
	Role             string  `gorm:"column:role;size:20;not null;default:USER" json:"role"`
	ResidentBuilding *string `gorm:"column:resident_building;size:20" json:"resident_building"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// Principal is the already-authenticated caller extracted from the request
type Principal struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}
