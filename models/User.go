package models

import (
	"gorm.io/gorm"
)

// User exists as the guest behind a reservation and the role carried in
// admin access tokens. Account and credential management live in a
// separate service and are not handled here.
type User struct {
	gorm.Model
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	Role      string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, admin, super_admin
}
