package Models

import (
	"gorm.io/gorm"
)

// Permission levels. Managers record day entries, owners see every godown,
// admins manage users.
const (
	PermissionManager = 1
	PermissionOwner   = 2
	PermissionAdmin   = 4
)

type User struct {
	gorm.Model
	Name       string `json:"name" gorm:"not null"`
	Email      string `json:"email" gorm:"not null;uniqueIndex"`
	Password   []byte `json:"-"`
	Permission int    `json:"permission" gorm:"not null"`
	CompanyID  uint   `json:"company_id"`
	GodownID   uint   `json:"godown_id"`
}
