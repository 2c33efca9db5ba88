package models

import "time"

// Roles. Lifecycle transitions are restricted to the two manager roles.
const (
	RoleSalesExecutive = "sales executive"
	RoleShopManager    = "shop manager"
	RoleProgramManager = "program manager"
)

// IsManagerRole reports whether role may drive order lifecycle transitions.
func IsManagerRole(role string) bool {
	return role == RoleShopManager || role == RoleProgramManager
}

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"column:email;size:150;uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"size:255;not null" json:"-"`
	Role           string     `gorm:"column:role;size:50;not null;default:'sales executive'" json:"role"`
	Reseller       string     `gorm:"column:reseller;size:150" json:"reseller"`
	SalesExecutive string     `gorm:"column:sales_executive;size:100;not null" json:"sales_executive"`
	ResetToken     *string    `gorm:"column:reset_token;size:128;index" json:"-"`
	ResetExpires   *time.Time `gorm:"column:reset_expires" json:"-"`
	CreatedAt      time.Time  `json:"-"`
	UpdatedAt      time.Time  `json:"-"`
}

func (User) TableName() string {
	return "users"
}
