package models

import (
	"strings"
	"time"
)

// Canonical product categories. Historical rows carry variants like
// "VR Headset" or "offline apps", so classification always goes through
// ClassifyCategory instead of string equality.
const (
	CategoryHeadset    = "Headset"
	CategoryOfflineApp = "Offline Apps"
	CategoryOnlineApp  = "Online Apps"
)

type Product struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProductName    string    `gorm:"column:product_name;size:150;not null" json:"product_name"`
	ProductSKU     string    `gorm:"column:product_sku;size:64;uniqueIndex;not null" json:"product_sku"`
	Category       string    `gorm:"column:category;size:50;not null;index" json:"category"`
	ProductQty     int       `gorm:"column:product_qty;not null;default:0" json:"product_qty"`
	TotalInventory int       `gorm:"column:total_inventory;not null;default:0" json:"total_inventory"`
	Usecase        *string   `gorm:"column:usecase;size:255" json:"usecase,omitempty"`
	Level          *string   `gorm:"column:level;size:50" json:"level,omitempty"`
	WifiRequired   bool      `gorm:"column:wifi_required;default:false" json:"wifi_required"`
	ImageURL       *string   `gorm:"column:image_url;size:255" json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ClassifyCategory maps an arbitrary stored category string onto one of the
// canonical categories by case-insensitive substring match. Returns "" when
// the string matches none of them.
func ClassifyCategory(category string) string {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "headset"):
		return CategoryHeadset
	case strings.Contains(c, "offline"):
		return CategoryOfflineApp
	case strings.Contains(c, "online"):
		return CategoryOnlineApp
	default:
		return ""
	}
}

// IsValidCategory reports whether category resolves to a canonical one.
func IsValidCategory(category string) bool {
	return ClassifyCategory(category) != ""
}
