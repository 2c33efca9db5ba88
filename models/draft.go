package models

import "time"

// Kit-builder wizard steps, in order. Each step replaces the selection of
// one canonical category; finalize is the single commit point.
const (
	StepHeadsets    = "headsets"
	StepOfflineApps = "offline_apps"
	StepOnlineApps  = "online_apps"
)

// StepCategory maps a wizard step onto the canonical category its picks
// must belong to. Returns "" for an unknown step.
func StepCategory(step string) string {
	switch step {
	case StepHeadsets:
		return CategoryHeadset
	case StepOfflineApps:
		return CategoryOfflineApp
	case StepOnlineApps:
		return CategoryOnlineApp
	default:
		return ""
	}
}

// DraftOrder holds a kit selection being assembled across wizard steps.
// It is keyed by an opaque token handed to the client and is deleted when
// the order it feeds is committed.
type DraftOrder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"column:token;type:char(36);uniqueIndex;not null" json:"token"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []DraftItem `gorm:"foreignKey:DraftID" json:"items,omitempty"`
}

func (DraftOrder) TableName() string {
	return "draft_orders"
}

type DraftItem struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	DraftID   uint   `gorm:"column:draft_id;not null;index" json:"draft_id"`
	Step      string `gorm:"column:step;size:20;not null" json:"step"`
	ProductID uint   `gorm:"column:product_id;not null" json:"product_id"`
	Quantity  int    `gorm:"column:quantity;not null;default:1" json:"quantity"`
}

func (DraftItem) TableName() string {
	return "draft_items"
}
