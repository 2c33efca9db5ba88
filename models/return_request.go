package models

import "time"

// ReturnRequest is a post-demo feedback submission tied to an order. Rows
// are insert-only; the current one for an order is the most recent by
// submitted_at, ties broken by highest id.
type ReturnRequest struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"column:order_id;not null;index" json:"order_id"`
	SubmittedBy   string    `gorm:"column:submitted_by;size:150;not null" json:"submitted_by"`
	ProductsDemod *string   `gorm:"column:products_demod;size:255" json:"products_demod,omitempty"`
	ReturnFrom    *string   `gorm:"column:return_from;size:150" json:"return_from,omitempty"`
	DemoPurpose   *string   `gorm:"column:demo_purpose;size:50" json:"demo_purpose,omitempty"`
	DemoCount     int       `gorm:"column:demo_count;default:0" json:"demo_count"`
	IsOngoing     bool      `gorm:"column:is_ongoing;default:false" json:"is_ongoing"`
	IsRegistered  bool      `gorm:"column:is_registered;default:false" json:"is_registered"`
	DealNumber    *string   `gorm:"column:deal_number;size:100" json:"deal_number,omitempty"`
	EventDemoCount int      `gorm:"column:event_demo_count;default:0" json:"event_demo_count"`
	Notes         *string   `gorm:"column:notes;type:text" json:"notes,omitempty"`
	SubmitReturn  string    `gorm:"column:submit_return;size:10;not null;default:'yes'" json:"submit_return"`
	SubmittedAt   time.Time `gorm:"column:submitted_at;not null;index" json:"submitted_at"`
}

func (ReturnRequest) TableName() string {
	return "return_requests"
}
