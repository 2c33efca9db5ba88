package models

// OrderItem links an order to a product with a quantity. Rows are written
// once at finalization and never edited afterwards.
type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID uint `gorm:"column:product_id;not null;index" json:"product_id"`
	Quantity  int  `gorm:"column:quantity;not null" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
