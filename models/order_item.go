package models

// OrderItem represents one row of the order items source table. An
// order has one row per item; the same product can appear in many
// orders, so neither column alone is unique.
type OrderItem struct {
	OrderID      string  `gorm:"primaryKey;column:order_id" json:"order_id"`
	OrderItemID  int     `gorm:"primaryKey;column:order_item_id" json:"order_item_id"`
	ProductID    string  `gorm:"index;not null;column:product_id" json:"product_id"`
	Price        float64 `gorm:"column:price" json:"price"`
	FreightValue float64 `gorm:"column:freight_value" json:"freight_value"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
