package models

import "time"

// Order represents one row of the orders source table. The five
// lifecycle timestamps are nullable: empty or unparseable source
// values become nil instead of aborting the load.
type Order struct {
	OrderID               string     `gorm:"primaryKey;column:order_id" json:"order_id"`
	CustomerID            string     `gorm:"not null;index;column:customer_id" json:"customer_id"` // foreign key to customers table
	OrderStatus           string     `gorm:"not null;index;column:order_status" json:"order_status"`
	PurchaseTimestamp     *time.Time `gorm:"index;column:order_purchase_timestamp" json:"order_purchase_timestamp"`
	ApprovedAt            *time.Time `gorm:"column:order_approved_at" json:"order_approved_at"`
	DeliveredCarrierDate  *time.Time `gorm:"column:order_delivered_carrier_date" json:"order_delivered_carrier_date"`
	DeliveredCustomerDate *time.Time `gorm:"column:order_delivered_customer_date" json:"order_delivered_customer_date"`
	EstimatedDeliveryDate *time.Time `gorm:"column:order_estimated_delivery_date" json:"order_estimated_delivery_date"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
