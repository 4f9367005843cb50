package models

// Payment represents one row of the order payments source table. An
// order may carry several payment rows (installments, vouchers); all
// of them count toward the order's daily total.
type Payment struct {
	OrderID      string  `gorm:"primaryKey;column:order_id" json:"order_id"`
	Sequential   int     `gorm:"primaryKey;column:payment_sequential" json:"payment_sequential"`
	PaymentType  string  `gorm:"column:payment_type" json:"payment_type"`
	Installments int     `gorm:"column:payment_installments" json:"payment_installments"`
	Value        float64 `gorm:"not null;column:payment_value" json:"payment_value"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
