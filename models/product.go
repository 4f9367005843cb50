package models

// Product represents one row of the products source table.
// CategoryName is the raw source-language category code; it is nil for
// products the source ships without a category.
type Product struct {
	ProductID    string  `gorm:"primaryKey;column:product_id" json:"product_id"`
	CategoryName *string `gorm:"index;column:product_category_name" json:"product_category_name"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
