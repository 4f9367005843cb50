package models

// Customer represents one row of the customers source table
type Customer struct {
	CustomerID       string `gorm:"primaryKey;column:customer_id" json:"customer_id"`
	CustomerUniqueID string `gorm:"index;column:customer_unique_id" json:"customer_unique_id"`
	ZipCodePrefix    string `gorm:"column:customer_zip_code_prefix" json:"customer_zip_code_prefix"`
	City             string `gorm:"index;column:customer_city" json:"customer_city"`
	State            string `gorm:"index;column:customer_state" json:"customer_state"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
