package models

// CategoryTranslation maps a raw product category code to its English
// name. A raw category with no translation row yields a null English
// category downstream; that is data, not an error.
type CategoryTranslation struct {
	CategoryName        string `gorm:"primaryKey;column:product_category_name" json:"product_category_name"`
	CategoryNameEnglish string `gorm:"not null;column:product_category_name_english" json:"product_category_name_english"`
}

// TableName specifies the table name for the CategoryTranslation model
func (CategoryTranslation) TableName() string {
	return "category_translations"
}
