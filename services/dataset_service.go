package services

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/larissa-mendes/sales-dashboard-api/models"
	"github.com/larissa-mendes/sales-dashboard-api/utils"
	"gorm.io/gorm"
)

// Source CSV filenames, fixed by the upstream dataset
const (
	OrdersFile       = "orders_dataset.csv"
	CustomersFile    = "customers_dataset.csv"
	ProductsFile     = "products_dataset.csv"
	TranslationsFile = "product_category_name_translation.csv"
	OrderItemsFile   = "order_items_dataset.csv"
	PaymentsFile     = "order_payments_dataset.csv"
)

// DatasetFiles lists every CSV file the loader expects in the dataset
// directory
var DatasetFiles = []string{
	OrdersFile,
	CustomersFile,
	ProductsFile,
	TranslationsFile,
	OrderItemsFile,
	PaymentsFile,
}

var datasetInstance *models.Dataset

// GetDataset returns the loaded dataset snapshot
func GetDataset() *models.Dataset {
	return datasetInstance
}

// SetDataset sets the dataset snapshot (primarily for testing)
func SetDataset(ds *models.Dataset) {
	datasetInstance = ds
}

// LoadDataset reads the six CSV sources from dir into an immutable
// in-memory snapshot. A missing or unreadable file is an error — the
// caller aborts startup on it — but a bad cell inside a file is not:
// unparseable timestamps and empty values become nil.
func LoadDataset(dir string) (*models.Dataset, error) {
	ds := &models.Dataset{}

	if err := loadCSV(dir, OrdersFile, []string{"order_id", "customer_id", "order_status", "order_purchase_timestamp"}, func(row csvRow) {
		ds.Orders = append(ds.Orders, models.Order{
			OrderID:               row.get("order_id"),
			CustomerID:            row.get("customer_id"),
			OrderStatus:           row.get("order_status"),
			PurchaseTimestamp:     utils.ParseTimestamp(row.get("order_purchase_timestamp")),
			ApprovedAt:            utils.ParseTimestamp(row.get("order_approved_at")),
			DeliveredCarrierDate:  utils.ParseTimestamp(row.get("order_delivered_carrier_date")),
			DeliveredCustomerDate: utils.ParseTimestamp(row.get("order_delivered_customer_date")),
			EstimatedDeliveryDate: utils.ParseTimestamp(row.get("order_estimated_delivery_date")),
		})
	}); err != nil {
		return nil, err
	}

	if err := loadCSV(dir, CustomersFile, []string{"customer_id", "customer_city", "customer_state"}, func(row csvRow) {
		ds.Customers = append(ds.Customers, models.Customer{
			CustomerID:       row.get("customer_id"),
			CustomerUniqueID: row.get("customer_unique_id"),
			ZipCodePrefix:    row.get("customer_zip_code_prefix"),
			City:             row.get("customer_city"),
			State:            row.get("customer_state"),
		})
	}); err != nil {
		return nil, err
	}

	if err := loadCSV(dir, ProductsFile, []string{"product_id"}, func(row csvRow) {
		ds.Products = append(ds.Products, models.Product{
			ProductID:    row.get("product_id"),
			CategoryName: utils.NullableString(row.get("product_category_name")),
		})
	}); err != nil {
		return nil, err
	}

	if err := loadCSV(dir, TranslationsFile, []string{"product_category_name", "product_category_name_english"}, func(row csvRow) {
		ds.Translations = append(ds.Translations, models.CategoryTranslation{
			CategoryName:        row.get("product_category_name"),
			CategoryNameEnglish: row.get("product_category_name_english"),
		})
	}); err != nil {
		return nil, err
	}

	if err := loadCSV(dir, OrderItemsFile, []string{"order_id", "order_item_id", "product_id"}, func(row csvRow) {
		ds.OrderItems = append(ds.OrderItems, models.OrderItem{
			OrderID:      row.get("order_id"),
			OrderItemID:  utils.ParseInt(row.get("order_item_id")),
			ProductID:    row.get("product_id"),
			Price:        utils.ParseFloat(row.get("price")),
			FreightValue: utils.ParseFloat(row.get("freight_value")),
		})
	}); err != nil {
		return nil, err
	}

	if err := loadCSV(dir, PaymentsFile, []string{"order_id", "payment_value"}, func(row csvRow) {
		ds.Payments = append(ds.Payments, models.Payment{
			OrderID:      row.get("order_id"),
			Sequential:   utils.ParseInt(row.get("payment_sequential")),
			PaymentType:  row.get("payment_type"),
			Installments: utils.ParseInt(row.get("payment_installments")),
			Value:        utils.ParseFloat(row.get("payment_value")),
		})
	}); err != nil {
		return nil, err
	}

	ds.BuildIndexes()

	log.Printf("Loaded dataset: %d orders, %d customers, %d products, %d order items, %d payments, %d category translations",
		len(ds.Orders), len(ds.Customers), len(ds.Products), len(ds.OrderItems), len(ds.Payments), len(ds.Translations))

	return ds, nil
}

// PersistDataset migrates the six tables and bulk-inserts the
// snapshot into the analytics store so table-level endpoints can
// query real row counts
func PersistDataset(db *gorm.DB, ds *models.Dataset) error {
	if err := db.AutoMigrate(
		&models.Order{},
		&models.Customer{},
		&models.Product{},
		&models.CategoryTranslation{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		return fmt.Errorf("failed to migrate dataset tables: %w", err)
	}

	const batchSize = 500
	if len(ds.Customers) > 0 {
		if err := db.CreateInBatches(ds.Customers, batchSize).Error; err != nil {
			return fmt.Errorf("failed to persist customers: %w", err)
		}
	}
	if len(ds.Orders) > 0 {
		if err := db.CreateInBatches(ds.Orders, batchSize).Error; err != nil {
			return fmt.Errorf("failed to persist orders: %w", err)
		}
	}
	if len(ds.Products) > 0 {
		if err := db.CreateInBatches(ds.Products, batchSize).Error; err != nil {
			return fmt.Errorf("failed to persist products: %w", err)
		}
	}
	if len(ds.Translations) > 0 {
		if err := db.CreateInBatches(ds.Translations, batchSize).Error; err != nil {
			return fmt.Errorf("failed to persist category translations: %w", err)
		}
	}
	if len(ds.OrderItems) > 0 {
		if err := db.CreateInBatches(ds.OrderItems, batchSize).Error; err != nil {
			return fmt.Errorf("failed to persist order items: %w", err)
		}
	}
	if len(ds.Payments) > 0 {
		if err := db.CreateInBatches(ds.Payments, batchSize).Error; err != nil {
			return fmt.Errorf("failed to persist payments: %w", err)
		}
	}

	return nil
}

// csvRow resolves cell values by header name for a single record
type csvRow struct {
	columns map[string]int
	record  []string
}

func (r csvRow) get(column string) string {
	idx, ok := r.columns[column]
	if !ok || idx >= len(r.record) {
		return ""
	}
	return r.record[idx]
}

// loadCSV reads one CSV source, checks that the required columns are
// present in the header, and invokes handle for every data row
func loadCSV(dir, filename string, required []string, handle func(csvRow)) error {
	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dataset file %s: %w", filename, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Printf("warning: failed to close %s: %v", filename, closeErr)
		}
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read dataset file %s: %w", filename, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("dataset file %s has no header row", filename)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[name] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return fmt.Errorf("dataset file %s is missing required column %q", filename, name)
		}
	}

	for _, record := range records[1:] {
		handle(csvRow{columns: columns, record: record})
	}

	return nil
}
