package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/larissa-mendes/sales-dashboard-api/models"
)

// Fixture dataset used across packages. Four orders over three days in
// May 2017, two translated categories, one untranslated category and
// one uncategorized product, one order with two payment rows and two
// orders with two items each. The expected aggregates are spelled out
// in the tests that consume it.
//
//	day 1 (2017-05-01): o1           amount 100  count 1
//	day 2 (2017-05-02): o2, o3       amount 180  count 2
//	day 3 (2017-05-03): o4           amount  70  count 1
//
//	categories: bed_bath_table 3, (null) 2, sports_leisure 1
//	states:     bed_bath_table SP 2 / RJ 1, sports_leisure RJ 1, (null) SP 2

func ts(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		t.Fatalf("bad fixture timestamp %q: %v", value, err)
	}
	return &parsed
}

func strPtr(s string) *string {
	return &s
}

// BuildFixtureDataset returns the fixture snapshot with indexes built
func BuildFixtureDataset(t *testing.T) *models.Dataset {
	t.Helper()

	ds := &models.Dataset{
		Customers: []models.Customer{
			{CustomerID: "c1", City: "sao paulo", State: "SP"},
			{CustomerID: "c2", City: "rio de janeiro", State: "RJ"},
			{CustomerID: "c3", City: "campinas", State: "SP"},
		},
		Products: []models.Product{
			{ProductID: "p1", CategoryName: strPtr("cama_mesa_banho")},
			{ProductID: "p2", CategoryName: strPtr("esporte_lazer")},
			{ProductID: "p3"},
			{ProductID: "p4", CategoryName: strPtr("moveis_decoracao")}, // no translation row
		},
		Translations: []models.CategoryTranslation{
			{CategoryName: "cama_mesa_banho", CategoryNameEnglish: "bed_bath_table"},
			{CategoryName: "esporte_lazer", CategoryNameEnglish: "sports_leisure"},
		},
		Orders: []models.Order{
			{OrderID: "o1", CustomerID: "c1", OrderStatus: "delivered", PurchaseTimestamp: ts(t, "2017-05-01 10:00:00")},
			{OrderID: "o2", CustomerID: "c2", OrderStatus: "delivered", PurchaseTimestamp: ts(t, "2017-05-02 11:30:00")},
			{OrderID: "o3", CustomerID: "c3", OrderStatus: "shipped", PurchaseTimestamp: ts(t, "2017-05-02 23:59:59")},
			{OrderID: "o4", CustomerID: "c1", OrderStatus: "canceled", PurchaseTimestamp: ts(t, "2017-05-03 08:15:00")},
		},
		OrderItems: []models.OrderItem{
			{OrderID: "o1", OrderItemID: 1, ProductID: "p1", Price: 90, FreightValue: 10},
			{OrderID: "o2", OrderItemID: 1, ProductID: "p1", Price: 80, FreightValue: 10},
			{OrderID: "o2", OrderItemID: 2, ProductID: "p2", Price: 50, FreightValue: 10},
			{OrderID: "o3", OrderItemID: 1, ProductID: "p3", Price: 25, FreightValue: 5},
			{OrderID: "o4", OrderItemID: 1, ProductID: "p4", Price: 40, FreightValue: 5},
			{OrderID: "o4", OrderItemID: 2, ProductID: "p1", Price: 20, FreightValue: 5},
		},
		Payments: []models.Payment{
			{OrderID: "o1", Sequential: 1, PaymentType: "credit_card", Installments: 1, Value: 100},
			{OrderID: "o2", Sequential: 1, PaymentType: "credit_card", Installments: 2, Value: 100},
			{OrderID: "o2", Sequential: 2, PaymentType: "voucher", Installments: 1, Value: 50},
			{OrderID: "o3", Sequential: 1, PaymentType: "boleto", Installments: 1, Value: 30},
			{OrderID: "o4", Sequential: 1, PaymentType: "credit_card", Installments: 1, Value: 70},
		},
	}
	ds.BuildIndexes()
	return ds
}

// Raw CSV renditions of the fixture, matching the loader's expected
// filenames and headers. The third order row carries an empty approved
// timestamp and the fourth a malformed one, so loader tests can assert
// the nil-not-error behavior.
var fixtureCSVs = map[string]string{
	"orders_dataset.csv": `order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date
o1,c1,delivered,2017-05-01 10:00:00,2017-05-01 10:05:00,2017-05-01 18:00:00,2017-05-04 12:00:00,2017-05-10 00:00:00
o2,c2,delivered,2017-05-02 11:30:00,2017-05-02 11:35:00,2017-05-02 19:00:00,2017-05-06 15:00:00,2017-05-12 00:00:00
o3,c3,shipped,2017-05-02 23:59:59,,2017-05-03 10:00:00,,2017-05-13 00:00:00
o4,c1,canceled,2017-05-03 08:15:00,not-a-timestamp,,,2017-05-14 00:00:00
`,
	"customers_dataset.csv": `customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state
c1,u1,01310,sao paulo,SP
c2,u2,20040,rio de janeiro,RJ
c3,u3,13015,campinas,SP
`,
	"products_dataset.csv": `product_id,product_category_name,product_name_lenght,product_description_lenght,product_photos_qty
p1,cama_mesa_banho,40,250,2
p2,esporte_lazer,35,180,1
p3,,30,120,1
p4,moveis_decoracao,45,300,3
`,
	"product_category_name_translation.csv": `product_category_name,product_category_name_english
cama_mesa_banho,bed_bath_table
esporte_lazer,sports_leisure
`,
	"order_items_dataset.csv": `order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value
o1,1,p1,s1,2017-05-03 10:00:00,90.00,10.00
o2,1,p1,s1,2017-05-04 11:30:00,80.00,10.00
o2,2,p2,s2,2017-05-04 11:30:00,50.00,10.00
o3,1,p3,s3,2017-05-05 00:00:00,25.00,5.00
o4,1,p4,s2,2017-05-05 08:15:00,40.00,5.00
o4,2,p1,s1,2017-05-05 08:15:00,20.00,5.00
`,
	"order_payments_dataset.csv": `order_id,payment_sequential,payment_type,payment_installments,payment_value
o1,1,credit_card,1,100.00
o2,1,credit_card,2,100.00
o2,2,voucher,1,50.00
o3,1,boleto,1,30.00
o4,1,credit_card,1,70.00
`,
}

// WriteFixtureCSVs writes the six fixture CSV files into dir
func WriteFixtureCSVs(t *testing.T, dir string) {
	t.Helper()

	for filename, content := range fixtureCSVs {
		path := filepath.Join(dir, filename)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write fixture file %s: %v", filename, err)
		}
	}
}

// FixtureCSV returns one fixture file's raw content, for tests that
// stage objects in mock S3
func FixtureCSV(t *testing.T, filename string) []byte {
	t.Helper()

	content, ok := fixtureCSVs[filename]
	if !ok {
		t.Fatalf("no fixture CSV named %s", filename)
	}
	return []byte(content)
}
