package models

import "time"

// Dataset is the immutable in-memory snapshot of the six source
// tables. It is built once at startup and never mutated afterwards;
// every filter change recomputes derived tables from it from scratch.
type Dataset struct {
	Orders       []Order
	Customers    []Customer
	Products     []Product
	Translations []CategoryTranslation
	OrderItems   []OrderItem
	Payments     []Payment

	// Lookup indexes, built by BuildIndexes after the slices are final.
	CustomerByID      map[string]*Customer
	ProductByID       map[string]*Product
	EnglishByCategory map[string]string
	PaymentsByOrder   map[string][]*Payment
	ItemsByOrder      map[string][]*OrderItem
}

// BuildIndexes populates the lookup maps from the loaded slices. It
// must be called after the slices stop growing, since the maps hold
// pointers into them.
func (d *Dataset) BuildIndexes() {
	d.CustomerByID = make(map[string]*Customer, len(d.Customers))
	for i := range d.Customers {
		d.CustomerByID[d.Customers[i].CustomerID] = &d.Customers[i]
	}

	d.ProductByID = make(map[string]*Product, len(d.Products))
	for i := range d.Products {
		d.ProductByID[d.Products[i].ProductID] = &d.Products[i]
	}

	d.EnglishByCategory = make(map[string]string, len(d.Translations))
	for i := range d.Translations {
		t := &d.Translations[i]
		d.EnglishByCategory[t.CategoryName] = t.CategoryNameEnglish
	}

	d.PaymentsByOrder = make(map[string][]*Payment)
	for i := range d.Payments {
		p := &d.Payments[i]
		d.PaymentsByOrder[p.OrderID] = append(d.PaymentsByOrder[p.OrderID], p)
	}

	d.ItemsByOrder = make(map[string][]*OrderItem)
	for i := range d.OrderItems {
		it := &d.OrderItems[i]
		d.ItemsByOrder[it.OrderID] = append(d.ItemsByOrder[it.OrderID], it)
	}
}

// PurchaseRange returns the earliest and latest purchase timestamps in
// the snapshot. ok is false when no order carries a purchase timestamp.
func (d *Dataset) PurchaseRange() (min, max time.Time, ok bool) {
	for i := range d.Orders {
		ts := d.Orders[i].PurchaseTimestamp
		if ts == nil {
			continue
		}
		if !ok {
			min, max = *ts, *ts
			ok = true
			continue
		}
		if ts.Before(min) {
			min = *ts
		}
		if ts.After(max) {
			max = *ts
		}
	}
	return min, max, ok
}
