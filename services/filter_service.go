package services

import (
	"time"

	"github.com/larissa-mendes/sales-dashboard-api/models"
)

// FilterSpec is the conjunction of predicates a dashboard user has
// active. A nil slice means that predicate is out of scope; a non-nil
// empty slice rejects every row. Dates are date-only bounds widened to
// full-day timestamps when applied.
type FilterSpec struct {
	StartDate  time.Time
	EndDate    time.Time
	Statuses   []string
	Categories []string
	Cities     []string
	States     []string
}

// CategorizedItem is one row of the filtered order-item join: the
// item, its order, and the resolved English category. Category is nil
// when the product is unknown, uncategorized, or has no translation.
type CategorizedItem struct {
	Item     *models.OrderItem
	Order    *models.Order
	Category *string
}

// FilterOrders returns the orders passing the date, status and
// location predicates. Category filtering happens downstream on the
// order-item join, since orders carry no category.
//
// The date window is [start 00:00:00, end 23:59:59] inclusive; an end
// date before the start date therefore selects nothing, which is the
// documented degenerate-range behavior, not an error.
func FilterOrders(ds *models.Dataset, spec FilterSpec) []*models.Order {
	dateBounded := !spec.StartDate.IsZero() || !spec.EndDate.IsZero()

	var windowStart, windowEnd time.Time
	if dateBounded {
		windowStart = dayStart(spec.StartDate)
		windowEnd = dayEnd(spec.EndDate)
	}

	filtered := []*models.Order{}
	for i := range ds.Orders {
		order := &ds.Orders[i]

		if dateBounded {
			ts := order.PurchaseTimestamp
			if ts == nil || ts.Before(windowStart) || ts.After(windowEnd) {
				continue
			}
		}

		if !matchSet(order.OrderStatus, spec.Statuses) {
			continue
		}

		if spec.Cities != nil || spec.States != nil {
			customer, ok := ds.CustomerByID[order.CustomerID]
			if !ok {
				continue
			}
			if !matchSet(customer.City, spec.Cities) || !matchSet(customer.State, spec.States) {
				continue
			}
		}

		filtered = append(filtered, order)
	}

	return filtered
}

// FilterOrderItems joins the filtered orders to their order items,
// resolves each item's English category through products and the
// category translation table, and applies the category predicate.
// Items whose category cannot be resolved keep a nil category and are
// only retained when category filtering is out of scope.
func FilterOrderItems(ds *models.Dataset, orders []*models.Order, spec FilterSpec) []CategorizedItem {
	items := []CategorizedItem{}
	for _, order := range orders {
		for _, item := range ds.ItemsByOrder[order.OrderID] {
			category := resolveCategory(ds, item.ProductID)

			if spec.Categories != nil {
				if category == nil || !matchSet(*category, spec.Categories) {
					continue
				}
			}

			items = append(items, CategorizedItem{
				Item:     item,
				Order:    order,
				Category: category,
			})
		}
	}
	return items
}

// resolveCategory maps a product to its English category name, nil at
// any break in the product -> raw category -> translation chain
func resolveCategory(ds *models.Dataset, productID string) *string {
	product, ok := ds.ProductByID[productID]
	if !ok || product.CategoryName == nil {
		return nil
	}
	english, ok := ds.EnglishByCategory[*product.CategoryName]
	if !ok {
		return nil
	}
	return &english
}

// matchSet reports whether value passes a set predicate: a nil set is
// out of scope and passes everything, an empty set passes nothing
func matchSet(value string, set []string) bool {
	if set == nil {
		return true
	}
	for _, candidate := range set {
		if candidate == value {
			return true
		}
	}
	return false
}

func dayStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func dayEnd(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, d.Location())
}
