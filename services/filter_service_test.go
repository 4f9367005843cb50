package services

import (
	"testing"
	"time"

	"github.com/larissa-mendes/sales-dashboard-api/models"
	"github.com/larissa-mendes/sales-dashboard-api/tests/testutil"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func orderIDs(orders []*models.Order) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}

func TestFilterOrders(t *testing.T) {
	ds := testutil.BuildFixtureDataset(t)

	tests := []struct {
		name     string
		spec     FilterSpec
		expected []string
	}{
		{
			name:     "Full range keeps every order",
			spec:     FilterSpec{StartDate: day(2017, 5, 1), EndDate: day(2017, 5, 3)},
			expected: []string{"o1", "o2", "o3", "o4"},
		},
		{
			name:     "End of day is inclusive",
			spec:     FilterSpec{StartDate: day(2017, 5, 2), EndDate: day(2017, 5, 2)},
			expected: []string{"o2", "o3"}, // o3 purchased at 23:59:59
		},
		{
			name:     "End date before start date selects nothing",
			spec:     FilterSpec{StartDate: day(2017, 5, 3), EndDate: day(2017, 5, 1)},
			expected: []string{},
		},
		{
			name:     "Status filter",
			spec:     FilterSpec{StartDate: day(2017, 5, 1), EndDate: day(2017, 5, 3), Statuses: []string{"delivered"}},
			expected: []string{"o1", "o2"},
		},
		{
			name:     "Empty status set rejects every row",
			spec:     FilterSpec{StartDate: day(2017, 5, 1), EndDate: day(2017, 5, 3), Statuses: []string{}},
			expected: []string{},
		},
		{
			name:     "State filter goes through the customer",
			spec:     FilterSpec{StartDate: day(2017, 5, 1), EndDate: day(2017, 5, 3), States: []string{"SP"}},
			expected: []string{"o1", "o3", "o4"},
		},
		{
			name: "City and state are a conjunction",
			spec: FilterSpec{
				StartDate: day(2017, 5, 1), EndDate: day(2017, 5, 3),
				Cities: []string{"campinas"}, States: []string{"SP"},
			},
			expected: []string{"o3"},
		},
		{
			name: "City in a different state matches nothing",
			spec: FilterSpec{
				StartDate: day(2017, 5, 1), EndDate: day(2017, 5, 3),
				Cities: []string{"rio de janeiro"}, States: []string{"SP"},
			},
			expected: []string{},
		},
		{
			name:     "No date bounds means no date predicate",
			spec:     FilterSpec{Statuses: []string{"shipped"}},
			expected: []string{"o3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterOrders(ds, tt.spec)
			assert.Equal(t, tt.expected, orderIDs(filtered))
		})
	}
}

func TestFilterOrderItems(t *testing.T) {
	ds := testutil.BuildFixtureDataset(t)
	fullRange := FilterSpec{StartDate: day(2017, 5, 1), EndDate: day(2017, 5, 3)}
	orders := FilterOrders(ds, fullRange)

	t.Run("No category filter keeps unresolved categories", func(t *testing.T) {
		items := FilterOrderItems(ds, orders, fullRange)
		assert.Len(t, items, 6)

		var unresolved int
		for _, item := range items {
			if item.Category == nil {
				unresolved++
			}
		}
		// p3 has no category, p4 has no translation
		assert.Equal(t, 2, unresolved)
	})

	t.Run("Category filter is applied on the joined items", func(t *testing.T) {
		spec := fullRange
		spec.Categories = []string{"bed_bath_table"}
		items := FilterOrderItems(ds, orders, spec)
		assert.Len(t, items, 3)
		for _, item := range items {
			assert.NotNil(t, item.Category)
			assert.Equal(t, "bed_bath_table", *item.Category)
		}
	})

	t.Run("Category filter drops null-category rows", func(t *testing.T) {
		spec := fullRange
		spec.Categories = []string{"bed_bath_table", "sports_leisure"}
		items := FilterOrderItems(ds, orders, spec)
		assert.Len(t, items, 4)
	})

	t.Run("Empty category set rejects every item", func(t *testing.T) {
		spec := fullRange
		spec.Categories = []string{}
		items := FilterOrderItems(ds, orders, spec)
		assert.Empty(t, items)
	})

	t.Run("Items follow the filtered orders", func(t *testing.T) {
		spec := fullRange
		spec.Statuses = []string{"delivered"}
		filtered := FilterOrders(ds, spec)
		items := FilterOrderItems(ds, filtered, spec)
		assert.Len(t, items, 3) // o1 has one item, o2 has two
	})
}
