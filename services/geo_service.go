package services

import (
	"sort"

	"github.com/larissa-mendes/sales-dashboard-api/models"
)

// StateShare is one (category, state) cell of the top-states table.
// OrderCount counts order-item rows, not distinct orders: an order
// with three items in a category counts three times, matching the
// source behavior. Percentage is the share of the category's total
// across ALL its states, not just the five kept, so a category spread
// over more than five states sums to less than 100.
type StateShare struct {
	Category   *string `json:"category"`
	State      string  `json:"state"`
	OrderCount int64   `json:"order_count"`
	Percentage float64 `json:"percentage"`
}

// CategoryStateMatrix is the full category × state count matrix with
// zero fill. States are row labels sorted ascending; Categories are
// column labels sorted name ascending with the null category last.
// Counts[i][j] is the count for States[i] and Categories[j].
type CategoryStateMatrix struct {
	Categories []*string `json:"categories"`
	States     []string  `json:"states"`
	Counts     [][]int64 `json:"counts"`
}

// CrossTab is the geo-category cross-tabulator output
type CrossTab struct {
	TopStates []StateShare        `json:"top_states"`
	Matrix    CategoryStateMatrix `json:"matrix"`
}

// CrossTabulate builds the order/customer/item/product/category join
// from the already-filtered items, groups by (category, state), keeps
// the top 5 states per category (ties broken by state code ascending)
// and computes each kept state's percentage of the category total.
// Items whose order has no matching customer have no state and are
// dropped, as an inner join would drop them.
func CrossTabulate(ds *models.Dataset, items []CategorizedItem) CrossTab {
	type group struct {
		state string
		count int64
	}
	counts := map[categoryKey]map[string]int64{}

	for _, item := range items {
		customer, ok := ds.CustomerByID[item.Order.CustomerID]
		if !ok {
			continue
		}
		key := keyOf(item.Category)
		if counts[key] == nil {
			counts[key] = map[string]int64{}
		}
		counts[key][customer.State]++
	}

	categories := make([]categoryKey, 0, len(counts))
	for key := range counts {
		categories = append(categories, key)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].less(categories[j])
	})

	topStates := []StateShare{}
	for _, key := range categories {
		groups := make([]group, 0, len(counts[key]))
		var total int64
		for state, count := range counts[key] {
			groups = append(groups, group{state: state, count: count})
			total += count
		}
		sort.Slice(groups, func(i, j int) bool {
			if groups[i].count != groups[j].count {
				return groups[i].count > groups[j].count
			}
			return groups[i].state < groups[j].state
		})

		limit := len(groups)
		if limit > 5 {
			limit = 5
		}
		for _, g := range groups[:limit] {
			topStates = append(topStates, StateShare{
				Category:   key.ptr(),
				State:      g.state,
				OrderCount: g.count,
				Percentage: float64(g.count) / float64(total) * 100,
			})
		}
	}

	return CrossTab{
		TopStates: topStates,
		Matrix:    buildMatrix(categories, counts),
	}
}

// buildMatrix lays the grouped counts out as a dense state × category
// matrix, filling absent combinations with 0
func buildMatrix(categories []categoryKey, counts map[categoryKey]map[string]int64) CategoryStateMatrix {
	stateSet := map[string]bool{}
	for _, byState := range counts {
		for state := range byState {
			stateSet[state] = true
		}
	}
	states := make([]string, 0, len(stateSet))
	for state := range stateSet {
		states = append(states, state)
	}
	sort.Strings(states)

	matrix := CategoryStateMatrix{
		Categories: make([]*string, 0, len(categories)),
		States:     states,
		Counts:     make([][]int64, len(states)),
	}
	for _, key := range categories {
		matrix.Categories = append(matrix.Categories, key.ptr())
	}
	for i, state := range states {
		row := make([]int64, len(categories))
		for j, key := range categories {
			row[j] = counts[key][state]
		}
		matrix.Counts[i] = row
	}

	return matrix
}
