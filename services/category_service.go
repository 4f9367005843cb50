package services

import "sort"

// CategoryCount is one bucket of the category popularity ranking. A
// nil Category is the bucket of items whose category could not be
// resolved (unknown product, uncategorized product, or untranslated
// category).
type CategoryCount struct {
	Category *string `json:"category"`
	Count    int64   `json:"count"`
}

// CategoryRanking is the category ranker output, sorted descending by
// count. MostBought and LeastBought are the first and last buckets;
// both are nil when no item survived filtering. Categories with zero
// matched items do not appear at all.
type CategoryRanking struct {
	Categories  []CategoryCount `json:"categories"`
	MostBought  *CategoryCount  `json:"most_bought"`
	LeastBought *CategoryCount  `json:"least_bought"`
}

// categoryKey keys aggregation maps by a nullable category name
type categoryKey struct {
	Name  string
	Valid bool
}

func keyOf(category *string) categoryKey {
	if category == nil {
		return categoryKey{}
	}
	return categoryKey{Name: *category, Valid: true}
}

func (k categoryKey) ptr() *string {
	if !k.Valid {
		return nil
	}
	name := k.Name
	return &name
}

// less orders category keys by name ascending with the null bucket
// last; used as the deterministic tie-break everywhere categories are
// ranked
func (k categoryKey) less(other categoryKey) bool {
	if k.Valid != other.Valid {
		return k.Valid
	}
	return k.Name < other.Name
}

// RankCategories counts the filtered order-item rows per resolved
// English category. Ties are broken by category name ascending (null
// bucket last), so the ranking and the most/least picks are stable
// across runs.
func RankCategories(items []CategorizedItem) CategoryRanking {
	counts := map[categoryKey]int64{}
	for _, item := range items {
		counts[keyOf(item.Category)]++
	}

	keys := make([]categoryKey, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i].less(keys[j])
	})

	ranking := CategoryRanking{Categories: make([]CategoryCount, 0, len(keys))}
	for _, key := range keys {
		ranking.Categories = append(ranking.Categories, CategoryCount{
			Category: key.ptr(),
			Count:    counts[key],
		})
	}

	if len(ranking.Categories) > 0 {
		most := ranking.Categories[0]
		least := ranking.Categories[len(ranking.Categories)-1]
		ranking.MostBought = &most
		ranking.LeastBought = &least
	}

	return ranking
}
